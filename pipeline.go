package atelier

import (
	"fmt"
	stdimage "image"

	"seehuhn.de/go/geom/vec"

	"github.com/gogpu/atelier/internal/contour"
	"github.com/gogpu/atelier/internal/decompose"
	"github.com/gogpu/atelier/internal/image"
	"github.com/gogpu/atelier/internal/parallel"
	"github.com/gogpu/atelier/internal/silhouette"
	"github.com/gogpu/atelier/internal/texture"
)

// PatternResult is the output of pattern extraction.
type PatternResult struct {
	// Pieces holds exactly the requested number of quadrilaterals.
	Pieces []Piece

	// Centroid is the mean contour point (X = column, Y = row).
	Centroid vec.Vec2

	// Extremities holds the farthest contour point of each sector.
	Extremities []vec.Vec2

	// Contour is the boundary band of the silhouette in row-major order.
	Contour []ContourPoint

	// Silhouette is the 1-channel mask the contour was traced from.
	Silhouette *Raster
}

// PatternData is the serializable form of a PatternResult. Piece corners
// are [row, col] pairs.
type PatternData struct {
	NumPieces int             `json:"num_pieces"`
	Pieces    [][4][2]float64 `json:"pieces"`
}

// Data returns the serializable pieces of r.
func (r *PatternResult) Data() PatternData {
	d := PatternData{
		NumPieces: len(r.Pieces),
		Pieces:    make([][4][2]float64, len(r.Pieces)),
	}
	for i, p := range r.Pieces {
		for j, c := range p {
			d.Pieces[i][j] = [2]float64{c.Y, c.X}
		}
	}
	return d
}

// ExtractPattern derives the silhouette of img, traces its contour and
// decomposes it into pattern pieces.
//
// All options are validated before any pixel work.
func ExtractPattern(img *Raster, opts ...Option) (*PatternResult, error) {
	o := newOptions(opts)
	if err := o.validatePattern(false); err != nil {
		return nil, err
	}
	ex, release := o.executor()
	defer release()
	return extractPattern(ex, img, o)
}

// ExtractPatternFromMask skips silhouette extraction and decomposes a mask
// supplied by an external segmentation stage.
func ExtractPatternFromMask(mask *Raster, opts ...Option) (*PatternResult, error) {
	o := newOptions(opts)
	if err := o.validatePattern(true); err != nil {
		return nil, err
	}
	ex, release := o.executor()
	defer release()
	return patternFromMask(ex, mask, o)
}

func extractPattern(ex parallel.Executor, img *Raster, o options) (*PatternResult, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidDimensions)
	}
	mask, err := silhouette.Extract(ex, img, o.silhouette())
	if err != nil {
		return nil, fmt.Errorf("extract silhouette: %w", err)
	}
	return patternFromMask(ex, mask, o)
}

func patternFromMask(ex parallel.Executor, mask *Raster, o options) (*PatternResult, error) {
	if mask == nil {
		return nil, fmt.Errorf("%w: nil mask", ErrInvalidDimensions)
	}
	if mask.Channels() != 1 {
		return nil, fmt.Errorf("%w: mask must have 1 channel, have %d", ErrChannelMismatch, mask.Channels())
	}

	points, err := contour.Trace(ex, mask, o.contourThreshold)
	if err != nil {
		return nil, fmt.Errorf("trace contour: %w", err)
	}

	res, err := decompose.Decompose(points, o.pieceCount, o.offset)
	if err != nil {
		return nil, fmt.Errorf("decompose pattern: %w", err)
	}

	Logger().Debug("pattern extracted",
		"width", mask.Width(), "height", mask.Height(),
		"contour", len(points), "pieces", len(res.Pieces),
		"device", o.device.String())

	return &PatternResult{
		Pieces:      res.Pieces,
		Centroid:    res.Centroid,
		Extremities: res.Extremities,
		Contour:     points,
		Silhouette:  mask,
	}, nil
}

// MapTexture composites tex onto mask and returns the float result with
// values in [0,1]. The result has the mask's size and 3 channels.
func MapTexture(mask, tex *Raster, desc TextureDescriptor, opts ...Option) (*Raster, error) {
	o := newOptions(opts)
	if err := validateDevice(o.device); err != nil {
		return nil, err
	}
	ex, release := o.executor()
	defer release()
	return texture.Map(ex, mask, tex, desc)
}

// RenderTexture is MapTexture converted to 8-bit RGB. Values are clamped to
// [0,255] and truncated; alpha is opaque.
func RenderTexture(mask, tex *Raster, desc TextureDescriptor, opts ...Option) (*stdimage.RGBA, error) {
	out, err := MapTexture(mask, tex, desc, opts...)
	if err != nil {
		return nil, err
	}
	return image.ToRGBA(out), nil
}

func validateDevice(d Device) error {
	if d != DeviceCPU && d != DeviceParallel {
		return fmt.Errorf("%w: unknown device %v", ErrInvalidParameter, d)
	}
	return nil
}
