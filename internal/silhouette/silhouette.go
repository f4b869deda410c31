// Package silhouette turns a photograph of an object on a light background
// into a binary mask of the object.
//
// The object is assumed darker than its background: pixels whose luminance
// is below the threshold become 1, the rest 0. A morphological closing then
// fills small gaps in the silhouette.
package silhouette

import (
	"errors"
	"fmt"
	"math"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/gogpu/atelier/internal/filter"
	"github.com/gogpu/atelier/internal/image"
	"github.com/gogpu/atelier/internal/parallel"
)

// ErrEmptyMask is returned when no pixel survives thresholding and closing.
var ErrEmptyMask = errors.New("silhouette: empty mask")

// Default extraction parameters.
const (
	DefaultThreshold  = 0.9
	DefaultKernelSize = 3
)

// maxSamples bounds the number of luminance values fed to 2-means clustering.
const maxSamples = 12000

// Options controls silhouette extraction.
type Options struct {
	// Threshold is the luminance cut in (0,1). Pixels darker than it are
	// foreground.
	Threshold float64

	// KernelSize is the closing kernel, a positive odd integer.
	KernelSize int

	// AutoThreshold replaces Threshold with the midpoint between the two
	// luminance clusters of the image. Threshold stays the fallback when
	// clustering cannot separate the image.
	AutoThreshold bool
}

// DefaultOptions returns the default extraction options.
func DefaultOptions() Options {
	return Options{
		Threshold:  DefaultThreshold,
		KernelSize: DefaultKernelSize,
	}
}

// Validate checks option ranges.
func (o Options) Validate() error {
	if !(o.Threshold > 0 && o.Threshold < 1) {
		return fmt.Errorf("%w: threshold must be in (0,1), got %v", image.ErrInvalidParameter, o.Threshold)
	}
	return filter.ValidateKernel(o.KernelSize)
}

// Extract computes the object mask of a 3-channel raster.
//
// Parameters are validated before any pixel work. Returns ErrEmptyMask if
// the final mask has no foreground pixel.
func Extract(ex parallel.Executor, src *image.Raster, opts Options) (*image.Raster, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	lum, err := filter.ToLuminance(ex, src)
	if err != nil {
		return nil, err
	}

	t := opts.Threshold
	if opts.AutoThreshold {
		t = AutoThreshold(lum, opts.Threshold)
	}

	w, h := lum.Bounds()
	mask, err := image.NewRaster(w, h, 1)
	if err != nil {
		return nil, err
	}
	parallel.Or(ex).ForRows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			in := lum.Row(y)
			out := mask.Row(y)
			for x, l := range in {
				if l < t {
					out[x] = 1
				}
			}
		}
	})

	closed, err := filter.Close(ex, mask, opts.KernelSize)
	if err != nil {
		return nil, err
	}
	if closed.IsZero() {
		return nil, ErrEmptyMask
	}

	slogger().Debug("silhouette extracted",
		"width", w, "height", h, "threshold", t, "kernel", opts.KernelSize)
	return closed, nil
}

// AutoThreshold estimates a luminance threshold by 2-means clustering of a
// subsample of lum. It returns the midpoint of the two cluster centers, or
// fallback when clustering fails, the centers coincide, or the midpoint is
// not inside (0,1).
func AutoThreshold(lum *image.Raster, fallback float64) float64 {
	w, h := lum.Bounds()

	step := 1
	if w*h > maxSamples {
		step = int(math.Sqrt(float64(w*h)/float64(maxSamples))) + 1
	}

	dataset := make(clusters.Observations, 0, min(w*h, maxSamples))
	for y := 0; y < h; y += step {
		row := lum.Row(y)
		for x := 0; x < w; x += step {
			dataset = append(dataset, clusters.Coordinates{row[x]})
		}
	}
	if len(dataset) < 2 {
		return fallback
	}

	km := kmeans.New()
	cc, err := km.Partition(dataset, 2)
	if err != nil || len(cc) != 2 || len(cc[0].Center) == 0 || len(cc[1].Center) == 0 {
		slogger().Warn("auto threshold: clustering failed, using fallback",
			"fallback", fallback, "error", err)
		return fallback
	}

	c0, c1 := cc[0].Center[0], cc[1].Center[0]
	if math.Abs(c0-c1) < 1e-9 {
		return fallback
	}
	t := (c0 + c1) / 2
	if !(t > 0 && t < 1) {
		return fallback
	}

	slogger().Debug("auto threshold", "low", min(c0, c1), "high", max(c0, c1), "threshold", t)
	return t
}
