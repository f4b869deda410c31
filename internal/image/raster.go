// Package image provides the raster buffer and pixel primitives shared by the
// silhouette, contour and texture stages.
//
// A Raster stores float64 channel values interleaved row-major. Values are
// normalized to [0,1]; conversion to and from 8-bit happens only in the codec.
package image

import "fmt"

// Raster is an H×W×C grid of normalized channel values.
//
// Channels is 1 (luminance, masks) or 3 (RGB). Rasters are treated as
// immutable once returned from a stage; every operation allocates its output.
//
// Thread safety: Raster is safe for concurrent read access.
type Raster struct {
	pix      []float64
	width    int
	height   int
	channels int
}

// NewRaster creates a zeroed raster with the given dimensions.
// Returns ErrInvalidDimensions if width or height is non-positive or if
// channels is not 1 or 3.
func NewRaster(width, height, channels int) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if channels != 1 && channels != 3 {
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidDimensions, channels)
	}
	return &Raster{
		pix:      make([]float64, width*height*channels),
		width:    width,
		height:   height,
		channels: channels,
	}, nil
}

// FromPix wraps an existing interleaved slice without copying.
// The slice length must be exactly width*height*channels.
func FromPix(pix []float64, width, height, channels int) (*Raster, error) {
	if width <= 0 || height <= 0 || (channels != 1 && channels != 3) {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrInvalidDimensions, width, height, channels)
	}
	if len(pix) != width*height*channels {
		return nil, fmt.Errorf("%w: have %d values, want %d",
			ErrInvalidDimensions, len(pix), width*height*channels)
	}
	return &Raster{pix: pix, width: width, height: height, channels: channels}, nil
}

// mustRaster allocates a raster whose dimensions were already validated.
func mustRaster(width, height, channels int) *Raster {
	return &Raster{
		pix:      make([]float64, width*height*channels),
		width:    width,
		height:   height,
		channels: channels,
	}
}

// Width returns the raster width in pixels.
func (r *Raster) Width() int { return r.width }

// Height returns the raster height in pixels.
func (r *Raster) Height() int { return r.height }

// Channels returns the number of channels per pixel.
func (r *Raster) Channels() int { return r.channels }

// Bounds returns the raster dimensions as (width, height).
func (r *Raster) Bounds() (int, int) { return r.width, r.height }

// Pix returns the underlying interleaved values.
// Callers must not modify the slice of a raster they did not create.
func (r *Raster) Pix() []float64 { return r.pix }

// Row returns the values of row y (width*channels values).
// Returns nil if y is out of bounds.
func (r *Raster) Row(y int) []float64 {
	if y < 0 || y >= r.height {
		return nil
	}
	stride := r.width * r.channels
	return r.pix[y*stride : (y+1)*stride]
}

// At returns channel c of pixel (x, y).
// Returns 0 for coordinates outside the raster.
func (r *Raster) At(x, y, c int) float64 {
	if x < 0 || x >= r.width || y < 0 || y >= r.height || c < 0 || c >= r.channels {
		return 0
	}
	return r.pix[(y*r.width+x)*r.channels+c]
}

// Set sets channel c of pixel (x, y). Out-of-range coordinates are ignored.
func (r *Raster) Set(x, y, c int, v float64) {
	if x < 0 || x >= r.width || y < 0 || y >= r.height || c < 0 || c >= r.channels {
		return
	}
	r.pix[(y*r.width+x)*r.channels+c] = v
}

// SameSize reports whether r and o have equal width and height.
func (r *Raster) SameSize(o *Raster) bool {
	return r != nil && o != nil && r.width == o.width && r.height == o.height
}

// Clone creates a deep copy of the raster.
func (r *Raster) Clone() *Raster {
	pix := make([]float64, len(r.pix))
	copy(pix, r.pix)
	return &Raster{pix: pix, width: r.width, height: r.height, channels: r.channels}
}

// Equal reports whether both rasters have identical shape and values.
func (r *Raster) Equal(o *Raster) bool {
	if r == nil || o == nil {
		return r == o
	}
	if !r.SameSize(o) || r.channels != o.channels {
		return false
	}
	for i, v := range r.pix {
		if o.pix[i] != v {
			return false
		}
	}
	return true
}

// IsZero reports whether every value in the raster is zero.
func (r *Raster) IsZero() bool {
	for _, v := range r.pix {
		if v != 0 {
			return false
		}
	}
	return true
}

// Broadcast returns a 3-channel raster. A 1-channel raster has its value
// repeated across channels; a 3-channel raster is returned unchanged.
func (r *Raster) Broadcast() *Raster {
	if r.channels == 3 {
		return r
	}
	out := mustRaster(r.width, r.height, 3)
	for i, v := range r.pix {
		out.pix[i*3] = v
		out.pix[i*3+1] = v
		out.pix[i*3+2] = v
	}
	return out
}
