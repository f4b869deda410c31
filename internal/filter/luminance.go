package filter

import (
	"fmt"

	"github.com/gogpu/atelier/internal/image"
	"github.com/gogpu/atelier/internal/parallel"
)

// Luminance weights for R, G and B (ITU-R BT.601).
const (
	LumaR = 0.299
	LumaG = 0.587
	LumaB = 0.114
)

// ToLuminance converts a 3-channel raster to a 1-channel raster with
// L = 0.299·R + 0.587·G + 0.114·B.
//
// Returns image.ErrChannelMismatch if src is not 3-channel.
func ToLuminance(ex parallel.Executor, src *image.Raster) (*image.Raster, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil raster", image.ErrInvalidDimensions)
	}
	if src.Channels() != 3 {
		return nil, fmt.Errorf("%w: luminance needs 3 channels, have %d",
			image.ErrChannelMismatch, src.Channels())
	}

	w, h := src.Bounds()
	dst, err := image.NewRaster(w, h, 1)
	if err != nil {
		return nil, err
	}

	parallel.Or(ex).ForRows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			in := src.Row(y)
			out := dst.Row(y)
			for x := range w {
				out[x] = LumaR*in[x*3] + LumaG*in[x*3+1] + LumaB*in[x*3+2]
			}
		}
	})
	return dst, nil
}
