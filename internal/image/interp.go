package image

import (
	"fmt"
	"math"

	"github.com/gogpu/atelier/internal/parallel"
)

// SampleBilinear samples channel values at normalized coordinates (u, v)
// into dst, which must have length r.Channels().
//
// u and v are in [0,1] where (0,0) is the top-left edge of the top-left pixel
// and (1,1) the bottom-right edge of the bottom-right pixel; pixel centers sit
// at (x+0.5)/W. Coordinates beyond the outermost pixel centers are clamped to
// the edge.
func SampleBilinear(r *Raster, u, v float64, dst []float64) {
	// Convert normalized coords to continuous pixel coords
	fx := u*float64(r.width) - 0.5
	fy := v*float64(r.height) - 0.5
	sampleAt(r, fx, fy, dst)
}

// sampleAt interpolates at continuous pixel coordinates (fx, fy).
func sampleAt(r *Raster, fx, fy float64, dst []float64) {
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	x1 := clamp(x0+1, 0, r.width-1)
	y1 := clamp(y0+1, 0, r.height-1)
	x0 = clamp(x0, 0, r.width-1)
	y0 = clamp(y0, 0, r.height-1)

	c := r.channels
	i00 := (y0*r.width + x0) * c
	i10 := (y0*r.width + x1) * c
	i01 := (y1*r.width + x0) * c
	i11 := (y1*r.width + x1) * c

	for k := range c {
		dst[k] = lerp2D(r.pix[i00+k], r.pix[i10+k], r.pix[i01+k], r.pix[i11+k], tx, ty)
	}
}

// ResizeBilinear returns r resampled to newWidth×newHeight.
//
// Output pixel (x, y) samples the source at
// ((x+0.5)·W/newWidth − 0.5, (y+0.5)·H/newHeight − 0.5), so each axis scales
// independently by a possibly non-integer factor and a same-size resize is
// the identity. Returns ErrInvalidDimensions if either target size is
// non-positive.
func ResizeBilinear(ex parallel.Executor, r *Raster, newWidth, newHeight int) (*Raster, error) {
	if newWidth <= 0 || newHeight <= 0 {
		return nil, fmt.Errorf("%w: resize to %dx%d", ErrInvalidDimensions, newWidth, newHeight)
	}

	out := mustRaster(newWidth, newHeight, r.channels)
	sx := float64(r.width) / float64(newWidth)
	sy := float64(r.height) / float64(newHeight)
	c := r.channels

	parallel.Or(ex).ForRows(newHeight, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			fy := (float64(y)+0.5)*sy - 0.5
			row := out.Row(y)
			for x := range newWidth {
				fx := (float64(x)+0.5)*sx - 0.5
				sampleAt(r, fx, fy, row[x*c:(x+1)*c])
			}
		}
	})

	return out, nil
}

// clamp clamps an integer value to [minVal, maxVal].
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// clampFloat clamps a float64 value to [minVal, maxVal].
func clampFloat(val, minVal, maxVal float64) float64 {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// lerp performs linear interpolation between a and b.
func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// lerp2D performs bilinear interpolation on a 2x2 grid.
func lerp2D(v00, v10, v01, v11, tx, ty float64) float64 {
	v0 := lerp(v00, v10, tx)
	v1 := lerp(v01, v11, tx)
	return lerp(v0, v1, ty)
}
