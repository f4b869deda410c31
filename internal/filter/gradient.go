package filter

import (
	"fmt"
	"math"

	"github.com/gogpu/atelier/internal/image"
	"github.com/gogpu/atelier/internal/parallel"
)

// GradientMagnitude computes sqrt(dx²+dy²) for a 1-channel raster.
//
// Derivatives use central differences in the interior and one-sided
// differences on the first and last row/column. Along an axis of length 1
// the derivative is zero.
func GradientMagnitude(ex parallel.Executor, m *image.Raster) (*image.Raster, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil mask", image.ErrInvalidDimensions)
	}
	if m.Channels() != 1 {
		return nil, fmt.Errorf("%w: gradient needs 1 channel, have %d",
			image.ErrChannelMismatch, m.Channels())
	}

	w, h := m.Bounds()
	dst, err := image.NewRaster(w, h, 1)
	if err != nil {
		return nil, err
	}

	parallel.Or(ex).ForRows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			out := dst.Row(y)
			for x := range w {
				dx := derivative(m, x, y, w, true)
				dy := derivative(m, x, y, h, false)
				out[x] = math.Hypot(dx, dy)
			}
		}
	})
	return dst, nil
}

// derivative returns the first difference at (x, y) along one axis of
// length n.
func derivative(m *image.Raster, x, y, n int, alongX bool) float64 {
	if n < 2 {
		return 0
	}
	at := func(i int) float64 {
		if alongX {
			return m.At(i, y, 0)
		}
		return m.At(x, i, 0)
	}
	i := y
	if alongX {
		i = x
	}

	switch i {
	case 0:
		return at(1) - at(0)
	case n - 1:
		return at(n-1) - at(n-2)
	default:
		return (at(i+1) - at(i-1)) / 2
	}
}
