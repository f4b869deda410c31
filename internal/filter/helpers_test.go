package filter

import (
	"testing"

	"github.com/gogpu/atelier/internal/image"
)

// maskFromRows builds a 1-channel raster from rows of 0/1 values.
func maskFromRows(t *testing.T, rows ...[]float64) *image.Raster {
	t.Helper()
	h := len(rows)
	w := len(rows[0])
	pix := make([]float64, 0, w*h)
	for _, r := range rows {
		pix = append(pix, r...)
	}
	m, err := image.FromPix(pix, w, h, 1)
	if err != nil {
		t.Fatalf("FromPix failed: %v", err)
	}
	return m
}

// squareMask returns a size×size mask with ones in [lo, hi] on both axes.
func squareMask(t *testing.T, size, lo, hi int) *image.Raster {
	t.Helper()
	m, err := image.NewRaster(size, size, 1)
	if err != nil {
		t.Fatalf("NewRaster failed: %v", err)
	}
	for y := lo; y <= hi; y++ {
		for x := lo; x <= hi; x++ {
			m.Set(x, y, 0, 1)
		}
	}
	return m
}
