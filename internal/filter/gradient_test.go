package filter

import (
	"math"
	"testing"

	"github.com/gogpu/atelier/internal/image"
)

func TestGradientMagnitudeUniform(t *testing.T) {
	m := squareMask(t, 6, 0, 5)

	g, err := GradientMagnitude(nil, m)
	if err != nil {
		t.Fatalf("GradientMagnitude failed: %v", err)
	}
	if !g.IsZero() {
		t.Errorf("gradient of a uniform mask = %v, want all zero", g.Pix())
	}
}

func TestGradientMagnitudeStep(t *testing.T) {
	// Single row: x-derivative only.
	m := maskFromRows(t, []float64{0, 0, 1, 1})

	g, err := GradientMagnitude(nil, m)
	if err != nil {
		t.Fatalf("GradientMagnitude failed: %v", err)
	}
	// one-sided, central, central, one-sided
	want := []float64{0, 0.5, 0.5, 0}
	for i, w := range want {
		if math.Abs(g.Pix()[i]-w) > 1e-12 {
			t.Errorf("gradient[%d] = %v, want %v", i, g.Pix()[i], w)
		}
	}
}

func TestGradientMagnitudeBorders(t *testing.T) {
	m := maskFromRows(t,
		[]float64{1, 0},
		[]float64{0, 0},
	)

	g, err := GradientMagnitude(nil, m)
	if err != nil {
		t.Fatalf("GradientMagnitude failed: %v", err)
	}
	// (0,0): dx = 0-1, dy = 0-1
	if math.Abs(g.At(0, 0, 0)-math.Sqrt2) > 1e-12 {
		t.Errorf("gradient(0,0) = %v, want sqrt(2)", g.At(0, 0, 0))
	}
	// (1,1): dx = 0, dy = 0
	if g.At(1, 1, 0) != 0 {
		t.Errorf("gradient(1,1) = %v, want 0", g.At(1, 1, 0))
	}
}

func TestGradientMagnitudeSquareBand(t *testing.T) {
	m := squareMask(t, 20, 5, 14)

	g, err := GradientMagnitude(nil, m)
	if err != nil {
		t.Fatalf("GradientMagnitude failed: %v", err)
	}
	// The edge band is two pixels wide: one outside, one inside.
	for _, x := range []int{4, 5, 14, 15} {
		if g.At(x, 10, 0) <= 0.1 {
			t.Errorf("gradient(%d,10) = %v, want > 0.1", x, g.At(x, 10, 0))
		}
	}
	for _, x := range []int{3, 6, 13, 16} {
		if g.At(x, 10, 0) != 0 {
			t.Errorf("gradient(%d,10) = %v, want 0", x, g.At(x, 10, 0))
		}
	}
}

func TestGradientMagnitudeSinglePixel(t *testing.T) {
	m, _ := image.FromPix([]float64{1}, 1, 1, 1)
	g, err := GradientMagnitude(nil, m)
	if err != nil {
		t.Fatalf("GradientMagnitude failed: %v", err)
	}
	if g.At(0, 0, 0) != 0 {
		t.Errorf("gradient of 1x1 = %v, want 0", g.At(0, 0, 0))
	}
}
