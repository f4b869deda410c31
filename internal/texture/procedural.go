package texture

import (
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/floats"

	"github.com/gogpu/atelier/internal/image"
	"github.com/gogpu/atelier/internal/parallel"
)

// noiseDownscale is the per-axis ratio between the mask and the noise field.
const noiseDownscale = 8

// noiseEpsilon guards min-max normalization of a flat field.
const noiseEpsilon = 1e-12

// Factor returns the blend factor of a periodic pattern at (row, col), and
// false for patterns that are not periodic (noise, unknown).
func Factor(p Pattern, row, col int, scale float64) (float64, bool) {
	switch p {
	case PatternChecker:
		cell := int64(math.Floor(float64(row)*scale)) + int64(math.Floor(float64(col)*scale))
		return float64(mod2(cell)), true
	case PatternStripes:
		return float64(mod2(int64(math.Floor(float64(col) * scale)))), true
	default:
		return 0, false
	}
}

func mod2(v int64) int64 {
	r := v % 2
	if r < 0 {
		r += 2
	}
	return r
}

func procedural(ex parallel.Executor, c *Cache, m, tex *image.Raster, p ProceduralParams) (*image.Raster, error) {
	w, h := m.Bounds()

	if p.AutoPalette {
		if c1, c2, ok := dominantPair(tex); ok {
			p.Color1, p.Color2 = c1, c2
		}
	}

	var field *image.Raster
	switch p.Pattern {
	case PatternNoise:
		var err error
		if field, err = c.noise(ex, w, h, p.Seed); err != nil {
			return nil, err
		}
	case PatternChecker, PatternStripes:
	default:
		slogger().Warn("unknown procedural pattern, using texture", "pattern", string(p.Pattern))
		return simple(ex, c, m, tex)
	}

	out, err := image.NewRaster(w, h, 3)
	if err != nil {
		return nil, err
	}

	parallel.Or(ex).ForRows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := out.Row(y)
			for x := range w {
				var f float64
				if field != nil {
					f = field.At(x, y, 0)
				} else {
					f, _ = Factor(p.Pattern, y, x, p.Scale)
				}
				c := blend(p.Color1, p.Color2, f)
				row[x*3] = c.R
				row[x*3+1] = c.G
				row[x*3+2] = c.B
			}
		}
	})
	return out, nil
}

// blend returns color1·f + color2·(1−f).
func blend(color1, color2 colorful.Color, f float64) colorful.Color {
	return color2.BlendRgb(color1, f)
}

// noiseField returns a w×h field in [0,1]: Gaussian noise drawn at 1/8 of
// the resolution, bilinearly upsampled and min-max normalized.
func noiseField(ex parallel.Executor, w, h int, seed *uint64) (*image.Raster, error) {
	var s uint64
	if seed != nil {
		s = *seed
	} else {
		s = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))

	lw := max(1, w/noiseDownscale)
	lh := max(1, h/noiseDownscale)
	low, err := image.NewRaster(lw, lh, 1)
	if err != nil {
		return nil, err
	}
	for i := range low.Pix() {
		low.Pix()[i] = rng.NormFloat64()
	}

	field, err := image.ResizeBilinear(ex, low, w, h)
	if err != nil {
		return nil, err
	}

	pix := field.Pix()
	lo, hi := floats.Min(pix), floats.Max(pix)
	floats.AddConst(-lo, pix)
	floats.Scale(1/max(hi-lo, noiseEpsilon), pix)
	return field, nil
}
