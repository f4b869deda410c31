// Package texture composites a texture onto a silhouette mask.
//
// Three modes are supported:
//   - simple: the texture resized to the mask, multiplied by the mask
//   - mapped: the texture sampled through an affine UV transform with
//     reflection at the borders
//   - procedural: a two-color blend driven by noise, checker or stripes
//
// All modes return a 3-channel raster of the mask's size. A zero mask always
// yields a zero raster.
package texture

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/atelier/internal/image"
	"github.com/gogpu/atelier/internal/parallel"
)

// Kind selects the texture mapping mode.
type Kind string

// Texture kinds.
const (
	KindSimple     Kind = "simple"
	KindMapped     Kind = "mapped"
	KindProcedural Kind = "procedural"
)

// Pattern selects the procedural blend factor.
type Pattern string

// Procedural patterns.
const (
	PatternNoise   Pattern = "noise"
	PatternChecker Pattern = "checker"
	PatternStripes Pattern = "stripes"
)

// MappedParams configures the mapped mode.
type MappedParams struct {
	Scale    float64 // > 0, applied first
	Rotation float64 // degrees, applied after scale
	OffsetX  float64 // applied last, in normalized [-1,1] units
	OffsetY  float64
}

// ProceduralParams configures the procedural mode.
type ProceduralParams struct {
	Pattern Pattern
	Scale   float64 // > 0; cells have side 1/Scale pixels

	// Color1 is used where the blend factor is 1, Color2 where it is 0.
	Color1 colorful.Color
	Color2 colorful.Color

	// Seed makes the noise pattern reproducible. Nil draws a fresh seed.
	Seed *uint64

	// AutoPalette derives Color1 and Color2 from the texture's two
	// heaviest dominant colors.
	AutoPalette bool
}

// Descriptor is a tagged texture request. Only the parameters of Kind are
// used.
type Descriptor struct {
	Kind       Kind
	Mapped     MappedParams
	Procedural ProceduralParams
}

// Default colors for the procedural mode.
var (
	DefaultColor1 = colorful.Color{R: 1, G: 0, B: 0}
	DefaultColor2 = colorful.Color{R: 0, G: 0, B: 1}
)

// DefaultMapped returns the identity mapping.
func DefaultMapped() MappedParams {
	return MappedParams{Scale: 1}
}

// DefaultProcedural returns a red/blue noise blend.
func DefaultProcedural() ProceduralParams {
	return ProceduralParams{
		Pattern: PatternNoise,
		Scale:   0.1,
		Color1:  DefaultColor1,
		Color2:  DefaultColor2,
	}
}

// Simple returns a simple-mode descriptor.
func Simple() Descriptor {
	return Descriptor{Kind: KindSimple}
}

// Mapped returns a mapped-mode descriptor.
func Mapped(p MappedParams) Descriptor {
	return Descriptor{Kind: KindMapped, Mapped: p}
}

// Procedural returns a procedural-mode descriptor.
func Procedural(p ProceduralParams) Descriptor {
	return Descriptor{Kind: KindProcedural, Procedural: p}
}

// Validate checks the parameters of the selected kind.
func (d Descriptor) Validate() error {
	switch d.Kind {
	case KindMapped:
		p := d.Mapped
		if !(p.Scale > 0) || math.IsInf(p.Scale, 0) {
			return fmt.Errorf("%w: mapped scale must be > 0, got %v", image.ErrInvalidParameter, p.Scale)
		}
		for _, v := range []float64{p.Rotation, p.OffsetX, p.OffsetY} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: mapped parameters must be finite", image.ErrInvalidParameter)
			}
		}
	case KindProcedural:
		p := d.Procedural
		if !(p.Scale > 0) || math.IsInf(p.Scale, 0) {
			return fmt.Errorf("%w: procedural scale must be > 0, got %v", image.ErrInvalidParameter, p.Scale)
		}
		if !p.Color1.IsValid() || !p.Color2.IsValid() {
			return fmt.Errorf("%w: colors must be in [0,1]", image.ErrInvalidParameter)
		}
	}
	return nil
}

// Map composites tex onto mask according to d.
//
// mask may have 1 or 3 channels; a 1-channel mask is broadcast. The output
// has the mask's size and 3 channels. An unknown kind falls back to simple
// overlay.
func Map(ex parallel.Executor, mask, tex *image.Raster, d Descriptor) (*image.Raster, error) {
	return MapCached(ex, nil, mask, tex, d)
}

// MapCached is Map reusing resized textures and seeded noise fields from c.
func MapCached(ex parallel.Executor, c *Cache, mask, tex *image.Raster, d Descriptor) (*image.Raster, error) {
	if mask == nil || tex == nil {
		return nil, fmt.Errorf("%w: nil mask or texture", image.ErrInvalidDimensions)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	m := mask.Broadcast()
	tex = tex.Broadcast()

	var (
		out *image.Raster
		err error
	)
	switch d.Kind {
	case KindMapped:
		out, err = mapAffine(ex, m, tex, d.Mapped)
	case KindProcedural:
		out, err = procedural(ex, c, m, tex, d.Procedural)
	case KindSimple:
		out, err = simple(ex, c, m, tex)
	default:
		slogger().Warn("unknown texture kind, using simple overlay", "kind", string(d.Kind))
		out, err = simple(ex, c, m, tex)
	}
	if err != nil {
		return nil, err
	}

	applyMask(ex, out, m)
	return out, nil
}

// simple resizes the texture to the mask size. The result is owned by the
// caller.
func simple(ex parallel.Executor, c *Cache, m, tex *image.Raster) (*image.Raster, error) {
	w, h := m.Bounds()
	r, err := c.resize(ex, tex, w, h)
	if err != nil {
		return nil, err
	}
	if c != nil {
		r = r.Clone()
	}
	return r, nil
}

// applyMask multiplies out by m in place. Both are 3-channel and the same
// size.
func applyMask(ex parallel.Executor, out, m *image.Raster) {
	parallel.Or(ex).ForRows(out.Height(), func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			dst := out.Row(y)
			for i, v := range m.Row(y) {
				dst[i] *= v
			}
		}
	})
}
