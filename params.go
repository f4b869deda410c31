package atelier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/text/cases"

	"github.com/gogpu/atelier/internal/texture"
)

// textureParams is the JSON form of texture parameters. Absent keys keep
// their defaults; unknown keys are ignored.
type textureParams struct {
	Scale    *float64        `json:"scale"`
	Rotation *float64        `json:"rotation"`
	OffsetX  *float64        `json:"offset_x"`
	OffsetY  *float64        `json:"offset_y"`
	Pattern  *string         `json:"pattern"`
	Color1   json.RawMessage `json:"color1"`
	Color2   json.RawMessage `json:"color2"`
	Seed     *uint64         `json:"seed"`
	Palette  *string         `json:"palette"`
}

// ParseTextureParams builds a descriptor from a texture type name and a JSON
// parameter object.
//
// Type and pattern names are case-folded. raw may be empty. Recognized keys:
//
//	mapped:     scale, rotation (degrees), offset_x, offset_y
//	procedural: pattern, scale, color1, color2, seed, palette
//
// Colors are [r, g, b] arrays in [0,1] or hex strings such as "#ff0000".
// palette "auto" takes both colors from the texture. An unknown type is kept
// and renders as a simple overlay.
//
// Malformed JSON or out-of-range values return ErrInvalidParameter.
func ParseTextureParams(kind string, raw []byte) (TextureDescriptor, error) {
	fold := cases.Fold()

	k := texture.Kind(fold.String(strings.TrimSpace(kind)))
	if k == "" {
		k = texture.KindSimple
	}

	var p textureParams
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
		if err := json.Unmarshal(trimmed, &p); err != nil {
			return TextureDescriptor{}, fmt.Errorf("%w: texture params: %v", ErrInvalidParameter, err)
		}
	}

	desc := TextureDescriptor{Kind: k}
	switch k {
	case texture.KindMapped:
		m := texture.DefaultMapped()
		setFloat(&m.Scale, p.Scale)
		setFloat(&m.Rotation, p.Rotation)
		setFloat(&m.OffsetX, p.OffsetX)
		setFloat(&m.OffsetY, p.OffsetY)
		desc.Mapped = m

	case texture.KindProcedural:
		pp := texture.DefaultProcedural()
		setFloat(&pp.Scale, p.Scale)
		if p.Pattern != nil {
			pp.Pattern = texture.Pattern(fold.String(strings.TrimSpace(*p.Pattern)))
		}
		var err error
		if pp.Color1, err = parseColor(p.Color1, pp.Color1); err != nil {
			return TextureDescriptor{}, fmt.Errorf("color1: %w", err)
		}
		if pp.Color2, err = parseColor(p.Color2, pp.Color2); err != nil {
			return TextureDescriptor{}, fmt.Errorf("color2: %w", err)
		}
		pp.Seed = p.Seed
		if p.Palette != nil {
			switch fold.String(strings.TrimSpace(*p.Palette)) {
			case "auto":
				pp.AutoPalette = true
			case "", "manual":
			default:
				return TextureDescriptor{}, fmt.Errorf("%w: unknown palette %q", ErrInvalidParameter, *p.Palette)
			}
		}
		desc.Procedural = pp
	}

	if err := desc.Validate(); err != nil {
		return TextureDescriptor{}, err
	}
	return desc, nil
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// parseColor decodes a color given as [r, g, b] in [0,1] or a hex string.
// An absent value returns def.
func parseColor(raw json.RawMessage, def colorful.Color) (colorful.Color, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return def, nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return colorful.Color{}, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
		}
		s = strings.TrimSpace(s)
		if !strings.HasPrefix(s, "#") {
			s = "#" + s
		}
		c, err := colorful.Hex(s)
		if err != nil {
			return colorful.Color{}, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
		}
		return c, nil
	}

	var rgb []float64
	if err := json.Unmarshal(raw, &rgb); err != nil {
		return colorful.Color{}, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}
	if len(rgb) != 3 {
		return colorful.Color{}, fmt.Errorf("%w: color needs 3 components, have %d", ErrInvalidParameter, len(rgb))
	}
	c := colorful.Color{R: rgb[0], G: rgb[1], B: rgb[2]}
	if !c.IsValid() {
		return colorful.Color{}, fmt.Errorf("%w: color components must be in [0,1]", ErrInvalidParameter)
	}
	return c, nil
}
