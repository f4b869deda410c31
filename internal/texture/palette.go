package texture

import (
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/atelier/internal/image"
)

// paletteCandidates is the number of dominant colors considered before
// picking the two heaviest.
const paletteCandidates = 8

// dominantPair returns the two heaviest dominant colors of tex, heaviest
// first. It reports false if fewer than two colors are found.
func dominantPair(tex *image.Raster) (colorful.Color, colorful.Color, bool) {
	candidates := dominantcolor.FindWeight(image.ToRGBA(tex), paletteCandidates)
	if len(candidates) < 2 {
		return colorful.Color{}, colorful.Color{}, false
	}

	slices.SortStableFunc(candidates, func(a, b dominantcolor.Color) int {
		switch {
		case a.Weight > b.Weight:
			return -1
		case a.Weight < b.Weight:
			return 1
		default:
			return 0
		}
	})

	c1, _ := colorful.MakeColor(candidates[0].RGBA)
	c2, _ := colorful.MakeColor(candidates[1].RGBA)
	slogger().Debug("auto palette", "color1", c1.Hex(), "color2", c2.Hex())
	return c1.Clamped(), c2.Clamped(), true
}
