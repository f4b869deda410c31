package texture

import (
	"github.com/gogpu/atelier/internal/image"
	"github.com/gogpu/atelier/internal/parallel"
)

// Transform returns the UV transform for p: scale, then rotate, then
// translate.
func (p MappedParams) Transform() image.Affine {
	return image.Scale(p.Scale, p.Scale).
		Then(image.RotateDegrees(p.Rotation)).
		Then(image.Translate(p.OffsetX, p.OffsetY))
}

// mapAffine samples tex at transformed pixel-center coordinates.
//
// Output pixel (x, y) maps to x̂ = (2x+1)/W − 1 and ŷ = (2y+1)/H − 1, is
// transformed, and is brought back to [0,1] as u = (x̂'+1)/2. Samples outside
// [0,1] are reflected into the texture. With the identity transform this is
// the same sampling as a bilinear resize.
func mapAffine(ex parallel.Executor, m, tex *image.Raster, p MappedParams) (*image.Raster, error) {
	w, h := m.Bounds()
	out, err := image.NewRaster(w, h, 3)
	if err != nil {
		return nil, err
	}

	tr := p.Transform()
	fw, fh := float64(w), float64(h)

	parallel.Or(ex).ForRows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := out.Row(y)
			ny := (2*float64(y)+1)/fh - 1
			for x := range w {
				nx := (2*float64(x)+1)/fw - 1
				tx, ty := tr.TransformPoint(nx, ny)
				image.SampleReflect(tex, (tx+1)/2, (ty+1)/2, row[x*3:x*3+3])
			}
		}
	})
	return out, nil
}
