package image

import "math"

// Reflect maps a normalized coordinate into [0,1] by mirroring the image at
// every integer boundary. Even periods keep the fractional part, odd periods
// mirror it.
func Reflect(t float64) float64 {
	ti := math.Floor(t)
	tf := t - ti

	if int64(ti)%2 != 0 {
		return 1.0 - tf
	}
	return tf
}

// SampleReflect samples r at (u, v) after reflecting both coordinates into
// [0,1]. See SampleBilinear for the coordinate convention.
func SampleReflect(r *Raster, u, v float64, dst []float64) {
	SampleBilinear(r, Reflect(u), Reflect(v), dst)
}
