package image

import "math"

// Affine represents a 2D affine transformation.
//
// The transformation is the upper two rows of a 3x3 matrix:
//
//	| a  b  c |
//	| d  e  f |
//	| 0  0  1 |
//
// so that x' = ax + by + c and y' = dx + ey + f.
type Affine struct {
	a, b, c float64
	d, e, f float64
}

// Translate returns a translation by (tx, ty).
func Translate(tx, ty float64) Affine {
	return Affine{a: 1, c: tx, e: 1, f: ty}
}

// Scale returns a scaling by (sx, sy) around the origin.
func Scale(sx, sy float64) Affine {
	return Affine{a: sx, e: sy}
}

// Rotate returns a rotation by angle radians around the origin, using the
// standard matrix [cos −sin; sin cos].
func Rotate(angle float64) Affine {
	sin, cos := math.Sincos(angle)
	return Affine{
		a: cos, b: -sin,
		d: sin, e: cos,
	}
}

// RotateDegrees returns a rotation by deg degrees around the origin.
func RotateDegrees(deg float64) Affine {
	return Rotate(deg * math.Pi / 180)
}

// Multiply returns the product a·other, which applies other first, then a.
func (a Affine) Multiply(other Affine) Affine {
	return Affine{
		a: a.a*other.a + a.b*other.d,
		b: a.a*other.b + a.b*other.e,
		c: a.a*other.c + a.b*other.f + a.c,
		d: a.d*other.a + a.e*other.d,
		e: a.d*other.b + a.e*other.e,
		f: a.d*other.c + a.e*other.f + a.f,
	}
}

// Then returns the transform that applies a first and next second.
func (a Affine) Then(next Affine) Affine {
	return next.Multiply(a)
}

// TransformPoint applies the transformation to (x, y).
func (a Affine) TransformPoint(x, y float64) (float64, float64) {
	return a.a*x + a.b*y + a.c, a.d*x + a.e*y + a.f
}
