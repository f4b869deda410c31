// Package decompose splits a contour into quadrilateral pattern pieces.
//
// The contour is divided into equal angular sectors around its centroid. The
// point farthest from the centroid in each sector is that sector's
// extremity, and consecutive extremities are joined by a strip of fixed
// width. The result is a coarse developable approximation of the outline,
// not a sewing-accurate pattern.
package decompose

import (
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/geom/vec"

	"github.com/gogpu/atelier/internal/contour"
	"github.com/gogpu/atelier/internal/image"
)

// ErrDegenerateSector is returned when an angular sector holds no contour
// point. The piece count exceeds the angular resolution of the contour.
var ErrDegenerateSector = errors.New("decompose: degenerate sector")

// DefaultOffset is the default strip width of a piece, in pixels.
const DefaultOffset = 20.0

// epsilon guards the normalization of zero-length edges.
const epsilon = 1e-8

// SectorError reports which sector was empty.
type SectorError struct {
	Sector int // zero-based sector index
	Pieces int // requested piece count
}

func (e *SectorError) Error() string {
	return fmt.Sprintf("decompose: sector %d of %d has no contour points", e.Sector, e.Pieces)
}

// Unwrap returns ErrDegenerateSector.
func (e *SectorError) Unwrap() error { return ErrDegenerateSector }

// Piece is a closed quadrilateral. Points use X for the column and Y for
// the row.
type Piece [4]vec.Vec2

// Points returns the corners as a slice.
func (p Piece) Points() []vec.Vec2 {
	return []vec.Vec2{p[0], p[1], p[2], p[3]}
}

// Area returns the absolute shoelace area.
func (p Piece) Area() float64 {
	var sum float64
	for i := range p {
		a, b := p[i], p[(i+1)%len(p)]
		sum += a.X*b.Y - b.X*a.Y
	}
	return math.Abs(sum) / 2
}

// Result holds the pieces and the geometry they were built from.
type Result struct {
	Pieces      []Piece
	Centroid    vec.Vec2
	Extremities []vec.Vec2
}

// Decompose builds n pieces from the contour points.
//
// Sector i spans angles [i·2π/n, (i+1)·2π/n), measured as
// atan2(row-C.row, col-C.col) mapped to [0, 2π). Within a sector the point
// with the greatest distance to the centroid wins; ties go to the point
// that comes first in points.
func Decompose(points []contour.Point, n int, offset float64) (*Result, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: piece count must be at least 1, got %d", image.ErrInvalidParameter, n)
	}
	if math.IsNaN(offset) || math.IsInf(offset, 0) {
		return nil, fmt.Errorf("%w: offset must be finite", image.ErrInvalidParameter)
	}

	cr, cc, err := contour.Centroid(points)
	if err != nil {
		return nil, err
	}
	center := vec.Vec2{X: cc, Y: cr}

	width := 2 * math.Pi / float64(n)
	best := make([]int, n)
	bestDist := make([]float64, n)
	for i := range best {
		best[i] = -1
	}

	for idx, p := range points {
		d := toVec(p).Sub(center)
		s := sectorOf(angle(d), width, n)
		dist := d.Length()
		if best[s] < 0 || dist > bestDist[s] {
			best[s] = idx
			bestDist[s] = dist
		}
	}

	extremities := make([]vec.Vec2, n)
	for s, idx := range best {
		if idx < 0 {
			return nil, &SectorError{Sector: s, Pieces: n}
		}
		extremities[s] = toVec(points[idx])
	}

	pieces := make([]Piece, n)
	for i := range n {
		pieces[i] = strip(extremities[i], extremities[(i+1)%n], offset)
	}

	return &Result{
		Pieces:      pieces,
		Centroid:    center,
		Extremities: extremities,
	}, nil
}

// strip returns [a, a+u, b+u, b] where u is the perpendicular of b-a
// scaled to offset.
func strip(a, b vec.Vec2, offset float64) Piece {
	v := b.Sub(a)
	// (row, col) -> (-col, row), written in X=col, Y=row terms.
	perp := vec.Vec2{X: v.Y, Y: -v.X}
	u := perp.Mul(offset / (v.Length() + epsilon))
	return Piece{a, a.Add(u), b.Add(u), b}
}

// angle returns atan2(d.row, d.col) in [0, 2π).
func angle(d vec.Vec2) float64 {
	a := math.Atan2(d.Y, d.X)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// sectorOf returns i with i·width <= a < (i+1)·width, clamped to [0, n).
func sectorOf(a, width float64, n int) int {
	s := int(a / width)
	if s > 0 && a < float64(s)*width {
		s--
	}
	if s < n-1 && a >= float64(s+1)*width {
		s++
	}
	return min(max(s, 0), n-1)
}

func toVec(p contour.Point) vec.Vec2 {
	return vec.Vec2{X: float64(p.Col), Y: float64(p.Row)}
}
