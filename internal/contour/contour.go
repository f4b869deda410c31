// Package contour extracts the boundary pixels of a binary mask.
package contour

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/gogpu/atelier/internal/filter"
	"github.com/gogpu/atelier/internal/image"
	"github.com/gogpu/atelier/internal/parallel"
)

// ErrEmptyContour is returned when a mask has no boundary, for example a
// mask that is entirely 0 or entirely 1.
var ErrEmptyContour = errors.New("contour: empty contour")

// DefaultThreshold is the gradient magnitude above which a pixel is on the
// contour.
const DefaultThreshold = 0.1

// Point is an integer pixel coordinate.
type Point struct {
	Row, Col int
}

// Trace returns every pixel whose mask gradient magnitude exceeds threshold,
// in row-major order. The result is the boundary band of the mask, not an
// ordered closed curve.
//
// A threshold <= 0 selects DefaultThreshold.
func Trace(ex parallel.Executor, mask *image.Raster, threshold float64) ([]Point, error) {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	g, err := filter.GradientMagnitude(ex, mask)
	if err != nil {
		return nil, err
	}

	w, h := g.Bounds()
	var points []Point
	for y := range h {
		for x, v := range g.Row(y)[:w] {
			if v > threshold {
				points = append(points, Point{Row: y, Col: x})
			}
		}
	}
	if len(points) == 0 {
		return nil, ErrEmptyContour
	}
	return points, nil
}

// Centroid returns the mean row and column of points.
func Centroid(points []Point) (row, col float64, err error) {
	if len(points) == 0 {
		return 0, 0, fmt.Errorf("%w: centroid of no points", ErrEmptyContour)
	}

	rows := make([]float64, len(points))
	cols := make([]float64, len(points))
	for i, p := range points {
		rows[i] = float64(p.Row)
		cols[i] = float64(p.Col)
	}
	return stat.Mean(rows, nil), stat.Mean(cols, nil), nil
}
