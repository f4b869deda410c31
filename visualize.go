package atelier

import (
	stdimage "image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/atelier/internal/image"
)

// Panel layout of the diagnostic image, in pixels.
const (
	vizPanelSize = 320 // longest side of one panel
	vizMargin    = 8
	vizTitle     = 18
)

// vizTitles label the panels in row-major order.
var vizTitles = [4]string{"Original Image", "Silhouette", "Contour", "Pattern Pieces"}

// pieceColors cycles red, green, blue, cyan, magenta, yellow.
var pieceColors = []color.NRGBA{
	{R: 255, A: 128},
	{G: 255, A: 128},
	{B: 255, A: 128},
	{G: 255, B: 255, A: 128},
	{R: 255, B: 255, A: 128},
	{R: 255, G: 255, A: 128},
}

// Visualize draws a 2×2 diagnostic panel of a pattern extraction:
//
//	Original Image | Silhouette
//	Contour        | Pattern Pieces
//
// The contour panel shows contour pixels in red over the half-transparent
// silhouette. Pattern pieces are filled with half-transparent colors. If
// original is nil, the silhouette is shown in its place. A nil result, or one
// without a silhouette, gives the titled layout with blank panels.
func Visualize(original *Raster, result *PatternResult) *stdimage.RGBA {
	if result == nil || result.Silhouette == nil {
		out, panel, _ := vizCanvas(vizPanelSize, vizPanelSize)
		for i, title := range vizTitles {
			drawTitle(out, panel(i%2, i/2), title)
		}
		return out
	}

	mask := result.Silhouette
	if original == nil {
		original = mask
	}
	w, h := mask.Bounds()
	out, panel, s := vizCanvas(w, h)
	pw, ph := panel(0, 0).Dx(), panel(0, 0).Dy()

	silhouette := image.ToRGBA(mask)

	// Original image
	r := panel(0, 0)
	src := image.ToRGBA(original)
	draw.ApproxBiLinear.Scale(out, r, src, src.Bounds(), draw.Src, nil)
	drawTitle(out, r, vizTitles[0])

	// Silhouette
	r = panel(1, 0)
	draw.NearestNeighbor.Scale(out, r, silhouette, silhouette.Bounds(), draw.Src, nil)
	drawTitle(out, r, vizTitles[1])

	// Contour over the silhouette at half opacity
	r = panel(0, 1)
	scaled := stdimage.NewRGBA(stdimage.Rect(0, 0, pw, ph))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), silhouette, silhouette.Bounds(), draw.Src, nil)
	draw.DrawMask(out, r, scaled, stdimage.Point{}, stdimage.NewUniform(color.Alpha{A: 128}), stdimage.Point{}, draw.Over)
	red := stdimage.NewUniform(color.RGBA{R: 255, A: 255})
	dot := max(1, int(math.Round(s)))
	for _, p := range result.Contour {
		x := r.Min.X + int(float64(p.Col)*s)
		y := r.Min.Y + int(float64(p.Row)*s)
		draw.Draw(out, stdimage.Rect(x, y, x+dot, y+dot).Intersect(r), red, stdimage.Point{}, draw.Src)
	}
	drawTitle(out, r, vizTitles[2])

	// Pattern pieces
	r = panel(1, 1)
	draw.Draw(out, r, stdimage.NewUniform(color.Gray{Y: 240}), stdimage.Point{}, draw.Src)
	z := vector.NewRasterizer(pw, ph)
	for i, piece := range result.Pieces {
		z.Reset(pw, ph)
		for j, c := range piece {
			x := float32(clampFloat(c.X*s, 0, float64(pw)))
			y := float32(clampFloat(c.Y*s, 0, float64(ph)))
			if j == 0 {
				z.MoveTo(x, y)
			} else {
				z.LineTo(x, y)
			}
		}
		z.ClosePath()
		z.Draw(out, r, stdimage.NewUniform(pieceColors[i%len(pieceColors)]), stdimage.Point{})
	}
	drawTitle(out, r, vizTitles[3])

	return out
}

// vizCanvas allocates the white 2×2 layout for a w×h source. panel returns
// the rectangle of a panel; s is the source-to-panel scale.
func vizCanvas(w, h int) (out *stdimage.RGBA, panel func(col, row int) stdimage.Rectangle, s float64) {
	s = float64(vizPanelSize) / float64(max(w, h))
	pw := max(1, int(math.Round(float64(w)*s)))
	ph := max(1, int(math.Round(float64(h)*s)))

	out = stdimage.NewRGBA(stdimage.Rect(0, 0, 2*pw+3*vizMargin, 2*(ph+vizTitle)+3*vizMargin))
	draw.Draw(out, out.Bounds(), stdimage.White, stdimage.Point{}, draw.Src)

	panel = func(col, row int) stdimage.Rectangle {
		x := vizMargin + col*(pw+vizMargin)
		y := vizMargin + row*(ph+vizTitle+vizMargin) + vizTitle
		return stdimage.Rect(x, y, x+pw, y+ph)
	}
	return out, panel, s
}

// drawTitle writes a label above panel r.
func drawTitle(dst draw.Image, r stdimage.Rectangle, title string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  stdimage.Black,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(r.Min.X, r.Min.Y-5),
	}
	d.DrawString(title)
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
