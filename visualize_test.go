package atelier

import (
	stdimage "image"
	"image/color"
	"testing"
)

func TestVisualize(t *testing.T) {
	img := squarePhoto(t)
	res, err := ExtractPattern(img)
	if err != nil {
		t.Fatalf("ExtractPattern failed: %v", err)
	}

	out := Visualize(img, res)

	// 200×200 input scales to 320×320 panels.
	wantW := 2*vizPanelSize + 3*vizMargin
	wantH := 2*(vizPanelSize+vizTitle) + 3*vizMargin
	if out.Bounds() != stdimage.Rect(0, 0, wantW, wantH) {
		t.Fatalf("Bounds() = %v, want %dx%d", out.Bounds(), wantW, wantH)
	}

	panel := func(col, row int) stdimage.Rectangle {
		x := vizMargin + col*(vizPanelSize+vizMargin)
		y := vizMargin + row*(vizPanelSize+vizTitle+vizMargin) + vizTitle
		return stdimage.Rect(x, y, x+vizPanelSize, y+vizPanelSize)
	}
	count := func(r stdimage.Rectangle, match func(color.RGBA) bool) int {
		n := 0
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				if match(out.RGBAAt(x, y)) {
					n++
				}
			}
		}
		return n
	}

	// Silhouette panel: white square on black.
	sil := panel(1, 0)
	if c := out.RGBAAt(sil.Min.X+160, sil.Min.Y+160); c.R != 255 {
		t.Errorf("silhouette center = %v, want white", c)
	}
	if c := out.RGBAAt(sil.Min.X+2, sil.Min.Y+2); c.R != 0 {
		t.Errorf("silhouette corner = %v, want black", c)
	}

	red := count(panel(0, 1), func(c color.RGBA) bool {
		return c.R == 255 && c.G == 0 && c.B == 0
	})
	if red == 0 {
		t.Error("contour panel has no red contour pixels")
	}

	colored := count(panel(1, 1), func(c color.RGBA) bool {
		return c != (color.RGBA{240, 240, 240, 255})
	})
	if colored == 0 {
		t.Error("pieces panel has no filled pieces")
	}
}

// TestVisualizeWithoutOriginal tests the silhouette fallback for the first
// panel.
func TestVisualizeWithoutOriginal(t *testing.T) {
	res, err := ExtractPatternFromMask(squareMask(t))
	if err != nil {
		t.Fatalf("ExtractPatternFromMask failed: %v", err)
	}
	out := Visualize(nil, res)
	if out.Bounds().Empty() {
		t.Fatal("Visualize returned an empty image")
	}
	x, y := vizMargin+160, vizMargin+vizTitle+160
	if c := out.RGBAAt(x, y); c.R != 255 || c.G != 255 || c.B != 255 {
		t.Errorf("original panel center = %v, want the white silhouette", c)
	}
}

// TestVisualizeWithoutSilhouette tests that a missing result gives blank
// panels instead of panicking.
func TestVisualizeWithoutSilhouette(t *testing.T) {
	wantW := 2*vizPanelSize + 3*vizMargin
	wantH := 2*(vizPanelSize+vizTitle) + 3*vizMargin

	for name, res := range map[string]*PatternResult{
		"nil result":     nil,
		"nil silhouette": {},
	} {
		t.Run(name, func(t *testing.T) {
			out := Visualize(squarePhoto(t), res)
			if out.Bounds() != stdimage.Rect(0, 0, wantW, wantH) {
				t.Fatalf("Bounds() = %v, want %dx%d", out.Bounds(), wantW, wantH)
			}
			x, y := vizMargin+160, vizMargin+vizTitle+160
			if c := out.RGBAAt(x, y); c != (color.RGBA{255, 255, 255, 255}) {
				t.Errorf("panel center = %v, want white", c)
			}
		})
	}
}
