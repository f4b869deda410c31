package main

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveImageFormat(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	img.SetRGBA(0, 0, color.RGBA{10, 20, 30, 255})

	pngMagic := []byte("\x89PNG")
	jpegMagic := []byte{0xff, 0xd8}

	tests := []struct {
		name   string
		file   string
		format string
		magic  []byte
	}{
		{"png by extension", "out.png", "", pngMagic},
		{"jpeg by extension", "out.JPG", "", jpegMagic},
		{"unknown extension", "out.img", "", pngMagic},
		{"explicit jpeg", "out.png", "jpeg", jpegMagic},
		{"explicit png", "out.jpeg", "PNG", pngMagic},
	}

	dir := t.TempDir()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if err := saveImage(path, tt.format, 90, img); err != nil {
				t.Fatalf("saveImage failed: %v", err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile failed: %v", err)
			}
			if !bytes.HasPrefix(data, tt.magic) {
				t.Errorf("file starts with % x, want % x", data[:min(len(data), 4)], tt.magic)
			}
		})
	}

	if err := saveImage(filepath.Join(dir, "out.gif"), "gif", 90, img); err == nil {
		t.Error("saveImage with format gif should fail")
	}
}
