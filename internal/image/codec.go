package image

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// Decode decodes an encoded image into a 3-channel RGB raster with values in
// [0,1]. Alpha is ignored. Any decoding failure is reported as ErrInvalidImage.
func Decode(r io.Reader) (*Raster, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidImage, err)
	}
	return FromStdImage(img)
}

// DecodeBytes decodes an in-memory encoded image. See Decode.
func DecodeBytes(data []byte) (*Raster, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty data", ErrInvalidImage)
	}
	return Decode(bytes.NewReader(data))
}

// DecodeMask decodes an encoded image into a 1-channel mask with values in
// [0,1] (gray level divided by 255).
func DecodeMask(r io.Reader) (*Raster, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: decode mask: %v", ErrInvalidImage, err)
	}
	return MaskFromStdImage(img)
}

// LoadImage loads and decodes an RGB raster from a file.
func LoadImage(path string) (*Raster, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// LoadMask loads and decodes a 1-channel mask from a file.
func LoadMask(path string) (*Raster, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return DecodeMask(f)
}

// FromStdImage converts a standard library image to a 3-channel raster.
func FromStdImage(img image.Image) (*Raster, error) {
	bounds := img.Bounds()
	out, err := NewRaster(bounds.Dx(), bounds.Dy(), 3)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	// Fast path for 8-bit RGBA images
	if rgba, ok := img.(*image.RGBA); ok {
		for y := range out.height {
			src := rgba.Pix[y*rgba.Stride:]
			row := out.Row(y)
			for x := range out.width {
				row[x*3] = float64(src[x*4]) / 255
				row[x*3+1] = float64(src[x*4+1]) / 255
				row[x*3+2] = float64(src[x*4+2]) / 255
			}
		}
		return out, nil
	}

	for y := range out.height {
		row := out.Row(y)
		for x := range out.width {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			row[x*3] = float64(c.R) / 255
			row[x*3+1] = float64(c.G) / 255
			row[x*3+2] = float64(c.B) / 255
		}
	}
	return out, nil
}

// MaskFromStdImage converts a standard library image to a 1-channel mask
// using its gray level.
func MaskFromStdImage(img image.Image) (*Raster, error) {
	bounds := img.Bounds()
	out, err := NewRaster(bounds.Dx(), bounds.Dy(), 1)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	for y := range out.height {
		row := out.Row(y)
		for x := range out.width {
			g := color.GrayModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray)
			row[x] = float64(g.Y) / 255
		}
	}
	return out, nil
}

// MaskFromBytes builds a 1-channel mask from one byte per pixel, as produced
// by segmentation collaborators. Masks whose maximum exceeds 1 are treated
// as 0..255 and divided by 255; otherwise values are taken as 0/1.
func MaskFromBytes(pix []byte, width, height int) (*Raster, error) {
	out, err := NewRaster(width, height, 1)
	if err != nil {
		return nil, err
	}
	if len(pix) != width*height {
		return nil, fmt.Errorf("%w: have %d mask bytes, want %d", ErrInvalidDimensions, len(pix), width*height)
	}

	scale := 1.0
	for _, v := range pix {
		if v > 1 {
			scale = 1.0 / 255
			break
		}
	}
	for i, v := range pix {
		out.pix[i] = float64(v) * scale
	}
	return out, nil
}

// ToByte converts a normalized value to 8 bits: clamp(v·255, 0, 255) with
// the fraction truncated.
func ToByte(v float64) uint8 {
	return uint8(clampFloat(v*255, 0, 255))
}

// ToRGBA converts a raster to an opaque *image.RGBA. 1-channel rasters are
// written as gray.
func ToRGBA(r *Raster) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	for y := range r.height {
		row := r.Row(y)
		dst := out.Pix[y*out.Stride:]
		for x := range r.width {
			var cr, cg, cb uint8
			if r.channels == 1 {
				cr = ToByte(row[x])
				cg, cb = cr, cr
			} else {
				cr = ToByte(row[x*3])
				cg = ToByte(row[x*3+1])
				cb = ToByte(row[x*3+2])
			}
			dst[x*4] = cr
			dst[x*4+1] = cg
			dst[x*4+2] = cb
			dst[x*4+3] = 255
		}
	}
	return out
}

// EncodePNG encodes the raster as PNG to the given writer.
func EncodePNG(w io.Writer, r *Raster) error {
	if err := png.Encode(w, ToRGBA(r)); err != nil {
		return fmt.Errorf("image: encode PNG: %w", err)
	}
	return nil
}

// EncodeJPEG encodes img as JPEG with the given quality, clamped to 1..100.
func EncodeJPEG(w io.Writer, img image.Image, quality int) error {
	quality = clamp(quality, 1, 100)
	if err := jpeg.Encode(w, img, &jpeg.Options{Quality: quality}); err != nil {
		return fmt.Errorf("image: encode JPEG: %w", err)
	}
	return nil
}

// SavePNG saves an image as a PNG file.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}

	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("image: encode PNG: %w", err)
	}

	return f.Close()
}

// SaveJPEG saves an image as a JPEG file.
func SaveJPEG(path string, img image.Image, quality int) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}

	if err := EncodeJPEG(f, img, quality); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
