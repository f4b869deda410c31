package atelier

import (
	stdimage "image"
	"io"

	"github.com/gogpu/atelier/internal/image"
)

// LoadImage loads a PNG, JPEG, GIF, BMP, TIFF or WebP file as an RGB raster.
func LoadImage(path string) (*Raster, error) {
	return image.LoadImage(path)
}

// LoadMask loads an image file as a 1-channel mask (gray level / 255).
func LoadMask(path string) (*Raster, error) {
	return image.LoadMask(path)
}

// DecodeImage decodes an encoded image into an RGB raster.
// Malformed input returns an error wrapping ErrInvalidImage.
func DecodeImage(data []byte) (*Raster, error) {
	return image.DecodeBytes(data)
}

// DecodeMask decodes an encoded image into a 1-channel mask.
func DecodeMask(r io.Reader) (*Raster, error) {
	return image.DecodeMask(r)
}

// FromImage converts a decoded standard library image to an RGB raster.
func FromImage(img stdimage.Image) (*Raster, error) {
	return image.FromStdImage(img)
}

// MaskFromBytes builds a mask from one byte per pixel. Masks containing a
// value above 1 are read as 0..255.
func MaskFromBytes(pix []byte, width, height int) (*Raster, error) {
	return image.MaskFromBytes(pix, width, height)
}

// ToRGBA converts a raster to an opaque 8-bit image.
func ToRGBA(r *Raster) *stdimage.RGBA {
	return image.ToRGBA(r)
}

// EncodePNG writes r as PNG.
func EncodePNG(w io.Writer, r *Raster) error {
	return image.EncodePNG(w, r)
}

// SavePNG writes img to a PNG file.
func SavePNG(path string, img stdimage.Image) error {
	return image.SavePNG(path, img)
}

// DefaultJPEGQuality is the quality used by the atelier command for JPEG
// output.
const DefaultJPEGQuality = 90

// SaveJPEG writes img to a JPEG file. quality is clamped to 1..100.
func SaveJPEG(path string, img stdimage.Image, quality int) error {
	return image.SaveJPEG(path, img, quality)
}
