package atelier

import (
	"github.com/gogpu/atelier/internal/cache"
	"github.com/gogpu/atelier/internal/contour"
	"github.com/gogpu/atelier/internal/decompose"
	"github.com/gogpu/atelier/internal/image"
	"github.com/gogpu/atelier/internal/texture"
)

// Raster is an H×W×C grid of normalized channel values (C is 1 or 3).
type Raster = image.Raster

// ContourPoint is a boundary pixel coordinate.
type ContourPoint = contour.Point

// Piece is a quadrilateral pattern piece with X = column and Y = row.
type Piece = decompose.Piece

// TextureDescriptor selects a texture mode and carries its parameters.
type TextureDescriptor = texture.Descriptor

// TextureKind names a texture mode.
type TextureKind = texture.Kind

// Pattern names a procedural pattern.
type Pattern = texture.Pattern

// MappedParams configures the mapped texture mode.
type MappedParams = texture.MappedParams

// ProceduralParams configures the procedural texture mode.
type ProceduralParams = texture.ProceduralParams

// CacheStats reports texture cache usage of a Processor.
type CacheStats = cache.Stats

// Texture kinds.
const (
	TextureSimple     = texture.KindSimple
	TextureMapped     = texture.KindMapped
	TextureProcedural = texture.KindProcedural
)

// Procedural patterns.
const (
	PatternNoise   = texture.PatternNoise
	PatternChecker = texture.PatternChecker
	PatternStripes = texture.PatternStripes
)

// NewRaster creates a zeroed raster. channels must be 1 or 3.
func NewRaster(width, height, channels int) (*Raster, error) {
	return image.NewRaster(width, height, channels)
}
