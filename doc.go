// Package atelier extracts flat pattern pieces from garment images and
// renders textures onto silhouette masks.
//
// # Overview
//
// atelier is a pure Go 2D image-geometry pipeline with two independent
// flows:
//
//	image -> silhouette mask -> contour -> pattern pieces
//	mask + texture -> composite raster
//
// Every stage is a pure function over immutable buffers, so any number of
// pipelines may run concurrently.
//
// # Quick Start
//
//	import "github.com/gogpu/atelier"
//
//	img, err := atelier.LoadImage("design.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Four pieces, default threshold 0.9 and closing kernel 3
//	result, err := atelier.ExtractPattern(img, atelier.WithPieceCount(4))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// 2×2 diagnostic panel
//	_ = atelier.SavePNG("viz.png", atelier.Visualize(img, result))
//
// # Textures
//
// RenderTexture composites a texture onto a mask in one of three modes:
// simple overlay, affine UV mapping with reflection at the borders, and
// procedural noise, checker or stripes blends. Parameters come from a
// TextureDescriptor, usually built by ParseTextureParams from a JSON object.
//
// # Concurrency
//
// Kernels run serially by default. WithDevice(DeviceParallel) splits each
// kernel into row bands on a worker pool. A Processor adds request-level
// scheduling with context cancellation on top of that, and keeps resized
// textures and seeded noise fields in a small LRU cache.
//
// # Coordinate System
//
// Rasters are indexed (x, y) = (column, row) with the origin at the top-left.
// Contour points are (Row, Col). Pattern piece corners are vec.Vec2 with
// X = column and Y = row.
package atelier

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
