package atelier

import (
	"github.com/gogpu/atelier/internal/contour"
	"github.com/gogpu/atelier/internal/decompose"
	"github.com/gogpu/atelier/internal/image"
	"github.com/gogpu/atelier/internal/parallel"
	"github.com/gogpu/atelier/internal/silhouette"
)

// Errors returned by atelier. Every error from the pipeline wraps one of
// these; test with errors.Is.
var (
	// ErrInvalidImage reports an unreadable or malformed image buffer.
	ErrInvalidImage = image.ErrInvalidImage

	// ErrInvalidParameter reports an out-of-range option or texture
	// parameter. It is returned before any pixel work.
	ErrInvalidParameter = image.ErrInvalidParameter

	// ErrInvalidDimensions reports non-positive sizes or mismatched buffers.
	ErrInvalidDimensions = image.ErrInvalidDimensions

	// ErrChannelMismatch reports a raster with the wrong channel count.
	ErrChannelMismatch = image.ErrChannelMismatch

	// ErrEmptyMask reports a silhouette with no foreground pixel.
	ErrEmptyMask = silhouette.ErrEmptyMask

	// ErrEmptyContour reports a mask without boundary, including a mask
	// that is entirely foreground.
	ErrEmptyContour = contour.ErrEmptyContour

	// ErrDegenerateSector reports an angular sector with no contour point.
	// The concrete error is a *SectorError.
	ErrDegenerateSector = decompose.ErrDegenerateSector

	// ErrProcessorClosed is returned by a Processor after Close.
	ErrProcessorClosed = parallel.ErrPoolClosed
)

// SectorError identifies the empty sector of a failed decomposition.
type SectorError = decompose.SectorError
