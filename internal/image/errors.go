package image

import "errors"

// Common errors for raster operations.
var (
	// ErrInvalidDimensions is returned when width, height or channel count
	// is outside the supported range, or when two buffers that must agree
	// in size do not.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrChannelMismatch is returned when an operation receives a raster
	// with the wrong number of channels.
	ErrChannelMismatch = errors.New("image: channel count mismatch")

	// ErrInvalidParameter is returned when a numeric parameter is out of
	// range (even kernel size, non-positive scale, threshold outside (0,1)).
	ErrInvalidParameter = errors.New("image: invalid parameter")

	// ErrInvalidImage is returned when encoded input cannot be decoded.
	ErrInvalidImage = errors.New("image: invalid image")
)
