package atelier

import (
	"fmt"
	"math"

	"github.com/gogpu/atelier/internal/contour"
	"github.com/gogpu/atelier/internal/decompose"
	"github.com/gogpu/atelier/internal/parallel"
	"github.com/gogpu/atelier/internal/silhouette"
)

// Device selects how pixel kernels are executed.
type Device int

const (
	// DeviceCPU runs every kernel on the calling goroutine.
	DeviceCPU Device = iota

	// DeviceParallel splits kernels into row bands on a worker pool.
	DeviceParallel
)

// String returns a string representation of the device.
func (d Device) String() string {
	switch d {
	case DeviceCPU:
		return "cpu"
	case DeviceParallel:
		return "parallel"
	default:
		return fmt.Sprintf("Device(%d)", int(d))
	}
}

// DefaultPieceCount is the number of pattern pieces when none is requested.
const DefaultPieceCount = 4

// DefaultCacheEntries is the number of derived rasters a Processor keeps.
const DefaultCacheEntries = 16

// Option configures a pipeline call or a Processor.
// Use functional options to customize behavior.
//
// Example:
//
//	// Defaults: threshold 0.9, kernel 3, 4 pieces, serial kernels
//	res, err := atelier.ExtractPattern(img)
//
//	// Eight pieces on all cores
//	res, err := atelier.ExtractPattern(img,
//	    atelier.WithPieceCount(8),
//	    atelier.WithDevice(atelier.DeviceParallel))
type Option func(*options)

// options holds the configuration of one pipeline call.
type options struct {
	threshold        float64
	kernelSize       int
	autoThreshold    bool
	contourThreshold float64
	pieceCount       int
	offset           float64
	device           Device
	workers          int
	cacheEntries     int
}

// defaultOptions returns the default pipeline options.
func defaultOptions() options {
	return options{
		threshold:        silhouette.DefaultThreshold,
		kernelSize:       silhouette.DefaultKernelSize,
		contourThreshold: contour.DefaultThreshold,
		pieceCount:       DefaultPieceCount,
		offset:           decompose.DefaultOffset,
		device:           DeviceCPU,
		workers:          0, // GOMAXPROCS
		cacheEntries:     DefaultCacheEntries,
	}
}

// newOptions applies opts over the defaults.
func newOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithThreshold sets the luminance threshold in (0,1). Pixels darker than it
// are part of the silhouette.
func WithThreshold(t float64) Option {
	return func(o *options) {
		o.threshold = t
	}
}

// WithKernelSize sets the closing kernel size, a positive odd integer.
func WithKernelSize(k int) Option {
	return func(o *options) {
		o.kernelSize = k
	}
}

// WithAutoThreshold estimates the luminance threshold from the image with
// 2-means clustering. The configured threshold is the fallback.
func WithAutoThreshold(enabled bool) Option {
	return func(o *options) {
		o.autoThreshold = enabled
	}
}

// WithContourThreshold sets the gradient magnitude above which a mask pixel
// is on the contour.
func WithContourThreshold(t float64) Option {
	return func(o *options) {
		o.contourThreshold = t
	}
}

// WithPieceCount sets the number of pattern pieces (at least 1).
func WithPieceCount(n int) Option {
	return func(o *options) {
		o.pieceCount = n
	}
}

// WithOffset sets the strip width of each pattern piece in pixels.
func WithOffset(offset float64) Option {
	return func(o *options) {
		o.offset = offset
	}
}

// WithDevice selects serial or banded parallel kernels.
func WithDevice(d Device) Option {
	return func(o *options) {
		o.device = d
	}
}

// WithWorkers sets the number of band workers for DeviceParallel, or of
// request workers for NewProcessor. Zero or negative means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithCacheSize sets how many resized textures and seeded noise fields a
// Processor keeps between RenderTexture calls. Zero disables the cache. It
// has no effect on one-off calls.
func WithCacheSize(entries int) Option {
	return func(o *options) {
		o.cacheEntries = entries
	}
}

// silhouette returns the extraction options.
func (o options) silhouette() silhouette.Options {
	return silhouette.Options{
		Threshold:     o.threshold,
		KernelSize:    o.kernelSize,
		AutoThreshold: o.autoThreshold,
	}
}

// validatePattern checks every option used by pattern extraction.
func (o options) validatePattern(fromMask bool) error {
	if !fromMask {
		if err := o.silhouette().Validate(); err != nil {
			return err
		}
	}
	if o.pieceCount < 1 {
		return fmt.Errorf("%w: piece count must be at least 1, got %d", ErrInvalidParameter, o.pieceCount)
	}
	if math.IsNaN(o.offset) || math.IsInf(o.offset, 0) {
		return fmt.Errorf("%w: offset must be finite", ErrInvalidParameter)
	}
	if math.IsNaN(o.contourThreshold) {
		return fmt.Errorf("%w: contour threshold is NaN", ErrInvalidParameter)
	}
	return validateDevice(o.device)
}

// executor returns the kernel executor for a one-off call and a function
// that releases it.
func (o options) executor() (parallel.Executor, func()) {
	if o.device != DeviceParallel {
		return nil, func() {}
	}
	pool := parallel.NewWorkerPool(o.workers)
	return pool, pool.Close
}
