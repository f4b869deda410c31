package atelier

import (
	"context"
	stdimage "image"
	"slices"
	"sync"

	"github.com/gogpu/atelier/internal/image"
	"github.com/gogpu/atelier/internal/parallel"
	"github.com/gogpu/atelier/internal/texture"
)

// Processor runs pipeline requests on a shared worker pool.
//
// Each request is one pool job. Methods take a context: when it ends before
// the request finishes, the method returns ctx.Err() and the computation is
// abandoned; its result is discarded when it completes.
//
// Requests that select DeviceParallel share a second pool for row bands, so
// a request job never waits on bands queued behind other requests in its own
// pool.
//
// Thread safety: Processor is safe for concurrent use.
type Processor struct {
	opts     []Option
	requests *parallel.WorkerPool
	textures *texture.Cache

	bandOnce sync.Once
	bands    *parallel.WorkerPool
	bandSize int
}

// NewProcessor creates a processor. opts become the defaults of every
// request; WithWorkers sizes both the request and the band pool and
// WithCacheSize the texture cache.
//
// Example:
//
//	p := atelier.NewProcessor(atelier.WithWorkers(4))
//	defer p.Close()
//
//	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
//	defer cancel()
//	res, err := p.ExtractPattern(ctx, img, atelier.WithPieceCount(6))
func NewProcessor(opts ...Option) *Processor {
	o := newOptions(opts)
	requests := parallel.NewWorkerPool(o.workers)
	Logger().Debug("processor started", "workers", requests.Workers())
	return &Processor{
		opts:     slices.Clone(opts),
		requests: requests,
		textures: texture.NewCache(o.cacheEntries),
		bandSize: o.workers,
	}
}

// Workers returns the number of request workers.
func (p *Processor) Workers() int {
	return p.requests.Workers()
}

// ExtractPattern runs ExtractPattern as a request.
func (p *Processor) ExtractPattern(ctx context.Context, img *Raster, opts ...Option) (*PatternResult, error) {
	o := p.options(opts)
	if err := o.validatePattern(false); err != nil {
		return nil, err
	}

	var res *PatternResult
	err := p.run(ctx, o, func(ex parallel.Executor) (err error) {
		res, err = extractPattern(ex, img, o)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ExtractPatternFromMask runs ExtractPatternFromMask as a request.
func (p *Processor) ExtractPatternFromMask(ctx context.Context, mask *Raster, opts ...Option) (*PatternResult, error) {
	o := p.options(opts)
	if err := o.validatePattern(true); err != nil {
		return nil, err
	}

	var res *PatternResult
	err := p.run(ctx, o, func(ex parallel.Executor) (err error) {
		res, err = patternFromMask(ex, mask, o)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// RenderTexture runs RenderTexture as a request. Resized textures and
// seeded noise fields are reused across calls; textures are matched by
// content, so modifying a texture between calls is safe.
func (p *Processor) RenderTexture(ctx context.Context, mask, tex *Raster, desc TextureDescriptor, opts ...Option) (*stdimage.RGBA, error) {
	o := p.options(opts)
	if err := validateDevice(o.device); err != nil {
		return nil, err
	}
	if err := desc.Validate(); err != nil {
		return nil, err
	}

	var out *stdimage.RGBA
	err := p.run(ctx, o, func(ex parallel.Executor) error {
		r, err := texture.MapCached(ex, p.textures, mask, tex, desc)
		if err != nil {
			return err
		}
		out = image.ToRGBA(r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CacheStats returns the statistics of the texture cache.
func (p *Processor) CacheStats() CacheStats {
	return p.textures.Stats()
}

// Close stops the processor after in-flight requests finish, including
// abandoned ones, and releases the texture cache. Later requests return
// ErrProcessorClosed.
func (p *Processor) Close() {
	p.requests.Close()
	p.textures.Clear()
	// Synchronizes with a concurrent bandPool and keeps later calls from
	// starting a new pool.
	p.bandOnce.Do(func() {})
	if p.bands != nil {
		p.bands.Close()
	}
	Logger().Debug("processor stopped")
}

func (p *Processor) options(opts []Option) options {
	all := make([]Option, 0, len(p.opts)+len(opts))
	all = append(all, p.opts...)
	all = append(all, opts...)
	return newOptions(all)
}

// run executes fn as one request job. The result of fn is only reported
// when it finishes before ctx ends.
func (p *Processor) run(ctx context.Context, o options, fn func(ex parallel.Executor) error) error {
	var ex parallel.Executor
	if o.device == DeviceParallel {
		ex = p.bandPool()
	}

	var result error
	if err := p.requests.Do(ctx, func() { result = fn(ex) }); err != nil {
		return err
	}
	return result
}

// bandPool lazily starts the shared band pool. It returns nil after Close.
func (p *Processor) bandPool() parallel.Executor {
	p.bandOnce.Do(func() {
		p.bands = parallel.NewWorkerPool(p.bandSize)
	})
	if p.bands == nil {
		return nil
	}
	return p.bands
}
