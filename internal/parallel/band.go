package parallel

import "errors"

// ErrPoolClosed is returned by WorkerPool.Do when the pool has been closed.
var ErrPoolClosed = errors.New("parallel: pool closed")

// MinBandRows is the smallest band handed to a worker. Smaller bands cost
// more in scheduling than they save in parallelism.
const MinBandRows = 16

// Executor runs a row kernel over [0, height).
//
// The kernel receives a half-open row range [y0, y1) and must only write
// output rows inside it. Kernels may be invoked concurrently for disjoint
// ranges.
type Executor interface {
	ForRows(height int, kernel func(y0, y1 int))
}

// Serial runs the whole range on the calling goroutine.
type Serial struct{}

// ForRows calls kernel once with [0, height).
func (Serial) ForRows(height int, kernel func(y0, y1 int)) {
	if height > 0 {
		kernel(0, height)
	}
}

// Or returns ex, or Serial if ex is nil.
func Or(ex Executor) Executor {
	if ex == nil {
		return Serial{}
	}
	return ex
}

// Band is a contiguous half-open range of rows.
type Band struct {
	Y0, Y1 int
}

// SplitRows divides [0, height) into at most parts bands of near-equal size,
// none smaller than MinBandRows except when height itself is smaller.
func SplitRows(height, parts int) []Band {
	if height <= 0 {
		return nil
	}
	if parts < 1 {
		parts = 1
	}
	if maxParts := (height + MinBandRows - 1) / MinBandRows; parts > maxParts {
		parts = maxParts
	}

	bands := make([]Band, 0, parts)
	base, extra := height/parts, height%parts
	y := 0
	for i := range parts {
		n := base
		if i < extra {
			n++
		}
		bands = append(bands, Band{Y0: y, Y1: y + n})
		y += n
	}
	return bands
}

// ForRows splits [0, height) into bands and runs them on the pool, waiting
// for all bands to finish. A pool that is already closed runs the kernel
// serially. Closing the pool while ForRows is in flight is a caller error.
func (p *WorkerPool) ForRows(height int, kernel func(y0, y1 int)) {
	if height <= 0 {
		return
	}
	if !p.IsRunning() {
		kernel(0, height)
		return
	}

	bands := SplitRows(height, p.workers*2)
	if len(bands) == 1 {
		kernel(0, height)
		return
	}

	jobs := make([]func(), len(bands))
	for i, b := range bands {
		jobs[i] = func() { kernel(b.Y0, b.Y1) }
	}
	p.ExecuteAll(jobs)
}
