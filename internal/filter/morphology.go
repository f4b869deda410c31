package filter

import (
	"fmt"
	"sync"

	"github.com/gogpu/atelier/internal/image"
	"github.com/gogpu/atelier/internal/parallel"
)

// Dilate applies k×k max-pooling with stride 1 and padding k/2.
// Samples that fall outside the image are ignored, so the output has the
// same size as the input.
//
// The kernel is separable: a horizontal pass writes into a temporary buffer
// and a vertical pass reads from it, giving O(w*h*k) instead of O(w*h*k²).
//
// Returns image.ErrInvalidParameter if k is not a positive odd integer.
func Dilate(ex parallel.Executor, m *image.Raster, k int) (*image.Raster, error) {
	return morph(ex, m, k, true)
}

// Erode applies k×k min-pooling, the negation of max-pooling the negated
// mask. Border handling matches Dilate.
func Erode(ex parallel.Executor, m *image.Raster, k int) (*image.Raster, error) {
	return morph(ex, m, k, false)
}

// Close applies a morphological closing: Dilate followed by Erode with the
// same kernel size. Closing fills gaps narrower than k and is idempotent.
func Close(ex parallel.Executor, m *image.Raster, k int) (*image.Raster, error) {
	d, err := Dilate(ex, m, k)
	if err != nil {
		return nil, err
	}
	return Erode(ex, d, k)
}

// ValidateKernel reports whether k is usable as a morphology kernel size.
func ValidateKernel(k int) error {
	if k <= 0 || k%2 == 0 {
		return fmt.Errorf("%w: kernel size must be a positive odd integer, got %d",
			image.ErrInvalidParameter, k)
	}
	return nil
}

func morph(ex parallel.Executor, m *image.Raster, k int, isMax bool) (*image.Raster, error) {
	if err := ValidateKernel(k); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: nil mask", image.ErrInvalidDimensions)
	}
	if m.Channels() != 1 {
		return nil, fmt.Errorf("%w: morphology needs 1 channel, have %d",
			image.ErrChannelMismatch, m.Channels())
	}

	w, h := m.Bounds()
	dst, err := image.NewRaster(w, h, 1)
	if err != nil {
		return nil, err
	}
	if k == 1 {
		copy(dst.Pix(), m.Pix())
		return dst, nil
	}

	temp := getTempBuffer(w * h)
	defer putTempBuffer(temp)

	half := k / 2
	run := parallel.Or(ex)

	// Pass 1: horizontal (m -> temp)
	run.ForRows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			poolHorizontal(m.Row(y), temp[y*w:(y+1)*w], half, isMax)
		}
	})

	// Pass 2: vertical (temp -> dst)
	run.ForRows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			poolVertical(temp, dst.Row(y), w, h, y, half, isMax)
		}
	})

	return dst, nil
}

// poolHorizontal reduces each window [x-half, x+half] of a row, clipped to
// the row bounds.
func poolHorizontal(src, dst []float64, half int, isMax bool) {
	w := len(src)
	for x := range w {
		lo := max(x-half, 0)
		hi := min(x+half, w-1)
		acc := src[lo]
		for i := lo + 1; i <= hi; i++ {
			acc = pick(acc, src[i], isMax)
		}
		dst[x] = acc
	}
}

// poolVertical reduces column windows of temp for output row y.
func poolVertical(temp, dst []float64, w, h, y, half int, isMax bool) {
	lo := max(y-half, 0)
	hi := min(y+half, h-1)
	copy(dst, temp[lo*w:(lo+1)*w])
	for r := lo + 1; r <= hi; r++ {
		row := temp[r*w : (r+1)*w]
		for x := range w {
			dst[x] = pick(dst[x], row[x], isMax)
		}
	}
}

func pick(a, b float64, isMax bool) float64 {
	if isMax {
		return max(a, b)
	}
	return min(a, b)
}

// floatBuffer wraps a slice for sync.Pool to avoid allocation warnings.
type floatBuffer struct {
	data []float64
}

// Temporary buffer pool for the separable passes.
var tempBufferPool = sync.Pool{
	New: func() any {
		return &floatBuffer{data: make([]float64, 512*512)}
	},
}

// getTempBuffer retrieves a temporary buffer with at least size elements.
// Every element is overwritten by the horizontal pass, so no clearing is needed.
func getTempBuffer(size int) []float64 {
	wrapper := tempBufferPool.Get().(*floatBuffer)
	if len(wrapper.data) < size {
		tempBufferPool.Put(wrapper)
		return make([]float64, size)
	}
	return wrapper.data[:size]
}

// putTempBuffer returns a temporary buffer to the pool.
func putTempBuffer(buf []float64) {
	// Only pool reasonably-sized buffers (4096x4096)
	if cap(buf) <= 4096*4096 {
		tempBufferPool.Put(&floatBuffer{data: buf[:cap(buf)]})
	}
}
