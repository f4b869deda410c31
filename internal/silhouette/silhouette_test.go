package silhouette

import (
	"errors"
	"testing"

	"github.com/gogpu/atelier/internal/image"
	"github.com/gogpu/atelier/internal/parallel"
)

// photo returns a size×size RGB raster of background value bg with a square
// of value fg covering [lo, hi] on both axes.
func photo(t *testing.T, size, lo, hi int, bg, fg float64) *image.Raster {
	t.Helper()
	r, err := image.NewRaster(size, size, 3)
	if err != nil {
		t.Fatalf("NewRaster failed: %v", err)
	}
	for y := range size {
		for x := range size {
			v := bg
			if x >= lo && x <= hi && y >= lo && y <= hi {
				v = fg
			}
			for c := range 3 {
				r.Set(x, y, c, v)
			}
		}
	}
	return r
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"defaults", DefaultOptions(), false},
		{"threshold zero", Options{Threshold: 0, KernelSize: 3}, true},
		{"threshold one", Options{Threshold: 1, KernelSize: 3}, true},
		{"threshold above", Options{Threshold: 1.5, KernelSize: 3}, true},
		{"even kernel", Options{Threshold: 0.5, KernelSize: 4}, true},
		{"zero kernel", Options{Threshold: 0.5, KernelSize: 0}, true},
		{"kernel one", Options{Threshold: 0.5, KernelSize: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr && !errors.Is(err, image.ErrInvalidParameter) {
				t.Errorf("Validate() = %v, want ErrInvalidParameter", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestExtractSquare(t *testing.T) {
	src := photo(t, 40, 10, 29, 1, 0.1)

	mask, err := Extract(nil, src, DefaultOptions())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if mask.Channels() != 1 || mask.Width() != 40 || mask.Height() != 40 {
		t.Fatalf("mask shape = %dx%dx%d, want 40x40x1", mask.Width(), mask.Height(), mask.Channels())
	}
	for y := range 40 {
		for x := range 40 {
			want := 0.0
			if x >= 10 && x <= 29 && y >= 10 && y <= 29 {
				want = 1
			}
			if mask.At(x, y, 0) != want {
				t.Fatalf("mask(%d,%d) = %v, want %v", x, y, mask.At(x, y, 0), want)
			}
		}
	}
}

func TestExtractValuesAreBinary(t *testing.T) {
	src := photo(t, 16, 4, 11, 0.95, 0.3)
	src.Set(0, 0, 0, 0.5)

	mask, err := Extract(nil, src, DefaultOptions())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	for i, v := range mask.Pix() {
		if v != 0 && v != 1 {
			t.Fatalf("mask[%d] = %v, want 0 or 1", i, v)
		}
	}
}

func TestExtractEmpty(t *testing.T) {
	src := photo(t, 10, 0, -1, 1, 1)

	_, err := Extract(nil, src, DefaultOptions())
	if !errors.Is(err, ErrEmptyMask) {
		t.Errorf("Extract(white) error = %v, want ErrEmptyMask", err)
	}
}

func TestExtractRejectsBeforeWork(t *testing.T) {
	// A 1-channel raster would fail luminance; parameter errors come first.
	m, _ := image.NewRaster(4, 4, 1)
	_, err := Extract(nil, m, Options{Threshold: 2, KernelSize: 3})
	if !errors.Is(err, image.ErrInvalidParameter) {
		t.Errorf("error = %v, want ErrInvalidParameter", err)
	}

	_, err = Extract(nil, m, DefaultOptions())
	if !errors.Is(err, image.ErrChannelMismatch) {
		t.Errorf("error = %v, want ErrChannelMismatch", err)
	}
}

func TestAutoThreshold(t *testing.T) {
	src := photo(t, 30, 5, 24, 0.95, 0.2)
	lum, _ := image.NewRaster(30, 30, 1)
	for y := range 30 {
		for x := range 30 {
			lum.Set(x, y, 0, src.At(x, y, 0))
		}
	}

	got := AutoThreshold(lum, 0.9)
	if got != 0.9 && !(got > 0.2 && got < 0.95) {
		t.Errorf("AutoThreshold = %v, want between cluster centers or fallback", got)
	}

	opts := DefaultOptions()
	opts.AutoThreshold = true
	mask, err := Extract(nil, src, opts)
	if err != nil {
		t.Fatalf("Extract with auto threshold failed: %v", err)
	}
	if mask.At(15, 15, 0) != 1 || mask.At(0, 0, 0) != 0 {
		t.Error("auto threshold did not separate the square from the background")
	}
}

func TestAutoThresholdUniformFallsBack(t *testing.T) {
	lum, _ := image.NewRaster(8, 8, 1)
	for i := range lum.Pix() {
		lum.Pix()[i] = 0.4
	}
	if got := AutoThreshold(lum, 0.7); got != 0.7 {
		t.Errorf("AutoThreshold(uniform) = %v, want fallback 0.7", got)
	}
}

func TestExtractParallelMatchesSerial(t *testing.T) {
	pool := parallel.NewWorkerPool(3)
	defer pool.Close()

	src := photo(t, 64, 12, 50, 1, 0.4)
	serial, err := Extract(nil, src, DefaultOptions())
	if err != nil {
		t.Fatalf("serial Extract failed: %v", err)
	}
	par, err := Extract(pool, src, DefaultOptions())
	if err != nil {
		t.Fatalf("parallel Extract failed: %v", err)
	}
	if !serial.Equal(par) {
		t.Error("parallel extraction differs from serial")
	}
}
