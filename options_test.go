package atelier

import (
	"errors"
	"math"
	"testing"
)

// TestDefaultOptions tests the defaults used when no option is given.
func TestDefaultOptions(t *testing.T) {
	o := newOptions(nil)

	if o.threshold != 0.9 {
		t.Errorf("threshold = %v, want 0.9", o.threshold)
	}
	if o.kernelSize != 3 {
		t.Errorf("kernelSize = %d, want 3", o.kernelSize)
	}
	if o.autoThreshold {
		t.Error("autoThreshold should be off by default")
	}
	if o.contourThreshold != 0.1 {
		t.Errorf("contourThreshold = %v, want 0.1", o.contourThreshold)
	}
	if o.pieceCount != DefaultPieceCount {
		t.Errorf("pieceCount = %d, want %d", o.pieceCount, DefaultPieceCount)
	}
	if o.offset != 20 {
		t.Errorf("offset = %v, want 20", o.offset)
	}
	if o.device != DeviceCPU {
		t.Errorf("device = %v, want cpu", o.device)
	}
	if o.cacheEntries != DefaultCacheEntries {
		t.Errorf("cacheEntries = %d, want %d", o.cacheEntries, DefaultCacheEntries)
	}
}

// TestOptionsApply tests that every option sets its field and that later
// options win.
func TestOptionsApply(t *testing.T) {
	o := newOptions([]Option{
		WithThreshold(0.5),
		WithKernelSize(5),
		WithAutoThreshold(true),
		WithContourThreshold(0.3),
		WithPieceCount(6),
		WithOffset(12),
		WithDevice(DeviceParallel),
		WithWorkers(3),
		WithCacheSize(2),
		nil,
		WithPieceCount(7),
	})

	if o.threshold != 0.5 || o.kernelSize != 5 || !o.autoThreshold {
		t.Errorf("silhouette options = %v/%d/%v", o.threshold, o.kernelSize, o.autoThreshold)
	}
	if o.contourThreshold != 0.3 {
		t.Errorf("contourThreshold = %v, want 0.3", o.contourThreshold)
	}
	if o.pieceCount != 7 {
		t.Errorf("pieceCount = %d, want 7 (last option wins)", o.pieceCount)
	}
	if o.offset != 12 {
		t.Errorf("offset = %v, want 12", o.offset)
	}
	if o.device != DeviceParallel || o.workers != 3 {
		t.Errorf("device/workers = %v/%d, want parallel/3", o.device, o.workers)
	}

	if o.cacheEntries != 2 {
		t.Errorf("cacheEntries = %d, want 2", o.cacheEntries)
	}

	s := o.silhouette()
	if s.Threshold != 0.5 || s.KernelSize != 5 || !s.AutoThreshold {
		t.Errorf("silhouette() = %+v", s)
	}
}

func TestValidatePattern(t *testing.T) {
	tests := []struct {
		name     string
		opts     []Option
		fromMask bool
		wantErr  bool
	}{
		{"defaults", nil, false, false},
		{"threshold zero", []Option{WithThreshold(0)}, false, true},
		{"threshold one", []Option{WithThreshold(1)}, false, true},
		{"threshold ignored for masks", []Option{WithThreshold(0)}, true, false},
		{"even kernel", []Option{WithKernelSize(4)}, false, true},
		{"zero kernel", []Option{WithKernelSize(0)}, false, true},
		{"zero pieces", []Option{WithPieceCount(0)}, true, true},
		{"negative pieces", []Option{WithPieceCount(-2)}, false, true},
		{"one piece", []Option{WithPieceCount(1)}, false, false},
		{"NaN offset", []Option{WithOffset(math.NaN())}, true, true},
		{"infinite offset", []Option{WithOffset(math.Inf(1))}, true, true},
		{"zero offset", []Option{WithOffset(0)}, true, false},
		{"NaN contour threshold", []Option{WithContourThreshold(math.NaN())}, true, true},
		{"unknown device", []Option{WithDevice(Device(9))}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newOptions(tt.opts).validatePattern(tt.fromMask)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidParameter) {
					t.Errorf("validatePattern() error = %v, want ErrInvalidParameter", err)
				}
				return
			}
			if err != nil {
				t.Errorf("validatePattern() unexpected error: %v", err)
			}
		})
	}
}

func TestDeviceString(t *testing.T) {
	tests := []struct {
		d    Device
		want string
	}{
		{DeviceCPU, "cpu"},
		{DeviceParallel, "parallel"},
		{Device(7), "Device(7)"},
	}
	for _, tt := range tests {
		if got := tt.d.String(); got != tt.want {
			t.Errorf("Device.String() = %q, want %q", got, tt.want)
		}
	}
}

// TestExecutor tests that only DeviceParallel allocates a pool.
func TestExecutor(t *testing.T) {
	ex, release := newOptions(nil).executor()
	if ex != nil {
		t.Error("cpu executor should be nil")
	}
	release()

	ex, release = newOptions([]Option{WithDevice(DeviceParallel), WithWorkers(2)}).executor()
	if ex == nil {
		t.Fatal("parallel executor should not be nil")
	}
	release()
}
