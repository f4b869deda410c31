package parallel

import (
	"sync/atomic"
	"testing"
)

func TestSplitRows(t *testing.T) {
	tests := []struct {
		name      string
		height    int
		parts     int
		wantBands int
	}{
		{"zero height", 0, 4, 0},
		{"smaller than one band", 10, 4, 1},
		{"exact", 64, 4, 4},
		{"capped by min band", 40, 8, 3},
		{"uneven", 100, 3, 3},
		{"non-positive parts", 50, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bands := SplitRows(tt.height, tt.parts)
			if len(bands) != tt.wantBands {
				t.Fatalf("SplitRows(%d, %d) = %d bands, want %d", tt.height, tt.parts, len(bands), tt.wantBands)
			}

			// Bands must tile [0, height) without gaps or overlap.
			y := 0
			for i, b := range bands {
				if b.Y0 != y {
					t.Errorf("band %d starts at %d, want %d", i, b.Y0, y)
				}
				if b.Y1 <= b.Y0 {
					t.Errorf("band %d is empty", i)
				}
				y = b.Y1
			}
			if tt.height > 0 && y != tt.height {
				t.Errorf("bands end at %d, want %d", y, tt.height)
			}
		})
	}
}

func TestSerialForRows(t *testing.T) {
	calls := 0
	Serial{}.ForRows(37, func(y0, y1 int) {
		calls++
		if y0 != 0 || y1 != 37 {
			t.Errorf("kernel range = [%d,%d), want [0,37)", y0, y1)
		}
	})
	if calls != 1 {
		t.Errorf("kernel called %d times, want 1", calls)
	}

	Serial{}.ForRows(0, func(int, int) { t.Error("kernel called for empty range") })
}

func TestOr(t *testing.T) {
	if _, ok := Or(nil).(Serial); !ok {
		t.Errorf("Or(nil) = %T, want Serial", Or(nil))
	}

	pool := NewWorkerPool(2)
	defer pool.Close()
	if Or(pool) != Executor(pool) {
		t.Error("Or(pool) should return the pool")
	}
}

func TestWorkerPool_ForRowsCoversEveryRow(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	const height = 203
	var hits [height]atomic.Int32

	pool.ForRows(height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			hits[y].Add(1)
		}
	})

	for y := range height {
		if n := hits[y].Load(); n != 1 {
			t.Errorf("row %d visited %d times, want 1", y, n)
		}
	}
}

func TestWorkerPool_ForRowsClosedPool(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()

	rows := 0
	pool.ForRows(100, func(y0, y1 int) { rows += y1 - y0 })
	if rows != 100 {
		t.Errorf("closed pool covered %d rows, want 100", rows)
	}
}
