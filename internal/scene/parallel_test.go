package scene

import (
	"sync/atomic"
	"testing"
)

func TestParallelForCoversRange(t *testing.T) {
	tests := []struct {
		n, minChunk int
	}{
		{0, 1},
		{1, 1},
		{7, 100},
		{1000, 3},
		{1 << 17, voxelChunk},
	}
	for _, tt := range tests {
		hits := make([]int32, tt.n)
		var calls atomic.Int32
		parallelFor(tt.n, tt.minChunk, func(start, end int) {
			calls.Add(1)
			for i := start; i < end; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
		})
		for i, h := range hits {
			if h != 1 {
				t.Fatalf("n=%d: index %d visited %d times", tt.n, i, h)
			}
		}
		if calls.Load() == 0 && tt.n > 0 {
			t.Errorf("n=%d: fn never called", tt.n)
		}
	}
}
