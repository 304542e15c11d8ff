package utils

import (
	"testing"
)

func TestAbsInt(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 0},
		{1, 1},
		{-1, 1},
		{-37, 37},
	}
	for _, tt := range tests {
		if got := AbsInt(tt.in); got != tt.want {
			t.Errorf("AbsInt(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestMinMaxInt(t *testing.T) {
	if MaxInt(3, 5) != 5 || MaxInt(5, 3) != 5 {
		t.Errorf("MaxInt failed")
	}
	if MinInt(3, 5) != 3 || MinInt(5, 3) != 3 {
		t.Errorf("MinInt failed")
	}
}

func Benchmark_AbsInt(b *testing.B) {
	for i := 0; i < b.N; i++ {
		AbsInt(-i)
	}
}
