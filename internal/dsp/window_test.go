package dsp

import (
	"math"
	"testing"
)

func TestHannWindowEndpointsAreZero(t *testing.T) {
	w := HannWindow(1024)
	if math.Abs(w[0]) > 1e-12 {
		t.Fatalf("expected w[0] == 0, got %v", w[0])
	}
	if math.Abs(w[len(w)-1]) > 1e-12 {
		t.Fatalf("expected w[n-1] == 0, got %v", w[len(w)-1])
	}
}

func TestHannWindowIsSymmetric(t *testing.T) {
	w := HannWindow(1024)
	for i := range w {
		j := len(w) - 1 - i
		if math.Abs(w[i]-w[j]) > 1e-9 {
			t.Fatalf("window not symmetric at %d/%d: %v vs %v", i, j, w[i], w[j])
		}
	}
}

func TestApplyWindowScalesElementwise(t *testing.T) {
	w := []float64{0, 0.5, 1}
	src := []float64{2, 4, 6}
	dst := make([]float64, 3)
	ApplyWindow(dst, src, w)
	want := []float64{0, 2, 6}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("at %d: got %v want %v", i, dst[i], want[i])
		}
	}
}
