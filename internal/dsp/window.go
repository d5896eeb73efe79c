// Package dsp holds the low-level numeric primitives shared by the
// vocoder: window functions and the FFT plan wrapper. It imports nothing
// else from this module, so every higher layer (vocoder, effects, agc,
// pipeline) can depend on it without creating cycles.
package dsp

import "math"

// HannWindow returns an n-sample Hann window:
//
//	w[i] = 0.5 * (1 - cos(2*pi*i/(n-1)))
//
// Overlap-adding squared copies of this window at a hop of n/overlap
// sums to a constant for overlap ratios of 4 or more, which is what
// makes the overlap-add resynthesis in the vocoder package amplitude
// correct across hop boundaries.
func HannWindow(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	scale := 2 * math.Pi / float64(n-1)
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(scale*float64(i)))
	}
	return w
}

// ApplyWindow multiplies src by w element-wise into dst. dst and src may
// alias the same slice.
func ApplyWindow(dst, src, w []float64) {
	for i := range src {
		dst[i] = src[i] * w[i]
	}
}
