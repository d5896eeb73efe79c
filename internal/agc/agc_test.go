package agc

import (
	"math"
	"testing"
)

func TestNoiseGateSilencesLowAmplitude(t *testing.T) {
	g := New()
	block := make([]float64, 4096)
	for i := range block {
		block[i] = 0.0005
	}
	// Run several blocks, since ema_rms starts at zero and only settles
	// after repeated calls; it rises toward the input's 0.0005 RMS and
	// stays below the noise floor throughout.
	for i := 0; i < 50; i++ {
		b := append([]float64(nil), block...)
		g.Process(b)
		if i == 49 {
			for j, v := range b {
				if v != 0 {
					t.Fatalf("expected gated silence at %d, got %v", j, v)
				}
			}
		}
	}
}

func TestEnergyBoundWithAGC(t *testing.T) {
	g := New()
	block := make([]float64, 4410)
	for i := range block {
		block[i] = 1.5 // loud, clipped-ish input
	}
	var out []float64
	for i := 0; i < 200; i++ {
		b := append([]float64(nil), block...)
		g.Process(b)
		out = b
	}
	rmsOut := rms(out)
	if rmsOut > 2*targetRMS {
		t.Fatalf("AGC output RMS %v exceeds 2*targetRMS bound %v", rmsOut, 2*targetRMS)
	}
}

func TestSoftLimiterNeverExceedsOne(t *testing.T) {
	g := New()
	g.emaGain = 1000 // force an extreme gain to exercise the limiter
	block := []float64{1, -1, 0.5}
	g.Process(block)
	for _, v := range block {
		if math.Abs(v) >= 1.0 {
			t.Fatalf("soft limiter failed to bound sample: %v", v)
		}
	}
}
