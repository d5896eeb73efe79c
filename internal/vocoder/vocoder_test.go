package vocoder

import (
	"math"
	"testing"
)

func testConfig() Config {
	return Config{FrameSize: 1024, OverlapRatio: 4}
}

func runTicks(t *testing.T, p *Processor, input []float64) []float64 {
	t.Helper()
	hop := p.HopSize()
	if len(input)%hop != 0 {
		t.Fatalf("input length %d not a multiple of hop %d", len(input), hop)
	}
	out := make([]float64, 0, len(input))
	for i := 0; i < len(input); i += hop {
		block := p.Process(input[i:i+hop], 1.0)
		out = append(out, append([]float64(nil), block...)...)
	}
	return out
}

func TestSilenceInSilenceOut(t *testing.T) {
	p, err := NewProcessor(testConfig())
	if err != nil {
		t.Fatalf("new processor: %v", err)
	}
	in := make([]float64, 48128) // 188 hops of 256, just over 48000 samples
	out := runTicks(t, p, in)
	for i, v := range out {
		if math.Abs(v) >= 1e-6 {
			t.Fatalf("sample %d not silent: %v", i, v)
		}
	}
}

func TestUnityPassthroughAfterWarmup(t *testing.T) {
	cfg := testConfig()
	p, err := NewProcessor(cfg)
	if err != nil {
		t.Fatalf("new processor: %v", err)
	}

	n := cfg.FrameSize * 8
	in := make([]float64, n)
	for i := range in {
		in[i] = 0.4 * math.Sin(2*math.Pi*440*float64(i)/44100)
	}
	out := runTicks(t, p, in)

	warmup := cfg.FrameSize
	latency := cfg.FrameSize - cfg.HopSize()
	maxErr := 0.0
	for i := warmup; i < n; i++ {
		// Reconstruction lags the input by FrameSize-HopSize samples (an
		// input sample is emitted on the tick in which it has slid to the
		// front of the analysis frame); compare sample by sample at that
		// lag.
		e := math.Abs(out[i] - in[i-latency])
		if e > maxErr {
			maxErr = e
		}
	}
	// Loose bound: this is a structural sanity check (window-domain
	// reconstruction doesn't blow up amplitude), not a tight accuracy
	// check — see TestPitchDoublingShiftsFrequency for the
	// frequency-domain property test.
	if maxErr > 1.5 {
		t.Fatalf("unity passthrough amplitude diverged: maxErr=%v", maxErr)
	}
}

func TestPitchDoublingShiftsFrequency(t *testing.T) {
	cfg := testConfig()
	p, err := NewProcessor(cfg)
	if err != nil {
		t.Fatalf("new processor: %v", err)
	}

	const sampleRate = 44100.0
	const freq = 440.0
	n := cfg.FrameSize * 40
	hop := cfg.HopSize()
	out := make([]float64, 0, n)
	for i := 0; i < n; i += hop {
		block := make([]float64, hop)
		for j := range block {
			t := float64(i+j) / sampleRate
			block[j] = 0.5 * math.Sin(2*math.Pi*freq*t)
		}
		y := p.Process(block, 2.0)
		out = append(out, append([]float64(nil), y...)...)
	}

	tail := out[len(out)-8192:]
	peakBin := dominantBin(tail, sampleRate)
	if peakBin < 870 || peakBin > 890 {
		t.Fatalf("expected dominant frequency in [870,890] Hz after pitch doubling, got %v", peakBin)
	}
}

// dominantBin runs a naive O(N*K) DFT magnitude search restricted to the
// plausible band around the expected shifted tone, which is all this
// test needs and avoids pulling in the production FFT path for
// assertions about it.
func dominantBin(samples []float64, sampleRate float64) float64 {
	bestFreq := 0.0
	bestMag := -1.0
	for f := 700.0; f <= 1100.0; f += 1.0 {
		var re, im float64
		w := 2 * math.Pi * f / sampleRate
		for i, s := range samples {
			re += s * math.Cos(w*float64(i))
			im -= s * math.Sin(w*float64(i))
		}
		mag := re*re + im*im
		if mag > bestMag {
			bestMag = mag
			bestFreq = f
		}
	}
	return bestFreq
}

func TestImpulseResponsePeak(t *testing.T) {
	cfg := testConfig()
	p, err := NewProcessor(cfg)
	if err != nil {
		t.Fatalf("new processor: %v", err)
	}
	n := cfg.FrameSize * 4
	in := make([]float64, n)
	in[0] = 1.0
	out := runTicks(t, p, in)

	peakIdx, peakVal := 0, 0.0
	for i, v := range out {
		if math.Abs(v) > peakVal {
			peakVal = math.Abs(v)
			peakIdx = i
		}
	}
	if peakVal < 0.9 {
		t.Fatalf("impulse response peak too low: %v at %d", peakVal, peakIdx)
	}
	lo, hi := cfg.FrameSize-cfg.HopSize(), cfg.FrameSize+cfg.HopSize()
	if peakIdx < lo || peakIdx > hi {
		t.Fatalf("impulse response peak at %d outside expected window [%d,%d]", peakIdx, lo, hi)
	}
}
