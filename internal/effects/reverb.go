package effects

import (
	"math"
	"math/rand"
)

// Reverb implements §4.E's FIR reverb: a fixed impulse response h[0..L)
// of deterministic pseudo-random decaying taps, convolved directly
// against a ring buffer of the last L dry samples, mixed against the
// incoming signal by reverb_intensity.
//
// Grounded directly on this module's original reverb_effect (a plain
// `y = Σ h[k]·x[k]` FIR sum against a history window) rather than the
// comb/allpass network found elsewhere in this codebase's sound-chip
// ancestry — the two are different effects, and §4.E names the FIR
// form explicitly.
type Reverb struct {
	taps    []float64
	history []float64
	pos     int

	intensity float64
}

const (
	// impulseLengthRatio sizes the impulse response to L ≈ 0.1·sample_rate.
	impulseLengthRatio = 0.1

	// impulseSeed makes the decaying-tap generation reproducible across
	// runs and sample rates rather than drawing from process entropy.
	impulseSeed = 0x5eed1

	// impulseDecayRate shapes the exponential envelope applied to the
	// random taps so the tail dies out well before L samples.
	impulseDecayRate = 6.0

	// bypassThreshold below this intensity, Process is the identity —
	// see 4.E.
	bypassThreshold = 1e-4
)

// NewReverb allocates a reverberator sized for sampleRate.
func NewReverb(sampleRate int) *Reverb {
	length := int(impulseLengthRatio * float64(sampleRate))
	if length < 1 {
		length = 1
	}
	return &Reverb{
		taps:    generateImpulseResponse(length),
		history: make([]float64, length),
	}
}

// generateImpulseResponse builds the deterministic pseudo-random
// decaying-tap FIR kernel h[0..L) named in §3/§4.E: uniform noise in
// [-1, 1] shaped by a decaying exponential envelope, so early taps
// dominate and the tail contributes vanishingly little.
func generateImpulseResponse(length int) []float64 {
	src := rand.New(rand.NewSource(impulseSeed))
	h := make([]float64, length)
	for k := range h {
		envelope := math.Exp(-impulseDecayRate * float64(k) / float64(length))
		noise := src.Float64()*2 - 1
		h[k] = noise * envelope
	}
	return h
}

// SetIntensity sets the dry/wet mix (reverb_intensity, [0,1]).
func (r *Reverb) SetIntensity(intensity float64) {
	r.intensity = intensity
}

// Process runs the FIR reverb over block in place: for each sample,
// write it into the history ring, convolve the taps against the ring
// in reverse write order, then mix dry against wet by intensity.
func (r *Reverb) Process(block []float64) {
	if r.intensity < bypassThreshold {
		return
	}
	l := len(r.history)
	for i, dry := range block {
		r.history[r.pos] = dry

		var wet float64
		idx := r.pos
		for k := 0; k < len(r.taps); k++ {
			wet += r.taps[k] * r.history[idx]
			idx--
			if idx < 0 {
				idx = l - 1
			}
		}

		block[i] = dry*(1-r.intensity) + wet*r.intensity
		r.pos++
		if r.pos >= l {
			r.pos = 0
		}
	}
}
