// Package agc implements the post-effects automatic gain control and
// noise gate: an RMS tracker feeding a smoothed, soft-limited gain
// stage that pulls output toward a target loudness while silencing
// input below the noise floor.
package agc

import "math"

const (
	// noiseFloor below this smoothed RMS, output is gated to silence.
	noiseFloor = 0.001
	// targetRMS is the loudness the gain stage converges toward.
	targetRMS = 0.3

	rmsSmoothing  = 0.01
	gainSmoothing = 0.001
)

// Gate tracks smoothed RMS and gain across blocks; state persists
// between Process calls, so one Gate must be used for one continuous
// stream.
type Gate struct {
	emaRMS  float64
	emaGain float64
}

// New returns a Gate with gain initialized to unity so the first block,
// before any RMS estimate has formed, is not unexpectedly attenuated.
func New() *Gate {
	return &Gate{emaGain: 1.0}
}

// Process runs the noise gate and AGC over block in place.
func (g *Gate) Process(block []float64) {
	rms := rms(block)
	g.emaRMS = (1-rmsSmoothing)*g.emaRMS + rmsSmoothing*rms

	if g.emaRMS < noiseFloor {
		for i := range block {
			block[i] = 0
		}
		return
	}

	desiredGain := targetRMS / math.Max(g.emaRMS, noiseFloor)
	g.emaGain = (1-gainSmoothing)*g.emaGain + gainSmoothing*desiredGain

	for i, y := range block {
		driven := y * g.emaGain
		block[i] = driven / (1 + math.Abs(driven))
	}
}

func rms(block []float64) float64 {
	if len(block) == 0 {
		return 0
	}
	var sumSq float64
	for _, v := range block {
		sumSq += v * v
	}
	return math.Sqrt(sumSq / float64(len(block)))
}
