package effects

// Echo is a single-tap feedback delay line: y[n] = x[n] + intensity *
// delay[read_ptr], with the delay line itself fed from y[n] so repeats
// decay geometrically rather than looping the dry signal forever.
type Echo struct {
	line      []float64
	pos       int
	intensity float64
}

// NewEcho allocates a delay line of delaySamples. delaySamples of zero
// is valid: it is raised to one, so the line degenerates to length one
// and the echo becomes a one-sample feedback delay (a same-sample tap
// would otherwise feed its own output back into itself).
func NewEcho(delaySamples int) *Echo {
	if delaySamples < 1 {
		delaySamples = 1
	}
	return &Echo{line: make([]float64, delaySamples)}
}

// SetIntensity sets the feedback coefficient (echo_intensity, [0,1]).
func (e *Echo) SetIntensity(intensity float64) {
	e.intensity = intensity
}

// SetDelay resizes the delay line to delaySamples, preserving existing
// contents modulo min(old, new) as required by the parameter-channel
// contract: a delay change must not discard history that the new length
// can still hold, and must not fabricate history the old length never
// had.
func (e *Echo) SetDelay(delaySamples int) {
	if delaySamples < 1 {
		delaySamples = 1
	}
	if delaySamples == len(e.line) {
		return
	}
	next := make([]float64, delaySamples)
	keep := delaySamples
	if len(e.line) < keep {
		keep = len(e.line)
	}
	for i := 0; i < keep; i++ {
		// Walk backwards from the current write position so the most
		// recent `keep` samples land at the tail of the new line,
		// immediately ahead of the new write pointer.
		srcIdx := (e.pos - 1 - i + len(e.line)*2) % len(e.line)
		dstIdx := (delaySamples - 1 - i + delaySamples) % delaySamples
		next[dstIdx] = e.line[srcIdx]
	}
	e.line = next
	e.pos = 0
}

// Process runs the echo over block in place.
func (e *Echo) Process(block []float64) {
	if e.intensity < bypassThreshold {
		return
	}
	for i, x := range block {
		y := x + e.intensity*e.line[e.pos]
		e.line[e.pos] = y
		e.pos = (e.pos + 1) % len(e.line)
		block[i] = y
	}
}
