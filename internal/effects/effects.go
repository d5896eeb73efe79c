// Package effects implements the post-vocoder effects tail: echo (a
// feedback delay line) and reverb (a short FIR convolution against a
// decaying-tap impulse response), applied in that order to each block
// the vocoder emits.
package effects

// Tail bundles the echo and reverb stages applied after the vocoder and
// before AGC.
type Tail struct {
	Echo   *Echo
	Reverb *Reverb
}

// NewTail allocates an effects tail sized for sampleRate, with the
// initial echo delay set to initialEchoDelay samples.
func NewTail(sampleRate, initialEchoDelay int) *Tail {
	return &Tail{
		Echo:   NewEcho(initialEchoDelay),
		Reverb: NewReverb(sampleRate),
	}
}

// Process runs echo then reverb over block in place, per 4.E.
func (t *Tail) Process(block []float64) {
	t.Echo.Process(block)
	t.Reverb.Process(block)
}
