package vocoder

// resynthesize inverse-transforms p.synthSpectrum, applies the synthesis
// window, and overlap-adds the result into the output accumulator. It
// then slices off the first hop samples as this tick's output and shifts
// the accumulator down by one hop, zeroing the tail that slides into
// view.
//
// normFactor compensates for two things at once: the inverse FFT's own
// 1/N scaling (handled inside dsp.FFTPlan) and the energy gain from
// overlap-adding OverlapRatio shifted copies of a squared Hann window,
// which sum to 3*OverlapRatio/8 rather than 1.
func (p *Processor) resynthesize() []float64 {
	p.fft.Inverse(p.synthTime, p.synthSpectrum)

	normFactor := 8.0 / (3.0 * float64(p.cfg.OverlapRatio))
	for i, s := range p.synthTime {
		p.outputAccumulator[i] += s * p.window[i] * normFactor
	}

	copy(p.emitted, p.outputAccumulator[:p.hop])
	copy(p.outputAccumulator, p.outputAccumulator[p.hop:])
	for i := p.cfg.FrameSize - p.hop; i < p.cfg.FrameSize; i++ {
		p.outputAccumulator[i] = 0
	}
	return p.emitted
}
