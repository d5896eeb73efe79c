package vocoder

// Process runs one full analysis/synthesis tick: in must hold exactly
// HopSize() new input samples. It returns a HopSize()-length slice owned
// by the processor — callers must copy it before the next call to
// Process, which overwrites it in place.
//
// pitchFactor scales each bin's phase advance without affecting the hop
// spacing (and therefore without affecting output duration); it is the
// p of the phase-locked kernel in kernel.go. speed_factor is not handled
// here: the pipeline orchestrator resamples each emitted block one layer
// up, changing how many output samples one tick of input yields.
func (p *Processor) Process(in []float64, pitchFactor float64) []float64 {
	if len(in) != p.hop {
		panic("vocoder: Process called with a block that is not one hop long")
	}
	p.analyze(in)
	p.stepBins(pitchFactor)
	return p.resynthesize()
}

// Reset clears all phase/accumulator/history state, as if the processor
// had just been constructed. The pipeline orchestrator does not call it;
// a Processor otherwise keeps its phase history across underruns.
func (p *Processor) Reset() {
	for i := range p.prevPhase {
		p.prevPhase[i] = 0
		p.phaseAccum[i] = 0
	}
	for i := range p.inputHistory {
		p.inputHistory[i] = 0
	}
	for i := range p.outputAccumulator {
		p.outputAccumulator[i] = 0
	}
}
