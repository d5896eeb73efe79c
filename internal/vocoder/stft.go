package vocoder

import "github.com/vocalmod/core/internal/dsp"

// analyze slides hop samples of new input into the processor's history,
// windows the full frame, and runs the forward FFT into p.spectrum. It
// is the STFT front-end: framing and windowing are the only
// responsibilities here, the phase math lives in kernel.go.
func (p *Processor) analyze(in []float64) {
	hop := p.hop
	frame := p.cfg.FrameSize

	copy(p.inputHistory[0:frame-hop], p.inputHistory[hop:frame])
	copy(p.inputHistory[frame-hop:frame], in)

	dsp.ApplyWindow(p.windowed, p.inputHistory, p.window)
	p.fft.Forward(p.spectrum, p.windowed)
}
