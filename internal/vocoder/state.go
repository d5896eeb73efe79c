// Package vocoder implements the streaming phase vocoder: STFT analysis,
// per-bin phase manipulation for pitch shifting, and overlap-add
// resynthesis. It depends only on internal/dsp for windowing and FFT.
package vocoder

import (
	"fmt"

	"github.com/vocalmod/core/internal/dsp"
)

// Config describes the fixed, session-time frame geometry. FrameSize
// must be a power of two; OverlapRatio must be at least 4 so that
// overlapping squared-Hann windows sum to a constant (see
// dsp.HannWindow).
type Config struct {
	FrameSize    int
	OverlapRatio int
}

// HopSize is FrameSize/OverlapRatio.
func (c Config) HopSize() int { return c.FrameSize / c.OverlapRatio }

// Bins is FrameSize/2 + 1.
func (c Config) Bins() int { return c.FrameSize/2 + 1 }

func (c Config) validate() error {
	if c.FrameSize <= 0 || c.FrameSize&(c.FrameSize-1) != 0 {
		return fmt.Errorf("vocoder: frame size %d must be a positive power of two", c.FrameSize)
	}
	if c.OverlapRatio < 4 {
		return fmt.Errorf("vocoder: overlap ratio %d must be >= 4", c.OverlapRatio)
	}
	if c.FrameSize%c.OverlapRatio != 0 {
		return fmt.Errorf("vocoder: frame size %d not divisible by overlap ratio %d", c.FrameSize, c.OverlapRatio)
	}
	return nil
}

// Processor holds all DSP state exclusively owned by the pipeline's
// processor stage: analysis/synthesis window, per-bin phase tracking,
// the sliding input history and the overlap-add output accumulator, plus
// the FFT plan and scratch buffers reused every tick. None of this is
// safe for concurrent use — exactly one goroutine may call Process.
type Processor struct {
	cfg Config
	hop int

	fft    *dsp.FFTPlan
	window []float64

	prevPhase  []float64
	phaseAccum []float64

	inputHistory      []float64
	outputAccumulator []float64

	// Scratch, reused every tick to keep steady-state processing
	// allocation-free.
	windowed      []float64
	spectrum      []complex128
	synthSpectrum []complex128
	synthTime     []float64
	emitted       []float64
}

// NewProcessor allocates a vocoder processor for the given frame
// geometry. All allocation happens here, at session init; Process never
// allocates.
func NewProcessor(cfg Config) (*Processor, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	fft, err := dsp.NewFFTPlan(cfg.FrameSize)
	if err != nil {
		return nil, fmt.Errorf("vocoder: fft plan: %w", err)
	}

	bins := cfg.Bins()
	p := &Processor{
		cfg:               cfg,
		hop:               cfg.HopSize(),
		fft:               fft,
		window:            dsp.HannWindow(cfg.FrameSize),
		prevPhase:         make([]float64, bins),
		phaseAccum:        make([]float64, bins),
		inputHistory:      make([]float64, cfg.FrameSize),
		outputAccumulator: make([]float64, cfg.FrameSize),
		windowed:          make([]float64, cfg.FrameSize),
		spectrum:          make([]complex128, bins),
		synthSpectrum:     make([]complex128, bins),
		synthTime:         make([]float64, cfg.FrameSize),
		emitted:           make([]float64, cfg.HopSize()),
	}
	return p, nil
}

// HopSize returns the number of samples consumed and produced per tick.
func (p *Processor) HopSize() int { return p.hop }
