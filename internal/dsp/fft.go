package dsp

import (
	algofft "github.com/cwbudde/algo-fft"
)

// FFTPlan wraps a real-input FFT plan sized for a fixed frame length. A
// plan is allocated once per session (during init, per the realtime-
// allocation-free discipline the pipeline follows) and reused for every
// analysis/synthesis tick thereafter.
type FFTPlan struct {
	plan *algofft.PlanReal64
	size int
}

// NewFFTPlan builds a real FFT plan for frameSize samples, producing
// frameSize/2+1 frequency bins.
func NewFFTPlan(frameSize int) (*FFTPlan, error) {
	plan, err := algofft.NewPlanReal64(frameSize)
	if err != nil {
		return nil, err
	}
	return &FFTPlan{plan: plan, size: frameSize}, nil
}

// Bins returns the number of complex frequency bins this plan produces
// (frameSize/2 + 1).
func (f *FFTPlan) Bins() int { return f.size/2 + 1 }

// Forward computes the real-to-complex DFT of src (length frameSize)
// into dst (length Bins()).
func (f *FFTPlan) Forward(dst []complex128, src []float64) {
	f.plan.Forward(dst, src)
}

// Inverse computes the complex-to-real inverse DFT of src (length
// Bins()) into dst (length frameSize).
func (f *FFTPlan) Inverse(dst []float64, src []complex128) {
	f.plan.Inverse(dst, src)
}
