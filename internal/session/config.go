// Package session wires together device selection, the parameter
// channel, diagnostics, logging, and the pipeline orchestrator into one
// value with an explicit lifecycle: New opens I/O, Run starts the
// stages and blocks until told to stop, Close tears everything down in
// reverse acquisition order. There is no global/static session state —
// every field the original's module-level globals would have held
// lives on this struct instead.
package session

import (
	"fmt"

	"github.com/vocalmod/core/internal/apperr"
	"github.com/vocalmod/core/internal/audiodevice"
)

// Config is the fully-resolved, validated set of session parameters —
// the CLI layer's job is to produce one of these and nothing more.
type Config struct {
	SampleRate   int
	FrameSize    int
	OverlapRatio int

	InputDevice  string
	OutputDevice string
	// Backend selects the output backend: audiodevice.BackendPortAudio
	// (default, full-duplex) or audiodevice.BackendOto (output-only).
	Backend string

	Debug bool
}

// DefaultConfig matches the defaults named in §3 and §6.
func DefaultConfig() Config {
	return Config{
		SampleRate:   44100,
		FrameSize:    1024,
		OverlapRatio: 4,
		Backend:      audiodevice.BackendPortAudio,
	}
}

// Validate checks the config against §3/§6's constraints, returning a
// Config-kind apperr.Error naming the first problem found.
func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return apperr.New(apperr.Config, "session", fmt.Errorf("sample rate must be positive, got %d", c.SampleRate))
	}
	if c.FrameSize <= 0 || c.FrameSize&(c.FrameSize-1) != 0 {
		return apperr.New(apperr.Config, "session", fmt.Errorf("frame size must be a power of two, got %d", c.FrameSize))
	}
	if c.OverlapRatio < 4 {
		return apperr.New(apperr.Config, "session", fmt.Errorf("overlap ratio must be >= 4, got %d", c.OverlapRatio))
	}
	if c.FrameSize%c.OverlapRatio != 0 {
		return apperr.New(apperr.Config, "session", fmt.Errorf("frame size %d not divisible by overlap ratio %d", c.FrameSize, c.OverlapRatio))
	}
	switch c.Backend {
	case audiodevice.BackendPortAudio, audiodevice.BackendOto:
	default:
		return apperr.New(apperr.Config, "session", fmt.Errorf("unknown output backend %q", c.Backend))
	}
	return nil
}
