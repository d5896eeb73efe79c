package session

import (
	"context"
	"fmt"
	"time"

	"github.com/vocalmod/core/internal/apperr"
	"github.com/vocalmod/core/internal/audiodevice"
	"github.com/vocalmod/core/internal/diag"
	"github.com/vocalmod/core/internal/params"
	"github.com/vocalmod/core/internal/pipeline"
	"github.com/vocalmod/core/internal/vlog"
)

// Session owns one full run of the voice modulation core: opened
// devices, the parameter channel, diagnostics, and the pipeline built on
// top of them. Construction order is open-devices-then-build-pipeline;
// Close reverses it.
type Session struct {
	cfg Config

	input  audiodevice.Device
	output audiodevice.Device

	params *params.Channel
	diag   *diag.Counters
	logger *vlog.Logger

	pipe *pipeline.Pipeline
}

// New validates cfg, opens the input and output devices, and builds the
// pipeline. On any failure it closes whatever it already opened before
// returning, so callers never need to call Close after a failed New.
func New(cfg Config, logger *vlog.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	hop := cfg.FrameSize / cfg.OverlapRatio

	input := audiodevice.NewCaptureDevice()
	if err := input.OpenInput(cfg.SampleRate, cfg.FrameSize); err != nil {
		return nil, apperr.New(apperr.DeviceOpen, "capture", err)
	}

	output, err := audiodevice.NewPlaybackDevice(cfg.Backend)
	if err != nil {
		input.Close()
		return nil, apperr.New(apperr.Config, "session", err)
	}
	if err := output.OpenOutput(cfg.SampleRate, cfg.FrameSize); err != nil {
		input.Close()
		return nil, apperr.New(apperr.DeviceOpen, "playback", err)
	}

	paramsCh := params.NewChannel(cfg.SampleRate)
	diagCounters := &diag.Counters{}

	pipe, err := pipeline.New(pipeline.Config{
		SampleRate:       cfg.SampleRate,
		FrameSize:        cfg.FrameSize,
		OverlapRatio:     cfg.OverlapRatio,
		InitialEchoDelay: paramsCh.Load().EchoDelaySamples,
		Input:            input,
		Output:           output,
		Params:           paramsCh,
		Diag:             diagCounters,
		Logger:           logger,
	})
	if err != nil {
		output.Close()
		input.Close()
		return nil, err
	}

	if logger != nil {
		logger.Info("session configured",
			"sample_rate", cfg.SampleRate,
			"frame_size", cfg.FrameSize,
			"hop_size", hop,
			"backend", cfg.Backend,
		)
	}

	return &Session{
		cfg:    cfg,
		input:  input,
		output: output,
		params: paramsCh,
		diag:   diagCounters,
		logger: logger,
		pipe:   pipe,
	}, nil
}

// Params exposes the parameter channel so a control surface (or the
// stdin control protocol) can publish updates.
func (s *Session) Params() *params.Channel { return s.params }

// Run starts the pipeline and blocks until ctx is cancelled or a stage
// reports a fatal device error, then stops the pipeline and returns the
// first error observed (ctx.Err(), e.g. context.Canceled, on clean
// shutdown via ctx).
func (s *Session) Run(ctx context.Context) error {
	s.pipe.Start()
	defer s.pipe.Stop()

	poll := time.NewTicker(50 * time.Millisecond)
	defer poll.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := s.pipe.FirstError(); err != nil {
				return err
			}
			return ctx.Err()
		case <-poll.C:
			if err := s.pipe.FirstError(); err != nil {
				return err
			}
		}
	}
}

// Summary returns the shutdown diagnostic line (§7).
func (s *Session) Summary() string {
	return s.diag.Summary()
}

// Close tears down devices in reverse acquisition order. Safe to call
// once, after Run returns.
func (s *Session) Close() error {
	var firstErr error
	if err := s.output.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("closing output device: %w", err)
	}
	if err := s.input.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("closing input device: %w", err)
	}
	return firstErr
}
