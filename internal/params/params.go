// Package params implements the parameter channel: a value-type
// modulation snapshot published by a control surface and read, lock-free,
// by the audio processing thread. Exactly one writer and any number of
// readers may use a Channel concurrently; the audio path never blocks or
// takes a lock to read the latest snapshot.
package params

import (
	"sync/atomic"
)

// Snapshot holds the five modulation scalars plus a monotone version
// counter, as required by 4.H: the whole struct is published and loaded
// atomically, so a reader never observes a torn mix of old and new
// values.
type Snapshot struct {
	PitchFactor      float64
	SpeedFactor      float64
	EchoIntensity    float64
	EchoDelaySamples int
	ReverbIntensity  float64
	SampleRate       int
	Version          uint64
}

// Range bounds, per §3.
const (
	MinPitchFactor = 0.25
	MaxPitchFactor = 4.0

	MinSpeedFactor = 0.5
	MaxSpeedFactor = 2.0

	MinEchoIntensity = 0.0
	MaxEchoIntensity = 1.0

	MinReverbIntensity = 0.0
	MaxReverbIntensity = 1.0
)

// Default returns the default snapshot for the given immutable sample
// rate, with echo delay defaulting to half a second.
func Default(sampleRate int) Snapshot {
	return Snapshot{
		PitchFactor:      1.0,
		SpeedFactor:      1.0,
		EchoIntensity:    0.0,
		EchoDelaySamples: sampleRate / 2,
		ReverbIntensity:  0.0,
		SampleRate:       sampleRate,
	}
}

// clamp folds out-of-range fields into §3's bounds. SampleRate and
// Version are left untouched: sample rate is session-immutable and set
// only by Default, and Version is assigned by Channel.Publish.
func (s Snapshot) clamp() Snapshot {
	s.PitchFactor = clampF(s.PitchFactor, MinPitchFactor, MaxPitchFactor)
	s.SpeedFactor = clampF(s.SpeedFactor, MinSpeedFactor, MaxSpeedFactor)
	s.EchoIntensity = clampF(s.EchoIntensity, MinEchoIntensity, MaxEchoIntensity)
	s.ReverbIntensity = clampF(s.ReverbIntensity, MinReverbIntensity, MaxReverbIntensity)
	if s.EchoDelaySamples < 0 {
		s.EchoDelaySamples = 0
	}
	if s.SampleRate > 0 && s.EchoDelaySamples > s.SampleRate {
		s.EchoDelaySamples = s.SampleRate
	}
	return s
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Channel is the atomic publication point for modulation snapshots. The
// zero Channel is not usable; construct with NewChannel.
type Channel struct {
	current atomic.Pointer[Snapshot]
}

// NewChannel creates a channel pre-populated with the default snapshot
// for sampleRate.
func NewChannel(sampleRate int) *Channel {
	c := &Channel{}
	initial := Default(sampleRate)
	c.current.Store(&initial)
	return c
}

// Publish validates and clamps snapshot, stamps it with the next version
// number, and atomically makes it the current snapshot. Safe to call
// from any single writer goroutine at any rate.
func (c *Channel) Publish(snapshot Snapshot) Snapshot {
	prev := c.current.Load()
	snapshot.SampleRate = prev.SampleRate
	snapshot = snapshot.clamp()
	snapshot.Version = prev.Version + 1
	c.current.Store(&snapshot)
	return snapshot
}

// Load returns the most recently published snapshot. Never blocks, never
// allocates, and is safe to call from the realtime audio path.
func (c *Channel) Load() Snapshot {
	return *c.current.Load()
}
