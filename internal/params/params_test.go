package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishClampsOutOfRangeAndIncrementsVersion(t *testing.T) {
	c := NewChannel(44100)
	first := c.Load()

	published := c.Publish(Snapshot{
		PitchFactor:      10,
		SpeedFactor:      -1,
		EchoIntensity:    5,
		EchoDelaySamples: -3,
		ReverbIntensity:  -5,
	})

	assert.Equal(t, MaxPitchFactor, published.PitchFactor)
	assert.Equal(t, MinSpeedFactor, published.SpeedFactor)
	assert.Equal(t, MaxEchoIntensity, published.EchoIntensity)
	assert.Equal(t, 0, published.EchoDelaySamples)
	assert.Equal(t, MinReverbIntensity, published.ReverbIntensity)
	assert.Equal(t, first.Version+1, published.Version)
	assert.Equal(t, 44100, published.SampleRate)
}

func TestLoadReflectsLatestPublish(t *testing.T) {
	c := NewChannel(44100)
	c.Publish(Snapshot{PitchFactor: 2.0, SpeedFactor: 1.0, SampleRate: 44100})
	got := c.Load()
	require.Equal(t, 2.0, got.PitchFactor)
}
