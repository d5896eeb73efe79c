//go:build !headless

package audiodevice

import (
	"fmt"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/vocalmod/core/internal/ringbuffer"
)

// OtoDevice is the alternate, output-only backend built on
// ebitengine/oto/v3. oto pulls samples through a Read callback on its
// own goroutine rather than accepting pushed writes, so this device
// bridges the two styles with a small ring buffer: Write enqueues, an
// unexported io.Reader adapter handed to the player dequeues.
type OtoDevice struct {
	ctx    *oto.Context
	player *oto.Player
	bridge *ringbuffer.Buffer
}

// NewOtoDevice constructs an unopened device. Call OpenOutput before
// using it; OpenInput always fails, since oto is playback-only.
func NewOtoDevice() *OtoDevice {
	return &OtoDevice{}
}

func (d *OtoDevice) OpenInput(sampleRate, framesPerRead int) error {
	return fmt.Errorf("oto backend is output-only; use portaudio for capture")
}

func (d *OtoDevice) OpenOutput(sampleRate, framesPerWrite int) error {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   4 * time.Millisecond,
	})
	if err != nil {
		return fmt.Errorf("oto new context: %w", err)
	}
	<-ready

	// Bridge capacity: several writer blocks' worth of headroom so the
	// oto callback goroutine never starves while this device's Write
	// caller is mid-block.
	d.bridge = ringbuffer.New(nextPow2(framesPerWrite * 8))
	d.ctx = ctx
	d.player = ctx.NewPlayer(&otoSource{bridge: d.bridge})
	d.player.Play()
	return nil
}

// Read satisfies audiodevice.Device, under which oto is output-only.
func (d *OtoDevice) Read(buf []float32) error {
	return fmt.Errorf("oto backend is output-only; use portaudio for capture")
}

func (d *OtoDevice) Write(buf []float32) error {
	return d.bridge.Write(buf, defaultIOTimeout)
}

// otoSource adapts the bridge ring buffer to the io.Reader oto's player
// pulls from on its own goroutine, never on the pipeline's playback
// stage goroutine.
type otoSource struct {
	bridge *ringbuffer.Buffer
}

func (s *otoSource) Read(p []byte) (int, error) {
	n := len(p) / 4
	samples := make([]float32, n)
	if err := s.bridge.Read(samples, 200*time.Millisecond); err != nil {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}
	for i, v := range samples {
		bits := math.Float32bits(v)
		p[i*4+0] = byte(bits)
		p[i*4+1] = byte(bits >> 8)
		p[i*4+2] = byte(bits >> 16)
		p[i*4+3] = byte(bits >> 24)
	}
	return len(p), nil
}

func (d *OtoDevice) Close() error {
	if d.player != nil {
		d.player.Close()
		d.player = nil
	}
	if d.bridge != nil {
		d.bridge.Close()
	}
	return nil
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
