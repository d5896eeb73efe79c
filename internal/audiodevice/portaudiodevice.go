//go:build !headless

package audiodevice

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
)

var (
	paInitOnce sync.Once
	paInitErr  error
)

func ensurePortAudio() error {
	paInitOnce.Do(func() {
		paInitErr = portaudio.Initialize()
	})
	return paInitErr
}

// PortAudioDevice is the primary full-duplex backend: one blocking-mode
// input stream and one blocking-mode output stream, each driven by its
// own pre-allocated buffer so Read/Write never allocate on the audio
// path.
type PortAudioDevice struct {
	inStream *portaudio.Stream
	inBuf    []float32

	outStream *portaudio.Stream
	outBuf    []float32
}

// NewPortAudioDevice constructs an unopened device. Call OpenInput
// and/or OpenOutput before using it.
func NewPortAudioDevice() *PortAudioDevice {
	return &PortAudioDevice{}
}

func (d *PortAudioDevice) OpenInput(sampleRate, framesPerRead int) error {
	if err := ensurePortAudio(); err != nil {
		return fmt.Errorf("portaudio init: %w", err)
	}
	d.inBuf = make([]float32, framesPerRead)
	stream, err := portaudio.OpenDefaultStream(1, 0, float64(sampleRate), framesPerRead, d.inBuf)
	if err != nil {
		return fmt.Errorf("portaudio open input stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		return fmt.Errorf("portaudio start input stream: %w", err)
	}
	d.inStream = stream
	return nil
}

func (d *PortAudioDevice) OpenOutput(sampleRate, framesPerWrite int) error {
	if err := ensurePortAudio(); err != nil {
		return fmt.Errorf("portaudio init: %w", err)
	}
	d.outBuf = make([]float32, framesPerWrite)
	stream, err := portaudio.OpenDefaultStream(0, 1, float64(sampleRate), framesPerWrite, d.outBuf)
	if err != nil {
		return fmt.Errorf("portaudio open output stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		return fmt.Errorf("portaudio start output stream: %w", err)
	}
	d.outStream = stream
	return nil
}

func (d *PortAudioDevice) Read(buf []float32) error {
	if d.inStream == nil {
		return fmt.Errorf("portaudio: input stream not open")
	}
	if err := d.inStream.Read(); err != nil {
		return err
	}
	copy(buf, d.inBuf)
	return nil
}

func (d *PortAudioDevice) Write(buf []float32) error {
	if d.outStream == nil {
		return fmt.Errorf("portaudio: output stream not open")
	}
	copy(d.outBuf, buf)
	return d.outStream.Write()
}

func (d *PortAudioDevice) Close() error {
	var firstErr error
	if d.inStream != nil {
		if err := d.inStream.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		d.inStream = nil
	}
	if d.outStream != nil {
		if err := d.outStream.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		d.outStream = nil
	}
	return firstErr
}
