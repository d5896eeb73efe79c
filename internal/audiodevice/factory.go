//go:build !headless

package audiodevice

import "fmt"

// Backend names accepted by NewPlaybackDevice / the --output-backend
// flag.
const (
	BackendPortAudio = "portaudio"
	BackendOto       = "oto"
)

// NewCaptureDevice returns the capture backend. portaudio is the only
// backend with an input side (oto and the headless stub are
// output/test-only), so there is no selection to make here.
func NewCaptureDevice() Device {
	return NewPortAudioDevice()
}

// NewPlaybackDevice returns the playback backend named by backend.
func NewPlaybackDevice(backend string) (Device, error) {
	switch backend {
	case BackendPortAudio, "":
		return NewPortAudioDevice(), nil
	case BackendOto:
		return NewOtoDevice(), nil
	default:
		return nil, fmt.Errorf("audiodevice: unknown backend %q", backend)
	}
}
