//go:build headless

package audiodevice

// Backend names accepted by NewPlaybackDevice / the --output-backend
// flag. In headless builds every name resolves to the same no-op
// device; the names are kept so session config validation behaves
// identically across build tags.
const (
	BackendPortAudio = "portaudio"
	BackendOto       = "oto"
)

func NewCaptureDevice() Device {
	return NewHeadlessDevice()
}

func NewPlaybackDevice(backend string) (Device, error) {
	return NewHeadlessDevice(), nil
}
