//go:build headless

package audiodevice

// HeadlessDevice is a no-op backend for running the pipeline without
// real hardware: input reads deliver silence, output writes are
// discarded. Built only with the headless tag, where it stands in for
// every backend name that --output-backend accepts.
type HeadlessDevice struct {
	opened bool
}

func NewHeadlessDevice() *HeadlessDevice { return &HeadlessDevice{} }

func (d *HeadlessDevice) OpenInput(sampleRate, framesPerRead int) error {
	d.opened = true
	return nil
}

func (d *HeadlessDevice) OpenOutput(sampleRate, framesPerWrite int) error {
	d.opened = true
	return nil
}

func (d *HeadlessDevice) Read(buf []float32) error {
	for i := range buf {
		buf[i] = 0
	}
	return nil
}

func (d *HeadlessDevice) Write(buf []float32) error {
	return nil
}

func (d *HeadlessDevice) Close() error {
	d.opened = false
	return nil
}
