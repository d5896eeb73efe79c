// Package pipeline implements the three-stage audio orchestrator from
// §4.G: capture, process, and playback goroutines cooperating only
// through ring buffers, a shared running flag, and the parameter
// channel — never a shared lock, and never a lock held across a device
// call.
package pipeline

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/vocalmod/core/internal/agc"
	"github.com/vocalmod/core/internal/apperr"
	"github.com/vocalmod/core/internal/audiodevice"
	"github.com/vocalmod/core/internal/diag"
	"github.com/vocalmod/core/internal/effects"
	"github.com/vocalmod/core/internal/params"
	"github.com/vocalmod/core/internal/ringbuffer"
	"github.com/vocalmod/core/internal/vlog"
	"github.com/vocalmod/core/internal/vocoder"
)

// ringDepthFrames sets ring buffer capacity to this many FRAME_SIZE
// blocks, satisfying §3's "capacity ≥ 8·FRAME_SIZE" requirement with
// headroom to spare.
const ringDepthFrames = 16

const (
	ringIOTimeout = 500 * time.Millisecond
)

// Config bundles everything a Pipeline needs to run: opened devices,
// frame geometry, the parameter channel, and diagnostics/logging sinks.
// Devices are expected to already be open; the pipeline does not open or
// close them, so ownership and shutdown ordering stay with whichever
// layer opened them (see internal/session).
type Config struct {
	SampleRate       int
	FrameSize        int
	OverlapRatio     int
	InitialEchoDelay int

	Input  audiodevice.Device
	Output audiodevice.Device

	Params *params.Channel
	Diag   *diag.Counters
	Logger *vlog.Logger
}

// Pipeline owns the three stages and all DSP state exclusively touched
// by the processor stage.
type Pipeline struct {
	cfg Config
	hop int

	inRing  *ringbuffer.Buffer
	outRing *ringbuffer.Buffer

	proc *vocoder.Processor
	tail *effects.Tail
	gate *agc.Gate

	running atomic.Bool
	wg      sync.WaitGroup

	firstErr atomic.Pointer[apperr.Error]

	captureState  atomic.Int32
	processState  atomic.Int32
	playbackState atomic.Int32
}

// New constructs a pipeline. All allocation happens here; the stage
// goroutines started by Start never allocate in steady state.
func New(cfg Config) (*Pipeline, error) {
	vcfg := vocoder.Config{FrameSize: cfg.FrameSize, OverlapRatio: cfg.OverlapRatio}
	proc, err := vocoder.NewProcessor(vcfg)
	if err != nil {
		return nil, apperr.New(apperr.Internal, "pipeline", err)
	}

	p := &Pipeline{
		cfg:     cfg,
		hop:     vcfg.HopSize(),
		inRing:  ringbuffer.New(nextPow2(cfg.FrameSize * ringDepthFrames)),
		outRing: ringbuffer.New(nextPow2(cfg.FrameSize * ringDepthFrames)),
		proc:    proc,
		tail:    effects.NewTail(cfg.SampleRate, cfg.InitialEchoDelay),
		gate:    agc.New(),
	}
	return p, nil
}

// clampUnit hard-clamps block to [-1, 1]. The AGC soft limiter already
// keeps every sample it processes below 1 in magnitude; this is a final
// guard applied after it.
func clampUnit(block []float64) {
	for i, v := range block {
		if v > 1 {
			block[i] = 1
		} else if v < -1 {
			block[i] = -1
		}
	}
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Start launches the capture, process, and playback goroutines.
func (p *Pipeline) Start() {
	p.running.Store(true)
	p.captureState.Store(int32(Running))
	p.processState.Store(int32(Running))
	p.playbackState.Store(int32(Running))

	p.wg.Add(3)
	go p.captureLoop()
	go p.processLoop()
	go p.playbackLoop()
}

// Stop signals every stage to drain and exit, then waits for them to
// join. Safe to call once.
func (p *Pipeline) Stop() {
	p.running.Store(false)
	p.inRing.Close()
	p.outRing.Close()
	p.wg.Wait()
}

// FirstError returns the first device error any stage observed, or nil.
func (p *Pipeline) FirstError() *apperr.Error {
	return p.firstErr.Load()
}

// stageLogger returns a logger tagged with the given stage name, or nil
// if no logger was configured.
func (p *Pipeline) stageLogger(name string) *vlog.Logger {
	if p.cfg.Logger == nil {
		return nil
	}
	return p.cfg.Logger.Stage(name)
}

func (p *Pipeline) fail(log *vlog.Logger, err *apperr.Error) {
	if p.firstErr.CompareAndSwap(nil, err) {
		if p.cfg.Diag != nil {
			p.cfg.Diag.RecordError(err)
		}
		if log != nil {
			log.Error("stage failed", "err", err.Err)
		}
	}
	p.running.Store(false)
}

func (p *Pipeline) captureLoop() {
	defer p.wg.Done()
	log := p.stageLogger("capture")
	if log != nil {
		log.Debug("stage started")
	}
	buf := make([]float32, p.cfg.FrameSize)
	for p.running.Load() {
		if err := p.cfg.Input.Read(buf); err != nil {
			p.captureState.Store(int32(Draining))
			p.fail(log, apperr.New(apperr.DeviceIO, "capture", err))
			return
		}
		if err := p.inRing.Write(buf, ringIOTimeout); err != nil {
			if p.cfg.Diag != nil {
				p.cfg.Diag.RecordOverrun()
			}
		}
	}
	p.captureState.Store(int32(Stopped))
	if log != nil {
		log.Debug("stage stopped")
	}
}

func (p *Pipeline) processLoop() {
	defer p.wg.Done()
	log := p.stageLogger("processor")
	if log != nil {
		log.Debug("stage started")
	}
	in32 := make([]float32, p.hop)
	in64 := make([]float64, p.hop)

	// speed_factor can shrink the emitted block to as little as
	// MinSpeedFactor of hop, or stretch it to as much as 1/MinSpeedFactor
	// — pre-size both scratch buffers to that worst case up front so
	// resizing one after a parameter update never allocates on this
	// audio-processing goroutine.
	maxOutLen := int(float64(p.hop) / params.MinSpeedFactor)
	stretched := make([]float64, maxOutLen)
	out32 := make([]float32, maxOutLen)
	lastEchoDelay := p.cfg.InitialEchoDelay

	for p.running.Load() {
		if err := p.inRing.Read(in32, ringIOTimeout); err != nil {
			if p.cfg.Diag != nil {
				p.cfg.Diag.RecordUnderrun()
			}
			// in32 already holds whatever partial data made it through
			// before the deadline; the samples still missing are zeroed
			// here, which functions as the silence-fill §7 calls for.
			if te, ok := err.(*ringbuffer.ErrTimeout); ok {
				clear(in32[len(in32)-te.N:])
			}
		}

		snap := p.cfg.Params.Load()
		for i, s := range in32 {
			in64[i] = float64(s)
		}

		emitted := p.proc.Process(in64, snap.PitchFactor)

		outLen := p.hop
		if snap.SpeedFactor != 1.0 {
			outLen = int(float64(p.hop) / snap.SpeedFactor)
			if outLen < 1 {
				outLen = 1
			}
		}
		block := emitted
		if outLen != p.hop {
			block = stretched[:outLen]
			resampleLinear(block, emitted)
		}

		if snap.EchoDelaySamples != lastEchoDelay {
			p.tail.Echo.SetDelay(snap.EchoDelaySamples)
			lastEchoDelay = snap.EchoDelaySamples
		}
		p.tail.Echo.SetIntensity(snap.EchoIntensity)
		p.tail.Reverb.SetIntensity(snap.ReverbIntensity)
		p.tail.Process(block)
		p.gate.Process(block)
		clampUnit(block)

		outBlock := out32[:len(block)]
		for i, s := range block {
			outBlock[i] = float32(s)
		}

		if err := p.outRing.Write(outBlock, ringIOTimeout); err != nil {
			if p.cfg.Diag != nil {
				p.cfg.Diag.RecordOverrun()
			}
		}
		if p.cfg.Diag != nil {
			p.cfg.Diag.RecordFrame()
		}
	}
	p.processState.Store(int32(Stopped))
	if log != nil {
		log.Debug("stage stopped")
	}
}

func (p *Pipeline) playbackLoop() {
	defer p.wg.Done()
	log := p.stageLogger("playback")
	if log != nil {
		log.Debug("stage started")
	}
	buf := make([]float32, p.cfg.FrameSize)
	for p.running.Load() {
		if err := p.outRing.Read(buf, ringIOTimeout); err != nil {
			if p.cfg.Diag != nil {
				p.cfg.Diag.RecordUnderrun()
			}
			if te, ok := err.(*ringbuffer.ErrTimeout); ok {
				clear(buf[len(buf)-te.N:])
			}
		}
		if err := p.cfg.Output.Write(buf); err != nil {
			p.playbackState.Store(int32(Draining))
			p.fail(log, apperr.New(apperr.DeviceIO, "playback", err))
			return
		}
	}
	p.playbackState.Store(int32(Stopped))
	if log != nil {
		log.Debug("stage stopped")
	}
}
