// vocalmod is the real-time voice modulation core: it captures mono
// audio from a live input device, runs it through a phase vocoder plus
// echo/reverb and automatic gain control, and writes the result to an
// output device continuously. Modulation parameters can be changed
// while it runs by writing lines like "pitch 1.5" to its stdin.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/vocalmod/core/internal/apperr"
	"github.com/vocalmod/core/internal/session"
	"github.com/vocalmod/core/internal/vlog"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := session.DefaultConfig()

	sampleRate := pflag.Int("sample-rate", cfg.SampleRate, "audio sample rate in Hz")
	frameSize := pflag.Int("frame-size", cfg.FrameSize, "analysis frame size in samples (power of two)")
	overlapRatio := pflag.Int("overlap-ratio", cfg.OverlapRatio, "STFT overlap ratio (>= 4)")
	inputDevice := pflag.StringP("input-device", "i", "", "input device id (backend default if empty)")
	outputDevice := pflag.StringP("output-device", "o", "", "output device id (backend default if empty)")
	outputBackend := pflag.String("output-backend", cfg.Backend, "output backend: portaudio or oto")
	debug := pflag.BoolP("debug", "d", false, "enable debug-level logging")
	pflag.Usage = func() {
		fmt.Fprintln(os.Stderr, "vocalmod — real-time voice modulation core")
		fmt.Fprintln(os.Stderr, "\nUsage: vocalmod [flags]")
		fmt.Fprintln(os.Stderr, "\nModulation parameters are changed at runtime by writing lines to stdin:")
		fmt.Fprintln(os.Stderr, "  pitch 1.5       speed 1.2        echo 0.3")
		fmt.Fprintln(os.Stderr, "  echodelay 22050 reverb 0.2")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	cfg.SampleRate = *sampleRate
	cfg.FrameSize = *frameSize
	cfg.OverlapRatio = *overlapRatio
	cfg.InputDevice = *inputDevice
	cfg.OutputDevice = *outputDevice
	cfg.Backend = *outputBackend
	cfg.Debug = *debug

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "vocalmod: invalid configuration: %v\n", err)
		return exitFor(err)
	}

	logger := vlog.New(cfg.Debug)

	sess, err := session.New(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vocalmod: %v\n", err)
		return exitFor(err)
	}
	defer sess.Close()

	printBanner(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigc
		cancel()
	}()

	go func() {
		if err := sess.RunControlProtocol(os.Stdin); err != nil {
			logger.Warn("control protocol reader exited", "err", err)
		}
	}()

	runErr := sess.Run(ctx)
	fmt.Fprintf(os.Stderr, "vocalmod: %s\n", sess.Summary())

	if runErr != nil && runErr != context.Canceled {
		fmt.Fprintf(os.Stderr, "vocalmod: %v\n", runErr)
		return exitFor(runErr)
	}
	return 0
}

func printBanner(cfg session.Config) {
	hop := cfg.FrameSize / cfg.OverlapRatio
	fmt.Fprintf(os.Stderr, "vocalmod — sample_rate=%d frame_size=%d hop_size=%d backend=%s\n",
		cfg.SampleRate, cfg.FrameSize, hop, cfg.Backend)
}

func exitFor(err error) int {
	if kind, ok := apperr.KindOf(err); ok {
		return apperr.ExitCode(kind)
	}
	return 1
}
