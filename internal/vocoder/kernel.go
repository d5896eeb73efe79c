package vocoder

import "math"

const (
	twoPi = 2 * math.Pi
	// silentMag below this magnitude, a bin's phase is treated as noise:
	// its accumulator is held rather than advanced, which keeps near-zero
	// bins from injecting random-walk phase jitter into the resynthesis.
	silentMag = 1e-9
)

// stepBins runs the phase-locked phase vocoder kernel over every
// analysis bin, turning p.spectrum (this tick's STFT) plus the phase
// history from the previous tick into p.synthSpectrum (this tick's
// resynthesis spectrum), given the current pitch factor.
//
// The core idea: a bin's raw phase advance between ticks is ambiguous
// modulo 2*pi, so it is compared against the bin's expected advance (its
// center frequency times the hop), unwrapped into (-pi, pi], and added
// back to the expected advance to recover the bin's true instantaneous
// frequency. Scaling that frequency by pitch_factor before re-integrating
// phase is what raises or lowers pitch without changing the hop spacing,
// and therefore without changing the output's duration.
func (p *Processor) stepBins(pitchFactor float64) {
	bins := p.cfg.Bins()
	frame := float64(p.cfg.FrameSize)
	hop := float64(p.hop)

	for k := 0; k < bins; k++ {
		re := real(p.spectrum[k])
		im := imag(p.spectrum[k])
		mag := math.Hypot(re, im)
		phase := math.Atan2(im, re)

		omega := twoPi * float64(k) / frame
		expectedAdvance := omega * hop

		if mag < silentMag {
			// Hold the accumulator steady; still track raw phase so the
			// next tick's diff is measured against real history once
			// energy returns. Magnitude is carried through unmodified
			// (it is already negligible) rather than zeroed outright.
			p.prevPhase[k] = phase
			sp, cp := math.Sincos(p.phaseAccum[k])
			p.synthSpectrum[k] = complex(mag*cp, mag*sp)
			continue
		}

		diff := phase - p.prevPhase[k] - expectedAdvance
		diff = principalArg(diff)
		trueFreq := omega + diff/hop

		p.phaseAccum[k] += trueFreq * hop * pitchFactor
		p.prevPhase[k] = phase

		sp, cp := math.Sincos(p.phaseAccum[k])
		p.synthSpectrum[k] = complex(mag*cp, mag*sp)
	}

	// DC and Nyquist bins of a real-input FFT carry no imaginary part;
	// force them real so the inverse transform doesn't fold stray phase
	// noise back into the time domain.
	p.synthSpectrum[0] = complex(real(p.synthSpectrum[0]), 0)
	p.synthSpectrum[bins-1] = complex(real(p.synthSpectrum[bins-1]), 0)
}

// principalArg wraps x into (-pi, pi].
func principalArg(x float64) float64 {
	x -= twoPi * math.Round(x/twoPi)
	return x
}
