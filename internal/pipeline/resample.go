package pipeline

// resampleLinear stretches or compresses src onto a buffer of outLen
// samples by linear interpolation. This is the pipeline's realization of
// speed_factor: the vocoder kernel holds analysis and synthesis hop
// equal (required for its phase-locking math), so duration change
// happens one layer up, by resampling each hop's output block to a
// length proportional to 1/speed_factor. Like any playback-rate change,
// this also divides the block's pitch by speed_factor; pitch and
// duration are not changed independently here, and blocks are resampled
// one at a time with no interpolation across block boundaries.
func resampleLinear(dst, src []float64) {
	n := len(src)
	m := len(dst)
	if m == 0 {
		return
	}
	if n == 0 {
		for i := range dst {
			dst[i] = 0
		}
		return
	}
	if m == 1 {
		dst[0] = src[n-1]
		return
	}
	step := float64(n-1) / float64(m-1)
	for i := 0; i < m; i++ {
		pos := float64(i) * step
		lo := int(pos)
		if lo >= n-1 {
			dst[i] = src[n-1]
			continue
		}
		frac := pos - float64(lo)
		dst[i] = src[lo]*(1-frac) + src[lo+1]*frac
	}
}
