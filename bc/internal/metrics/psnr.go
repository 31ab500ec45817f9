// Package metrics provides test-only image-quality helpers used to order
// encoder presets by fidelity, grounded on the original Rust suite's
// tests/common/metrics.rs (mean squared error and PSNR over an RGBA8
// buffer).
package metrics

import "math"

// MSE returns the mean squared error between two equal-length byte buffers,
// averaged per byte.
func MSE(a, b []byte) float64 {
	if len(a) != len(b) {
		panic("metrics: MSE: length mismatch")
	}
	if len(a) == 0 {
		return 0
	}
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum / float64(len(a))
}

// PSNR returns the peak signal-to-noise ratio in dB for two RGBA8 (or other
// 8-bit channel) buffers of equal length. Returns +Inf for an exact match.
func PSNR(a, b []byte) float64 {
	mse := MSE(a, b)
	if mse == 0 {
		return math.Inf(1)
	}
	return 10 * math.Log10(255*255/mse)
}

// MonotonicPresetQuality reports whether psnrs is non-decreasing, allowing
// each step to drop by at most 0.01 dB; the property exercised by
// preset-ordering tests (a slower preset must not produce a lower-fidelity
// result than a faster one on the same input).
func MonotonicPresetQuality(psnrs []float64) bool {
	for i := 1; i < len(psnrs); i++ {
		if psnrs[i] < psnrs[i-1]-0.01 { // 0.01 dB tolerance
			return false
		}
	}
	return true
}
