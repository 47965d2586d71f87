// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// PCMScale returns the largest positive integer representable at bitDepth.
// Only 16, 24 and 32 bit signed PCM are valid; other depths return 0.
func PCMScale(bitDepth int) int {
	switch bitDepth {
	case 16:
		return math.MaxInt16
	case 24:
		return 1<<23 - 1
	case 32:
		return math.MaxInt32
	default:
		return 0
	}
}

// FloatToPCM quantizes x in [-1,1] to a signed integer sample at bitDepth.
// The value is rounded half away from zero and clamped to full scale, so
// +1.0 and -1.0 map to the symmetric range ends.
func FloatToPCM(x float64, bitDepth int) int {
	scale := PCMScale(bitDepth)
	if scale == 0 {
		return 0
	}

	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	} else if math.IsNaN(x) {
		return 0
	}

	return int(math.Round(x * float64(scale)))
}

// PCMToFloat maps a signed integer sample at bitDepth back to [-1,1].
// It is the inverse of FloatToPCM within half a quantization step.
func PCMToFloat(v int, bitDepth int) float64 {
	scale := PCMScale(bitDepth)
	if scale == 0 {
		return 0
	}

	f := float64(v) / float64(scale)
	if f < -1 {
		// The most negative code (e.g. -32768) sits one step past -1.
		return -1
	}

	return f
}

// Float32ToInt16 quantizes a streamed float32 sample to 16-bit PCM.
func Float32ToInt16(x float32) int16 {
	return int16(FloatToPCM(float64(x), 16))
}
