// SPDX-License-Identifier: EPL-2.0

package audiotest

import "math"

// Amplitude estimates the amplitude of the frequency component at freqHz
// with a Goertzel filter over the whole slice. A full-scale sine that
// completes a whole number of cycles in the slice reads 1.0.
func Amplitude(samples []float64, freqHz float64, sampleRate int) float64 {
	if len(samples) == 0 {
		return 0
	}

	coeff := 2 * math.Cos(2*math.Pi*freqHz/float64(sampleRate))
	var s0, s1 float64
	for _, x := range samples {
		s := x + coeff*s0 - s1
		s1 = s0
		s0 = s
	}

	power := s0*s0 + s1*s1 - coeff*s0*s1
	if power <= 0 {
		return 0
	}

	return 2 * math.Sqrt(power) / float64(len(samples))
}

// DominantFrequency scans [loHz, hiHz] in stepHz increments and returns the
// frequency with the largest Amplitude.
func DominantFrequency(samples []float64, sampleRate int, loHz, hiHz, stepHz float64) float64 {
	best, bestAmp := loHz, -1.0
	for f := loHz; f <= hiHz; f += stepHz {
		if a := Amplitude(samples, f, sampleRate); a > bestAmp {
			best, bestAmp = f, a
		}
	}

	return best
}

// DB converts an amplitude ratio to decibels.
func DB(ratio float64) float64 {
	if ratio <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(ratio)
}
