// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"math"

	"github.com/ik5/healtone/audio"
)

// SampleCount is the number of frames for durationS at sampleRate.
func SampleCount(durationS float64, sampleRate int) int {
	return int(math.Round(durationS * float64(sampleRate)))
}

func checkTone(frequencyHz, durationS float64, sampleRate int) error {
	switch {
	case !(frequencyHz > 0) || math.IsInf(frequencyHz, 0):
		return audio.InvalidParameter("frequency must be > 0 Hz: %v", frequencyHz)
	case !(durationS > 0) || math.IsInf(durationS, 0):
		return audio.InvalidParameter("duration must be > 0 s: %v", durationS)
	case sampleRate <= 0:
		return audio.InvalidParameter("sample rate must be > 0: %d", sampleRate)
	case SampleCount(durationS, sampleRate) == 0:
		return audio.InvalidParameter("duration %vs is shorter than one sample at %d Hz", durationS, sampleRate)
	}

	return nil
}

// Generate renders a mono sine at frequencyHz with the overtones of profile.
// A plain sine has amplitude 1.0; with overtones the sum is rescaled so its
// peak is 1.0 again.
//
// durationS must cover at least one frame at sampleRate, otherwise the
// call fails with audio.ErrInvalidParameter.
func Generate(frequencyHz, durationS float64, sampleRate int, profile HarmonicProfile) (*audio.Buffer, error) {
	if err := checkTone(frequencyHz, durationS, sampleRate); err != nil {
		return nil, err
	}
	if !profile.valid() {
		return nil, audio.InvalidParameter("unknown harmonic profile %d", int(profile))
	}

	return generate(frequencyHz, durationS, sampleRate, audible(profileTables[profile], frequencyHz, sampleRate))
}

// generate renders the fundamental plus partials, scaled by the peak of
// their shape. Callers have checked the arguments.
func generate(frequencyHz, durationS float64, sampleRate int, partials []Partial) (*audio.Buffer, error) {
	buf, err := audio.NewBuffer(sampleRate, 1, SampleCount(durationS, sampleRate))
	if err != nil {
		return nil, err
	}

	step := 2 * math.Pi * frequencyHz / float64(sampleRate)
	norm := 1 / shapePeak(partials)

	for i := range buf.Data {
		x := step * float64(i)
		v := math.Sin(x)
		for _, p := range partials {
			v += p.Amplitude * math.Sin(float64(p.Multiple)*x)
		}
		buf.Data[i] = v * norm
	}

	return buf, nil
}
