// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/ik5/healtone/audio"
)

// NoiseKind selects a noise color for masking layers.
type NoiseKind int

const (
	NoNoise NoiseKind = iota
	White
	Pink
	Brown
)

var noiseNames = [...]string{
	NoNoise: "none",
	White:   "white",
	Pink:    "pink",
	Brown:   "brown",
}

func (k NoiseKind) String() string {
	if k < NoNoise || int(k) >= len(noiseNames) {
		return fmt.Sprintf("NoiseKind(%d)", int(k))
	}
	return noiseNames[k]
}

func ParseNoiseKind(s string) (NoiseKind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return NoNoise, nil
	}
	for i, n := range noiseNames {
		if n == name {
			return NoiseKind(i), nil
		}
	}

	return NoNoise, audio.InvalidParameter("unknown noise kind %q", s)
}

func (k NoiseKind) MarshalText() ([]byte, error) {
	if k < NoNoise || int(k) >= len(noiseNames) {
		return nil, audio.InvalidParameter("unknown noise kind %d", int(k))
	}
	return []byte(noiseNames[k]), nil
}

func (k *NoiseKind) UnmarshalText(text []byte) error {
	v, err := ParseNoiseKind(string(text))
	if err != nil {
		return err
	}
	*k = v

	return nil
}

// Noise renders mono noise of the given kind, peak-normalized to 1.0.
// The same seed always yields the same samples.
func Noise(kind NoiseKind, durationS float64, sampleRate int, seed int64) (*audio.Buffer, error) {
	switch kind {
	case White:
		return WhiteNoise(durationS, sampleRate, seed)
	case Pink:
		return PinkNoise(durationS, sampleRate, seed)
	case Brown:
		return BrownNoise(durationS, sampleRate, seed)
	default:
		return nil, audio.InvalidParameter("cannot render noise kind %s", kind)
	}
}

func noiseBuffer(durationS float64, sampleRate int) (*audio.Buffer, error) {
	if !(durationS > 0) || math.IsInf(durationS, 0) {
		return nil, audio.InvalidParameter("duration must be > 0 s: %v", durationS)
	}
	if sampleRate <= 0 {
		return nil, audio.InvalidParameter("sample rate must be > 0: %d", sampleRate)
	}

	return audio.NewBuffer(sampleRate, 1, SampleCount(durationS, sampleRate))
}

// WhiteNoise is uniformly distributed in [-1, 1).
func WhiteNoise(durationS float64, sampleRate int, seed int64) (*audio.Buffer, error) {
	buf, err := noiseBuffer(durationS, sampleRate)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	for i := range buf.Data {
		buf.Data[i] = rng.Float64()*2 - 1
	}

	return buf, nil
}

// PinkNoise shapes uniform white noise with Paul Kellet's three-pole
// "economy" filter, a -3 dB/octave approximation accurate to about 0.25 dB
// above 9 Hz at 44.1 kHz.
func PinkNoise(durationS float64, sampleRate int, seed int64) (*audio.Buffer, error) {
	buf, err := WhiteNoise(durationS, sampleRate, seed)
	if err != nil {
		return nil, err
	}

	var b0, b1, b2 float64
	for i, w := range buf.Data {
		b0 = 0.99765*b0 + w*0.0990460
		b1 = 0.96300*b1 + w*0.2965164
		b2 = 0.57000*b2 + w*1.0526913
		buf.Data[i] = b0 + b1 + b2 + w*0.1848
	}

	return peakNormalize(buf), nil
}

// BrownNoise integrates white noise with a slight leak so it cannot drift
// away from zero over long renders.
func BrownNoise(durationS float64, sampleRate int, seed int64) (*audio.Buffer, error) {
	buf, err := WhiteNoise(durationS, sampleRate, seed)
	if err != nil {
		return nil, err
	}

	y := 0.0
	for i, w := range buf.Data {
		y = 0.998*y + 0.02*w
		buf.Data[i] = y
	}

	return peakNormalize(buf), nil
}

func peakNormalize(buf *audio.Buffer) *audio.Buffer {
	peak := buf.Peak()
	if peak == 0 {
		return buf
	}

	for i := range buf.Data {
		buf.Data[i] /= peak
	}

	return buf
}

// Layer blends a noise bed under a tone: (1-level)*tone + level*noise.
// Mono noise is copied into every tone channel; it is zero-padded or cut to
// the tone's length.
func Layer(tone, noise *audio.Buffer, level float64) (*audio.Buffer, error) {
	if err := tone.Validate(); err != nil {
		return nil, fmt.Errorf("tone: %w", err)
	}
	if err := noise.Validate(); err != nil {
		return nil, fmt.Errorf("noise: %w", err)
	}
	if level < 0 || level > 1 || math.IsNaN(level) {
		return nil, audio.InvalidParameter("noise level must be in [0,1]: %v", level)
	}
	if tone.SampleRate != noise.SampleRate {
		return nil, audio.InvalidParameter("sample rates differ: tone %d, noise %d", tone.SampleRate, noise.SampleRate)
	}
	if noise.Channels != 1 && noise.Channels != tone.Channels {
		return nil, audio.InvalidParameter("cannot layer %d-channel noise under %d-channel tone",
			noise.Channels, tone.Channels)
	}

	out := tone.Clone()
	noiseFrames := noise.Frames()
	for f := range out.Frames() {
		for c := range out.Channels {
			i := f*out.Channels + c
			n := 0.0
			if f < noiseFrames {
				n = noise.Data[f*noise.Channels+min(c, noise.Channels-1)]
			}
			out.Data[i] = (1-level)*out.Data[i] + level*n
		}
	}

	return out, nil
}
