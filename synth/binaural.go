// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"fmt"
	"math"

	"github.com/ik5/healtone/audio"
)

// Binaural renders a stereo pair: carrierHz on the left, carrierHz+beatHz on
// the right. Both ears start at phase zero with the same amplitude scale and
// carry the same overtones: partials are kept only when they stay below
// Nyquist on the higher right ear.
func Binaural(carrierHz, beatHz, durationS float64, sampleRate int, profile HarmonicProfile) (*audio.Buffer, error) {
	if beatHz < 0 || math.IsNaN(beatHz) {
		return nil, audio.InvalidParameter("beat must be >= 0 Hz: %v", beatHz)
	}
	if !(carrierHz+beatHz > 0) {
		return nil, audio.InvalidParameter("right ear frequency must be > 0 Hz: %v", carrierHz+beatHz)
	}
	if err := checkTone(carrierHz, durationS, sampleRate); err != nil {
		return nil, fmt.Errorf("left channel: %w", err)
	}
	if err := checkTone(carrierHz+beatHz, durationS, sampleRate); err != nil {
		return nil, fmt.Errorf("right channel: %w", err)
	}
	if !profile.valid() {
		return nil, audio.InvalidParameter("unknown harmonic profile %d", int(profile))
	}

	partials := audible(profileTables[profile], carrierHz+beatHz, sampleRate)

	left, err := generate(carrierHz, durationS, sampleRate, partials)
	if err != nil {
		return nil, fmt.Errorf("left channel: %w", err)
	}
	right, err := generate(carrierHz+beatHz, durationS, sampleRate, partials)
	if err != nil {
		return nil, fmt.Errorf("right channel: %w", err)
	}

	return audio.Interleave(sampleRate, left.Data, right.Data)
}

// DefaultLayerWeight is the share of the base tone in a layered render.
const DefaultLayerWeight = 0.6

// Layered blends a mono base tone into both ears of a binaural pair:
// out = weight*base + (1-weight)*pair.
func Layered(base, pair *audio.Buffer, weight float64) (*audio.Buffer, error) {
	if err := base.Validate(); err != nil {
		return nil, fmt.Errorf("base: %w", err)
	}
	if err := pair.Validate(); err != nil {
		return nil, fmt.Errorf("pair: %w", err)
	}
	if base.Channels != 1 || pair.Channels != 2 {
		return nil, audio.InvalidParameter("layered wants mono base and stereo pair, got %d and %d channels",
			base.Channels, pair.Channels)
	}
	if base.SampleRate != pair.SampleRate {
		return nil, audio.InvalidParameter("sample rates differ: %d and %d", base.SampleRate, pair.SampleRate)
	}
	if weight < 0 || weight > 1 || math.IsNaN(weight) {
		return nil, audio.InvalidParameter("layer weight must be in [0,1]: %v", weight)
	}

	frames := max(base.Frames(), pair.Frames())
	out, err := audio.NewBuffer(pair.SampleRate, 2, frames)
	if err != nil {
		return nil, err
	}

	for f := range frames {
		b := 0.0
		if f < len(base.Data) {
			b = base.Data[f]
		}
		for c := range 2 {
			p := 0.0
			if i := f*2 + c; i < len(pair.Data) {
				p = pair.Data[i]
			}
			out.Data[f*2+c] = weight*b + (1-weight)*p
		}
	}

	return out, nil
}
