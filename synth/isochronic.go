// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"math"

	"github.com/ik5/healtone/audio"
)

const (
	// DefaultDuty is the fraction of each pulse period the tone is on.
	DefaultDuty = 0.5
	// DefaultRamp is the length of each gate edge in seconds.
	DefaultRamp = 0.005
)

// IsochronicOptions tunes the pulse gate. Zero values select the defaults.
type IsochronicOptions struct {
	Duty    float64
	Ramp    float64
	Profile HarmonicProfile
}

// Isochronic renders a mono carrier pulsed on and off pulseHz times a second.
func Isochronic(frequencyHz, pulseHz, durationS float64, sampleRate int) (*audio.Buffer, error) {
	return IsochronicWith(frequencyHz, pulseHz, durationS, sampleRate, IsochronicOptions{})
}

// IsochronicWith is Isochronic with an explicit gate shape and carrier profile.
func IsochronicWith(frequencyHz, pulseHz, durationS float64, sampleRate int, opts IsochronicOptions) (*audio.Buffer, error) {
	if !(pulseHz > 0) || math.IsInf(pulseHz, 0) {
		return nil, audio.InvalidParameter("pulse must be > 0 Hz: %v", pulseHz)
	}

	duty := opts.Duty
	if duty == 0 {
		duty = DefaultDuty
	}
	if !(duty > 0 && duty < 1) {
		return nil, audio.InvalidParameter("duty must be in (0,1): %v", opts.Duty)
	}

	rampS := opts.Ramp
	if rampS == 0 {
		rampS = DefaultRamp
	}
	if !(rampS > 0) {
		return nil, audio.InvalidParameter("ramp must be > 0 s: %v", opts.Ramp)
	}

	carrier, err := Generate(frequencyHz, durationS, sampleRate, opts.Profile)
	if err != nil {
		return nil, err
	}

	g := newGate(pulseHz, duty, rampS)
	rate := float64(sampleRate)
	for i := range carrier.Data {
		// Reduce before dividing so whole periods land exactly on phase 0.
		phase := math.Mod(float64(i)*pulseHz, rate) / rate
		carrier.Data[i] *= g.at(phase)
	}

	return carrier, nil
}

// gate is one period of the pulse envelope over phase [0,1): a raised-cosine
// rise, a flat top, a raised-cosine fall, then silence.
type gate struct {
	on   float64 // phase where the tone is fully off again
	ramp float64 // edge length in phase units
}

func newGate(pulseHz, duty, rampS float64) gate {
	r := rampS * pulseHz
	// Each edge fits inside half of the on and of the off segment.
	r = min(r, duty/2, (1-duty)/2)

	return gate{on: duty, ramp: r}
}

func (g gate) at(phase float64) float64 {
	switch {
	case phase < g.ramp:
		return 0.5 * (1 - math.Cos(math.Pi*phase/g.ramp))
	case phase < g.on-g.ramp:
		return 1
	case phase < g.on:
		return 0.5 * (1 - math.Cos(math.Pi*(g.on-phase)/g.ramp))
	default:
		return 0
	}
}
