// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"fmt"
	"math"
	"strings"

	"github.com/ik5/healtone/audio"
)

// HarmonicProfile selects the fixed set of overtones added to a tone.
type HarmonicProfile int

const (
	None HarmonicProfile = iota
	// Warm adds even harmonics (2nd, 4th, 6th).
	Warm
	// Bright adds odd harmonics (3rd, 5th, 7th).
	Bright
	// Natural adds harmonics 2 through 8 with a 1/n^1.5 rolloff.
	Natural
)

// Partial is one overtone: a multiple of the fundamental and its amplitude
// relative to the fundamental.
type Partial struct {
	Multiple  int
	Amplitude float64
}

var profileNames = [...]string{
	None:    "none",
	Warm:    "warm",
	Bright:  "bright",
	Natural: "natural",
}

var profileTables = [...][]Partial{
	None:    nil,
	Warm:    {{2, 0.5}, {4, 0.25}, {6, 0.125}},
	Bright:  {{3, 0.33}, {5, 0.2}, {7, 0.14}},
	Natural: naturalPartials(),
}

func naturalPartials() []Partial {
	out := make([]Partial, 0, 7)
	for n := 2; n <= 8; n++ {
		out = append(out, Partial{Multiple: n, Amplitude: 1 / math.Pow(float64(n), 1.5)})
	}

	return out
}

func (p HarmonicProfile) valid() bool {
	return p >= None && int(p) < len(profileTables)
}

func (p HarmonicProfile) String() string {
	if !p.valid() {
		return fmt.Sprintf("HarmonicProfile(%d)", int(p))
	}
	return profileNames[p]
}

// Partials returns a copy of the overtone table, without the fundamental.
func (p HarmonicProfile) Partials() []Partial {
	if !p.valid() {
		return nil
	}

	return append([]Partial(nil), profileTables[p]...)
}

// ParseHarmonicProfile accepts the names printed by String.
func ParseHarmonicProfile(s string) (HarmonicProfile, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return None, nil
	}
	for i, n := range profileNames {
		if n == name {
			return HarmonicProfile(i), nil
		}
	}

	return None, audio.InvalidParameter("unknown harmonic profile %q", s)
}

// MarshalText and UnmarshalText let profiles appear by name in YAML.
func (p HarmonicProfile) MarshalText() ([]byte, error) {
	if !p.valid() {
		return nil, audio.InvalidParameter("unknown harmonic profile %d", int(p))
	}
	return []byte(p.String()), nil
}

func (p *HarmonicProfile) UnmarshalText(text []byte) error {
	v, err := ParseHarmonicProfile(string(text))
	if err != nil {
		return err
	}
	*p = v

	return nil
}

// audible drops partials at or above Nyquist; they would alias.
func audible(partials []Partial, frequencyHz float64, sampleRate int) []Partial {
	nyquist := float64(sampleRate) / 2
	out := partials[:0:0]
	for _, p := range partials {
		if float64(p.Multiple)*frequencyHz < nyquist {
			out = append(out, p)
		}
	}

	return out
}

// peakGridSize is the resolution used to find the peak of a waveform shape.
const peakGridSize = 1 << 16

// shapePeak returns the peak of sin(x) + sum(a*sin(m*x)) over one period.
// The shape does not depend on frequency, so this is the rescale factor for
// every tone sharing the partial set.
func shapePeak(partials []Partial) float64 {
	if len(partials) == 0 {
		return 1
	}

	peak := 0.0
	for i := range peakGridSize {
		x := 2 * math.Pi * float64(i) / peakGridSize
		v := math.Sin(x)
		for _, p := range partials {
			v += p.Amplitude * math.Sin(float64(p.Multiple)*x)
		}
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}

	return peak
}
