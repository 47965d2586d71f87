// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"fmt"
	"math"
	"strings"

	"github.com/ik5/healtone/audio"
)

// Quality maps an output tier to a sample rate and PCM bit depth.
type Quality int

const (
	Standard Quality = iota // 44100 Hz, 16-bit
	High                    // 48000 Hz, 24-bit
	Pro                     // 96000 Hz, 32-bit
)

var qualityTiers = [...]struct {
	name       string
	sampleRate int
	bitDepth   int
}{
	Standard: {"standard", 44100, 16},
	High:     {"high", 48000, 24},
	Pro:      {"pro", 96000, 32},
}

func (q Quality) valid() bool { return q >= Standard && int(q) < len(qualityTiers) }

func (q Quality) String() string {
	if !q.valid() {
		return fmt.Sprintf("Quality(%d)", int(q))
	}
	return qualityTiers[q].name
}

func (q Quality) SampleRate() int {
	if !q.valid() {
		return 0
	}
	return qualityTiers[q].sampleRate
}

func (q Quality) BitDepth() int {
	if !q.valid() {
		return 0
	}
	return qualityTiers[q].bitDepth
}

func ParseQuality(s string) (Quality, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, t := range qualityTiers {
		if t.name == name {
			return Quality(i), nil
		}
	}

	return Standard, audio.InvalidParameter("unknown quality tier %q", s)
}

func (q Quality) MarshalText() ([]byte, error) {
	if !q.valid() {
		return nil, audio.InvalidParameter("unknown quality tier %d", int(q))
	}
	return []byte(q.String()), nil
}

func (q *Quality) UnmarshalText(text []byte) error {
	v, err := ParseQuality(string(text))
	if err != nil {
		return err
	}
	*q = v

	return nil
}

// Mode selects how Beat is applied to a ToneSpec.
type Mode int

const (
	// Pure ignores Beat.
	Pure Mode = iota
	// BinauralMode puts Frequency left and Frequency+Beat right.
	BinauralMode
	// IsochronicMode pulses Frequency Beat times a second.
	IsochronicMode
)

var modeNames = [...]string{Pure: "pure", BinauralMode: "binaural", IsochronicMode: "isochronic"}

func (m Mode) String() string {
	if m < Pure || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode accepts "pure", "binaural" or "isochronic".
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range modeNames {
		if n == name {
			return Mode(i), nil
		}
	}

	return Pure, audio.InvalidParameter("unknown mode %q", s)
}

// ToneSpec describes one tone request. Build it with NewToneSpec; the value
// is not changed afterwards.
type ToneSpec struct {
	Mode      Mode
	Frequency float64
	Beat      float64
	Duration  float64
	Harmonics HarmonicProfile
	Quality   Quality
}

// NewToneSpec validates and returns a ToneSpec.
func NewToneSpec(mode Mode, frequencyHz, beatHz, durationS float64, harmonics HarmonicProfile, quality Quality) (ToneSpec, error) {
	s := ToneSpec{
		Mode:      mode,
		Frequency: frequencyHz,
		Beat:      beatHz,
		Duration:  durationS,
		Harmonics: harmonics,
		Quality:   quality,
	}

	return s, s.Validate()
}

func (s ToneSpec) Validate() error {
	if !s.Quality.valid() {
		return audio.InvalidParameter("unknown quality tier %d", int(s.Quality))
	}
	if !s.Harmonics.valid() {
		return audio.InvalidParameter("unknown harmonic profile %d", int(s.Harmonics))
	}
	if err := checkTone(s.Frequency, s.Duration, s.Quality.SampleRate()); err != nil {
		return err
	}

	switch s.Mode {
	case Pure:
	case BinauralMode:
		if s.Beat < 0 || math.IsNaN(s.Beat) {
			return audio.InvalidParameter("beat must be >= 0 Hz: %v", s.Beat)
		}
	case IsochronicMode:
		if !(s.Beat > 0) {
			return audio.InvalidParameter("pulse must be > 0 Hz: %v", s.Beat)
		}
	default:
		return audio.InvalidParameter("unknown mode %d", int(s.Mode))
	}

	return nil
}

func (s ToneSpec) SampleRate() int { return s.Quality.SampleRate() }

// Render synthesizes the raw tone for s: no fades, no normalization.
func Render(s ToneSpec) (*audio.Buffer, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	var (
		buf *audio.Buffer
		err error
	)
	rate := s.SampleRate()

	switch s.Mode {
	case BinauralMode:
		buf, err = Binaural(s.Frequency, s.Beat, s.Duration, rate, s.Harmonics)
	case IsochronicMode:
		buf, err = IsochronicWith(s.Frequency, s.Beat, s.Duration, rate, IsochronicOptions{Profile: s.Harmonics})
	default:
		buf, err = Generate(s.Frequency, s.Duration, rate, s.Harmonics)
	}
	if err != nil {
		return nil, err
	}
	buf.BitDepth = s.Quality.BitDepth()

	return buf, nil
}
