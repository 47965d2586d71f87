// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"fmt"
	"strings"

	"github.com/ik5/healtone/audio"
)

// Level names one row of the fixed mix table.
type Level int

const (
	Dominant        Level = iota // tone in front of the music
	Balanced                     // music slightly ahead
	Subtle                       // music at full level
	Subliminal                   // tone barely above the noise floor
	BinauralOptimal              // tuned for headphone beats
)

// Spec is the attenuation applied to each input before summing.
type Spec struct {
	MusicDB     float64
	FrequencyDB float64
}

var levels = [...]struct {
	name string
	spec Spec
}{
	Dominant:        {"dominant", Spec{MusicDB: -6, FrequencyDB: -3}},
	Balanced:        {"balanced", Spec{MusicDB: -3, FrequencyDB: -6}},
	Subtle:          {"subtle", Spec{MusicDB: 0, FrequencyDB: -12}},
	Subliminal:      {"subliminal", Spec{MusicDB: 0, FrequencyDB: -24}},
	BinauralOptimal: {"binaural_optimal", Spec{MusicDB: -3, FrequencyDB: -9}},
}

func (l Level) valid() bool { return l >= Dominant && int(l) < len(levels) }

func (l Level) String() string {
	if !l.valid() {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return levels[l].name
}

// Spec returns the dB pair for l. Unknown levels return the zero Spec.
func (l Level) Spec() Spec {
	if !l.valid() {
		return Spec{}
	}
	return levels[l].spec
}

// Levels lists all table entries in table order.
func Levels() []Level {
	out := make([]Level, len(levels))
	for i := range levels {
		out[i] = Level(i)
	}

	return out
}

// ParseLevel accepts the table names; "-" is treated as "_".
func ParseLevel(s string) (Level, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for i, l := range levels {
		if l.name == name {
			return Level(i), nil
		}
	}

	return Balanced, audio.InvalidParameter("unknown mix level %q", s)
}

func (l Level) MarshalText() ([]byte, error) {
	if !l.valid() {
		return nil, audio.InvalidParameter("unknown mix level %d", int(l))
	}
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(text []byte) error {
	v, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = v

	return nil
}
