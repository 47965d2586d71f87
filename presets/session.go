// SPDX-License-Identifier: EPL-2.0

package presets

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ik5/healtone/audio"
	"github.com/ik5/healtone/synth"
)

// SessionKind selects how a session is rendered.
type SessionKind string

const (
	// BinauralSession is a plain binaural pair.
	BinauralSession SessionKind = "binaural"
	// LayeredSession puts a mono base tone over a binaural pair.
	LayeredSession SessionKind = "layered"
)

// Session is a ready-to-render listening program.
type Session struct {
	Name        string                `yaml:"name"`
	Description string                `yaml:"description,omitempty"`
	Kind        SessionKind           `yaml:"type"`
	Base        float64               `yaml:"base_freq,omitempty"` // layered only
	Carrier     float64               `yaml:"carrier"`
	Beat        float64               `yaml:"beat"`
	Duration    float64               `yaml:"duration"` // seconds
	Harmonics   synth.HarmonicProfile `yaml:"harmonics,omitempty"`
}

// Validate checks the fields the renderer depends on.
func (s Session) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return audio.InvalidParameter("session has no name")
	}
	switch s.Kind {
	case BinauralSession:
	case LayeredSession:
		if !(s.Base > 0) {
			return audio.InvalidParameter("session %q: base_freq must be > 0: %v", s.Name, s.Base)
		}
	default:
		return audio.InvalidParameter("session %q: unknown type %q", s.Name, s.Kind)
	}
	if !(s.Carrier > 0) || math.IsInf(s.Carrier, 0) {
		return audio.InvalidParameter("session %q: carrier must be > 0: %v", s.Name, s.Carrier)
	}
	if s.Beat < 0 || math.IsNaN(s.Beat) {
		return audio.InvalidParameter("session %q: beat must be >= 0: %v", s.Name, s.Beat)
	}
	if !(s.Duration > 0) || math.IsInf(s.Duration, 0) {
		return audio.InvalidParameter("session %q: duration must be > 0: %v", s.Name, s.Duration)
	}

	return nil
}

// Sessions is an ordered set of sessions with unique names.
type Sessions []Session

// Find returns the first session called name, ignoring case.
func (ss Sessions) Find(name string) (Session, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, s := range ss {
		if strings.ToLower(s.Name) == key {
			return s, nil
		}
	}

	return Session{}, audio.InvalidParameter("unknown session %q", name)
}

// Names lists session names in order.
func (ss Sessions) Names() []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = s.Name
	}

	return out
}

var sessions = Sessions{
	{
		Name:        "morning-focus",
		Description: "Alpha-beta transition for morning alertness",
		Kind:        BinauralSession,
		Carrier:     432, Beat: 12, Duration: 900,
		Harmonics: synth.Warm,
	},
	{
		Name:        "deep-meditation",
		Description: "Theta state for deep meditation",
		Kind:        BinauralSession,
		Carrier:     432, Beat: 6, Duration: 1200,
		Harmonics: synth.Warm,
	},
	{
		Name:        "sleep-induction",
		Description: "Delta waves for sleep onset",
		Kind:        BinauralSession,
		Carrier:     200, Beat: 2, Duration: 1800,
		Harmonics: synth.None,
	},
	{
		Name:        "stress-relief",
		Description: "528 Hz with alpha binaural for anxiety reduction",
		Kind:        LayeredSession,
		Base:        528, Carrier: 432, Beat: 10, Duration: 600,
		Harmonics: synth.Warm,
	},
	{
		Name:        "creativity-boost",
		Description: "Theta-alpha border for creative flow",
		Kind:        BinauralSession,
		Carrier:     432, Beat: 7.83, Duration: 900,
		Harmonics: synth.Warm,
	},
	{
		Name:        "heart-coherence",
		Description: "639 Hz heart chakra with alpha",
		Kind:        LayeredSession,
		Base:        639, Carrier: 432, Beat: 10, Duration: 600,
		Harmonics: synth.Warm,
	},
}

// BuiltinSessions returns a copy of the curated sessions.
func BuiltinSessions() Sessions {
	return append(Sessions(nil), sessions...)
}

type sessionFile struct {
	Sessions Sessions `yaml:"sessions"`
}

// LoadSessions reads a YAML document with a top-level "sessions" list.
// Every entry is validated and names must be unique within the file.
func LoadSessions(r io.Reader) (Sessions, error) {
	var file sessionFile

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return Sessions{}, nil
		}
		return nil, audio.InvalidParameter("session file: %v", err)
	}

	if err := file.Sessions.validate(); err != nil {
		return nil, err
	}

	return file.Sessions, nil
}

func (ss Sessions) validate() error {
	seen := make(map[string]bool, len(ss))
	for i, s := range ss {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("session %d: %w", i, err)
		}
		key := strings.ToLower(s.Name)
		if seen[key] {
			return audio.InvalidParameter("duplicate session %q", s.Name)
		}
		seen[key] = true
	}

	return nil
}
