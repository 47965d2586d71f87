// SPDX-License-Identifier: EPL-2.0

package presets

import (
	"strings"

	"github.com/ik5/healtone/audio"
)

// Brainwave is a binaural starting point for one EEG band.
type Brainwave struct {
	Name    string
	Beat    float64 // Hz, the perceived beat
	Carrier float64 // Hz, the left ear tone
	MinHz   float64 // band range
	MaxHz   float64
	Effect  string
}

var brainwaves = []Brainwave{
	{"delta", 2, 200, 0.5, 4, "Deep sleep, healing, regeneration"},
	{"theta", 6, 300, 4, 8, "Meditation, creativity, REM sleep"},
	{"alpha", 10, 400, 8, 13, "Relaxation, calm focus, stress relief"},
	{"beta", 18, 400, 13, 30, "Focus, alertness, concentration"},
	{"gamma", 40, 300, 30, 100, "Peak cognition, insight, memory"},
	{"schumann", 7.83, 432, 7.83, 7.83, "Earth grounding, theta state"},
}

// LookupBrainwave finds a preset by case-insensitive name.
func LookupBrainwave(name string) (Brainwave, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, b := range brainwaves {
		if b.Name == key {
			return b, nil
		}
	}

	return Brainwave{}, audio.InvalidParameter("unknown brainwave preset %q", name)
}

// Brainwaves returns the table in band order.
func Brainwaves() []Brainwave {
	return append([]Brainwave(nil), brainwaves...)
}

// Solfeggio is one named solfeggio frequency.
type Solfeggio struct {
	Frequency float64
	Name      string
	Effect    string
}

var solfeggio = []Solfeggio{
	{174, "Foundation", "Pain reduction, security"},
	{285, "Quantum", "Tissue healing, safety"},
	{396, "Liberation", "Release fear and guilt"},
	{417, "Change", "Facilitate change, clear trauma"},
	{528, "Love/Miracle", "DNA repair, stress reduction"},
	{639, "Connection", "Relationships, communication"},
	{741, "Awakening", "Intuition, expression"},
	{852, "Intuition", "Spiritual order"},
	{963, "Divine", "Pineal activation, oneness"},
}

// LookupSolfeggio finds the entry for an exact frequency.
func LookupSolfeggio(hz float64) (Solfeggio, error) {
	for _, s := range solfeggio {
		if s.Frequency == hz {
			return s, nil
		}
	}

	return Solfeggio{}, audio.InvalidParameter("%v Hz is not a solfeggio frequency", hz)
}

// SolfeggioTones returns the table in ascending frequency.
func SolfeggioTones() []Solfeggio {
	return append([]Solfeggio(nil), solfeggio...)
}

// ChakraSequence is root to crown.
func ChakraSequence() []float64 {
	return []float64{396, 417, 528, 639, 741, 852, 963}
}
