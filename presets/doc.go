// SPDX-License-Identifier: EPL-2.0

// Package presets holds the fixed lookup tables used to pick tone
// parameters by name: brainwave bands, solfeggio tones, the chakra sequence
// and curated listening sessions.
//
// The tables are package values that are never handed out directly. Every
// accessor returns a copy, so callers cannot change what another caller
// sees. Additional sessions can be read from YAML with LoadSessions.
package presets
