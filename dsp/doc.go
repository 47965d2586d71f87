// SPDX-License-Identifier: EPL-2.0

// Package dsp holds the level stage of the render pipeline: fades at the
// buffer edges, peak normalization to a dBFS target, a peak ceiling for
// mixes and plain gain.
//
// Every function takes an *audio.Buffer and returns a new one; inputs are
// never modified.
//
// # Fades
//
// Fade multiplies the first and last seconds of every channel by a ramp
// from 0 to 1 and back. The first and the last sample of the result are
// exactly zero, which removes clicks at file boundaries:
//
//	faded, err := dsp.Fade(buf, dsp.DefaultFade)
//
// When two fades would overlap they are shortened to half the buffer each.
//
// # Normalization
//
// Normalize applies one factor to the whole buffer so its peak lands on the
// target level. The factor is shared by all channels, keeping the balance of
// a binaural pair intact:
//
//	out, err := dsp.Normalize(buf, dsp.DefaultPeakDBFS) // -0.1 dBFS
//
// Limit only scales down, for sums that may exceed full scale.
package dsp
