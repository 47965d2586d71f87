// SPDX-License-Identifier: EPL-2.0

// Package mix places a generated tone under or over a music track.
//
// The relative loudness comes from a fixed table rather than free dB values,
// so two renders at the same Level always sound alike:
//
//	level       music   tone
//	dominant     -6 dB  -3 dB
//	balanced     -3 dB  -6 dB
//	subtle        0 dB -12 dB
//	subliminal    0 dB -24 dB
//	binaural_optimal -3 dB -9 dB
//
// Mix reconciles the inputs before summing: the music is resampled to the
// tone's rate, a mono side is duplicated into stereo and the shorter side is
// padded with silence. Nothing is looped or cut.
//
// The result is never boosted. Only a sum that would clip is scaled down to
// CeilingDBFS, so the table attenuation is what ends up in the file.
package mix
