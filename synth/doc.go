// SPDX-License-Identifier: EPL-2.0

// Package synth renders the raw signals: sine tones with optional overtones,
// binaural pairs, isochronic pulses and noise beds.
//
// # Tones
//
// Generate produces one mono tone. The harmonic profile is a fixed table of
// overtones; after adding them the waveform is rescaled so its peak is 1.0
// again:
//
//	buf, err := synth.Generate(432, 60, 48000, synth.Warm)
//
// The sample count is round(duration * sampleRate).
//
// # Binaural and isochronic
//
// Binaural returns a stereo buffer whose ears differ only in frequency.
// Isochronic multiplies a carrier by a 50% duty gate at the pulse rate; the
// gate edges are 5 ms raised-cosine ramps so no clicks are added.
//
// # Noise
//
// WhiteNoise, PinkNoise and BrownNoise are seeded and reproducible. Layer
// mixes a noise bed under any tone at a relative level.
//
// # Requests
//
// ToneSpec bundles mode, frequencies, duration, harmonics and quality tier;
// Render dispatches it to the right generator.
package synth
