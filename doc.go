// SPDX-License-Identifier: EPL-2.0

// Package healtone renders frequency-healing audio: pure tones, binaural
// beats, isochronic pulses and noise beds, optionally mixed under a music
// track, and writes them as lossless WAV.
//
// The work is done by the sub-packages; this package wires them into the
// usual pipeline:
//
//	synth (generate, modulate) -> dsp (fade, normalize) -> mix -> formats/wav
//
// # Supported Formats
//
// Decoding by file extension:
//   - WAV and AIFF, 16/24/32-bit PCM, via formats/wav and formats/aiff
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - anything else through ffmpeg, if installed (formats/external)
//
// Output is always integer PCM WAV at 16, 24 or 32 bits.
//
// # Quick Start
//
// A ten minute 432 Hz tone with warm overtones at 48 kHz / 24-bit:
//
//	buf, err := healtone.RenderTone(432, 600, synth.Warm, synth.High, healtone.DefaultRenderOptions())
//	if err != nil {
//	    return err
//	}
//	err = healtone.Encode(buf, "432hz.wav", 0)
//
// A theta binaural beat from the preset table:
//
//	buf, err := healtone.RenderBrainwave("theta", 300, synth.Standard, healtone.DefaultRenderOptions())
//
// # Mixing
//
// MixFile decodes a track, renders a tone of the same length and blends the
// two at one of the fixed mix levels:
//
//	_, err := healtone.MixFile(ctx, healtone.MixRequest{
//	    MusicPath: "ambient.mp3",
//	    OutPath:   "ambient_528.wav",
//	    Tone:      synth.ToneSpec{Frequency: 528, Quality: synth.High},
//	    Level:     mix.Subtle,
//	    Fade:      dsp.DefaultFade,
//	})
//
// # Batches
//
// RenderBatch renders independent requests in parallel; every request owns
// its buffers and results come back in request order.
//
// # Errors
//
// All errors match one of audio.ErrInvalidParameter, audio.ErrUnsupportedFormat
// or audio.ErrIOFailure with errors.Is. File errors are *audio.IOError and
// carry the path and operation.
//
// # Logging
//
// The package logs through the standard logrus logger: Debug for each
// stage, Info for written files and sessions. Configure it with
// logrus.SetLevel and logrus.SetFormatter.
package healtone
