// SPDX-License-Identifier: EPL-2.0

// Package audio holds the sample containers and stream plumbing shared by
// the synthesizers, the mixer and the file codecs.
//
// # Buffers
//
// A Buffer is a whole signal in memory: interleaved float64 samples plus
// the sample rate, channel count and a bit depth hint for export. Every
// processing stage takes a Buffer and returns a new one.
//
//	buf, err := audio.NewBuffer(44100, 2, 44100) // one second of stereo silence
//
// Interleave builds a Buffer from per-channel slices and Channel takes one
// back out.
//
// # Streams
//
// Decoders produce a Source, a pull stream of interleaved float32 samples:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// ReadSamples returns the number of float32 values written, not frames, and
// io.EOF once the stream is finished. ReadAll drains a Source into a
// Buffer and Buffer.Source goes the other way.
//
// # Conversion
//
// Resampler changes the rate of a Source with Catmull-Rom interpolation and
// MonoMixer averages its channels. Resample and Downmix apply them to a
// whole Buffer:
//
//	music, err = audio.Resample(music, 48000)
//	mono, err := audio.Downmix(music)
//
// # Registry
//
// Registry maps file extensions to decoders. Lookup resolves a path:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//	dec, ext, ok := reg.Lookup("/music/track.WAV")
//
// # Errors
//
// Failures are classified by ErrInvalidParameter, ErrUnsupportedFormat and
// ErrIOFailure; test for them with errors.Is. IOError carries the path of a
// failed file access.
package audio
