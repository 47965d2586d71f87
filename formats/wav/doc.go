// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes integer PCM WAV files through
// github.com/go-audio/wav.
//
// # Decoding
//
// Decoder accepts 16, 24 and 32-bit PCM with any channel count and sample
// rate. Samples come out of the returned audio.Source as float32 in [-1, 1]:
//
//	f, _ := os.Open("music.wav")
//	src, err := wav.Decoder{}.Decode(f)
//
// Unknown chunks are skipped. A reader that cannot seek is buffered in
// memory first.
//
// # Encoding
//
// Encode writes an audio.Buffer at 16, 24 or 32 bits. Each sample is
// rounded to the nearest integer code (never truncated) and clamped to full
// scale, so the quantization error stays within half a step:
//
//	err := wav.Encode(f, buf, 24)
//
// Encode needs an io.WriteSeeker because the RIFF sizes are patched in
// after the data.
//
// # Errors
//
// ErrNotWavFile, ErrNotPCM and ErrBitDepth all match
// audio.ErrUnsupportedFormat with errors.Is.
package wav
