// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis music tracks with
// github.com/jfreymuth/oggvorbis.
//
//	f, _ := os.Open("music.ogg")
//	src, err := vorbis.Decoder{}.Decode(f)
//	buf, err := audio.ReadAll(src)
//
// Samples are interleaved float32 in the file's own channel layout:
//
//	[L0, R0, L1, R1, L2, R2, ...]
//
// ReadSamples wants a destination that holds whole frames; other lengths
// fail with audio.ErrInvalidDstSize. Streams the library cannot open fail
// with audio.ErrUnsupportedFormat.
package vorbis
