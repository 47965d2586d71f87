// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 music tracks with github.com/hajimehoshi/go-mp3.
//
// The decoder is pure Go, so MP3 input works without any external tool:
//
//	f, _ := os.Open("music.mp3")
//	src, err := mp3.Decoder{}.Decode(f)
//	buf, err := audio.ReadAll(src)
//
// # Output Format
//
// go-mp3 always produces 16-bit stereo, so the Source reports two channels
// even for mono files. The Mixer folds or duplicates channels as needed, and
// resamples to the tone's rate, so a decoded track can be passed to
// mix.Mix directly.
//
// Input that go-mp3 cannot parse fails with audio.ErrUnsupportedFormat.
package mp3
