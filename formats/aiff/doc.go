// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files through github.com/go-audio/aiff.
//
// Big-endian integer PCM at 16, 24 or 32 bits is supported, with any channel
// count and sample rate:
//
//	f, _ := os.Open("music.aif")
//	src, err := aiff.Decoder{}.Decode(f)
//
// Samples are delivered as float32 in [-1, 1]. ErrNotAiffFile, ErrBitDepth
// and ErrUnsupportedAiffLayout all match audio.ErrUnsupportedFormat.
package aiff
