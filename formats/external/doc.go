// SPDX-License-Identifier: EPL-2.0

// Package external decodes formats that have no pure-Go decoder by running
// an independently installed tool (ffmpeg by default) as a subprocess.
//
// The input is converted to a temporary 16-bit PCM WAV which is then read
// with the native wav decoder:
//
//	ffmpeg -i input -f wav -acodec pcm_s16le -y decoded.wav
//
// The tool is optional. Available tells whether it can be found, and when it
// cannot, Decode fails with audio.ErrUnsupportedFormat naming the missing
// binary instead of crashing.
package external
