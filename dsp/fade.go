// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"math"

	"github.com/ik5/healtone/audio"
)

// DefaultFade is the fade length applied to rendered files, in seconds.
const DefaultFade = 3.0

// Shape selects the curve of a fade ramp.
type Shape int

const (
	Linear Shape = iota
	// Cosine is a raised-cosine ramp: zero slope at both ends.
	Cosine
)

// Fade applies a linear fade-in and fade-out of seconds to every channel.
func Fade(buf *audio.Buffer, seconds float64) (*audio.Buffer, error) {
	return FadeShape(buf, seconds, Linear)
}

// FadeShape is Fade with a selectable ramp curve. If 2*seconds exceeds the
// buffer duration each fade is clamped to half the buffer.
func FadeShape(buf *audio.Buffer, seconds float64, shape Shape) (*audio.Buffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	if seconds < 0 || math.IsNaN(seconds) {
		return nil, audio.InvalidParameter("fade must be >= 0 seconds: %v", seconds)
	}
	if shape != Linear && shape != Cosine {
		return nil, audio.InvalidParameter("unknown fade shape %d", shape)
	}

	out := buf.Clone()
	frames := out.Frames()

	n := int(math.Round(seconds * float64(out.SampleRate)))
	n = min(n, frames/2)
	if n == 0 {
		return out, nil
	}

	ch := out.Channels
	for k := range n {
		g := ramp(float64(k)/float64(n), shape)
		head := k * ch
		tail := (frames - 1 - k) * ch
		for c := range ch {
			out.Data[head+c] *= g
			out.Data[tail+c] *= g
		}
	}

	return out, nil
}

// ramp maps x in [0,1) to a gain rising from 0.
func ramp(x float64, shape Shape) float64 {
	if shape == Cosine {
		return 0.5 * (1 - math.Cos(math.Pi*x))
	}
	return x
}
