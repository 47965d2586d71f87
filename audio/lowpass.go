// SPDX-License-Identifier: EPL-2.0

package audio

import "math"

// lowPassWidth sets the filter half length in source frames per unit of
// decimation ratio. With a Blackman window this leaves the band between
// lowPassCutoff and the target Nyquist for the transition.
const (
	lowPassWidth  = 28
	lowPassCutoff = 0.4 // of the target sample rate
)

// lowPassKernel is a Blackman-windowed sinc with unity DC gain. cutoff is a
// fraction of the sample rate, below 0.5.
func lowPassKernel(cutoff float64, half int) []float64 {
	taps := 2*half + 1
	k := make([]float64, taps)

	sum := 0.0
	for i := range taps {
		n := float64(i - half)
		v := 2 * cutoff
		if n != 0 {
			v = math.Sin(2*math.Pi*cutoff*n) / (math.Pi * n)
		}
		w := 0.42 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(taps-1)) +
			0.08*math.Cos(4*math.Pi*float64(i)/float64(taps-1))
		k[i] = v * w
		sum += k[i]
	}
	for i := range k {
		k[i] /= sum
	}

	return k
}

// bandLimit removes what would alias once buf is decimated to dstRate.
// Frames beyond the edges count as silence. The frame count is kept.
func bandLimit(buf *Buffer, dstRate int) *Buffer {
	ratio := float64(buf.SampleRate) / float64(dstRate)
	half := int(math.Ceil(lowPassWidth * ratio))
	kernel := lowPassKernel(lowPassCutoff/ratio, half)

	out := &Buffer{
		Data:       make([]float64, len(buf.Data)),
		SampleRate: buf.SampleRate,
		Channels:   buf.Channels,
		BitDepth:   buf.BitDepth,
	}

	ch := buf.Channels
	frames := buf.Frames()
	for f := range frames {
		lo := max(0, f-half)
		hi := min(frames-1, f+half)
		for c := range ch {
			acc := 0.0
			for s := lo; s <= hi; s++ {
				acc += kernel[s-f+half] * buf.Data[s*ch+c]
			}
			out.Data[f*ch+c] = acc
		}
	}

	return out
}
