// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"math"

	"github.com/ik5/healtone/audio"
)

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB.
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}
	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// Gain scales every sample by db decibels.
func Gain(buf *audio.Buffer, db float64) (*audio.Buffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	if math.IsNaN(db) || math.IsInf(db, 0) {
		return nil, audio.InvalidParameter("gain must be finite: %v", db)
	}

	return Scale(buf, DBToLinear(db)), nil
}

// Scale multiplies every sample by factor into a new buffer.
func Scale(buf *audio.Buffer, factor float64) *audio.Buffer {
	out := buf.Clone()
	for i := range out.Data {
		out.Data[i] *= factor
	}

	return out
}
