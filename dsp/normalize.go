// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"math"

	"github.com/ik5/healtone/audio"
)

// DefaultPeakDBFS is the export peak level: loud, with a hair of headroom.
const DefaultPeakDBFS = -0.1

// Normalize scales buf by a single factor so its peak sits at peakDBFS.
// A silent buffer comes back unchanged.
func Normalize(buf *audio.Buffer, peakDBFS float64) (*audio.Buffer, error) {
	target, err := peakTarget(buf, peakDBFS)
	if err != nil {
		return nil, err
	}

	peak := buf.Peak()
	if peak == 0 {
		return buf.Clone(), nil
	}

	return Scale(buf, target/peak), nil
}

// Limit scales buf down to ceilingDBFS only when its peak is above it.
// Quieter buffers are returned unchanged.
func Limit(buf *audio.Buffer, ceilingDBFS float64) (*audio.Buffer, error) {
	ceiling, err := peakTarget(buf, ceilingDBFS)
	if err != nil {
		return nil, err
	}

	peak := buf.Peak()
	if peak <= ceiling {
		return buf.Clone(), nil
	}

	return Scale(buf, ceiling/peak), nil
}

func peakTarget(buf *audio.Buffer, dbfs float64) (float64, error) {
	if err := buf.Validate(); err != nil {
		return 0, err
	}
	if dbfs > 0 || math.IsNaN(dbfs) || math.IsInf(dbfs, 0) {
		return 0, audio.InvalidParameter("peak must be a finite level <= 0 dBFS: %v", dbfs)
	}

	return DBToLinear(dbfs), nil
}
