// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"fmt"
	"math"

	"github.com/ik5/healtone/audio"
	"github.com/ik5/healtone/dsp"
)

// CeilingDBFS is the peak a mix is limited to.
const CeilingDBFS = -0.1

// Mix blends tone over music using the attenuation of level.
func Mix(tone, music *audio.Buffer, level Level) (*audio.Buffer, error) {
	if !level.valid() {
		return nil, audio.InvalidParameter("unknown mix level %d", int(level))
	}

	return MixWithSpec(tone, music, level.Spec())
}

// MixWithSpec sums music*10^(MusicDB/20) and tone*10^(FrequencyDB/20).
//
// The output runs at the tone's sample rate; music at another rate is
// resampled first, band-limited when downsampled. A mono input is copied into both channels of a stereo
// one and inputs wider than stereo are folded to mono. The shorter input is
// padded with silence. A sum above CeilingDBFS is scaled down to it.
func MixWithSpec(tone, music *audio.Buffer, spec Spec) (*audio.Buffer, error) {
	if err := tone.Validate(); err != nil {
		return nil, fmt.Errorf("tone: %w", err)
	}
	if err := music.Validate(); err != nil {
		return nil, fmt.Errorf("music: %w", err)
	}
	if !finite(spec.MusicDB) || !finite(spec.FrequencyDB) {
		return nil, audio.InvalidParameter("mix attenuation must be finite: %+v", spec)
	}

	tone, err := fold(tone)
	if err != nil {
		return nil, fmt.Errorf("tone: %w", err)
	}
	music, err = fold(music)
	if err != nil {
		return nil, fmt.Errorf("music: %w", err)
	}

	if music.SampleRate != tone.SampleRate {
		music, err = audio.Resample(music, tone.SampleRate)
		if err != nil {
			return nil, fmt.Errorf("music: %w", err)
		}
	}

	channels := max(tone.Channels, music.Channels)
	frames := max(tone.Frames(), music.Frames())

	out, err := audio.NewBuffer(tone.SampleRate, channels, frames)
	if err != nil {
		return nil, err
	}
	out.BitDepth = tone.BitDepth

	accumulate(out, music, dsp.DBToLinear(spec.MusicDB))
	accumulate(out, tone, dsp.DBToLinear(spec.FrequencyDB))

	limited, err := dsp.Limit(out, CeilingDBFS)
	if err != nil {
		return nil, err
	}

	return limited, nil
}

// fold brings a buffer down to at most two channels.
func fold(buf *audio.Buffer) (*audio.Buffer, error) {
	if buf.Channels <= 2 {
		return buf, nil
	}

	return audio.Downmix(buf)
}

// accumulate adds gain*src into dst. A mono src feeds every dst channel;
// frames past the end of src are left as they are.
func accumulate(dst, src *audio.Buffer, gain float64) {
	ch := dst.Channels
	for f := range src.Frames() {
		for c := range ch {
			sc := c
			if src.Channels == 1 {
				sc = 0
			}
			dst.Data[f*ch+c] += gain * src.Data[f*src.Channels+sc]
		}
	}
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
