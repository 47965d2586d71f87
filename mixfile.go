// SPDX-License-Identifier: EPL-2.0

package healtone

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ik5/healtone/audio"
	"github.com/ik5/healtone/dsp"
	"github.com/ik5/healtone/mix"
	"github.com/ik5/healtone/synth"
)

// MixRequest places a tone under a music file. The tone's Duration is
// replaced by the music's length, so the two line up.
type MixRequest struct {
	MusicPath string
	OutPath   string
	Tone      synth.ToneSpec
	Level     mix.Level
	Fade      float64 // final fade over the mix, seconds
	BitDepth  int     // 0 uses the tone's quality tier
}

// MixFile decodes the music, renders a matching tone, mixes and writes the
// result. It returns the mixed buffer. The tone is rendered without fades;
// Fade is applied once, over the mix.
func MixFile(ctx context.Context, req MixRequest) (*audio.Buffer, error) {
	return NewCodec().MixFile(ctx, req)
}

// MixFile is the package-level MixFile with c's decoders.
func (c *Codec) MixFile(ctx context.Context, req MixRequest) (*audio.Buffer, error) {
	music, err := c.Decode(ctx, req.MusicPath)
	if err != nil {
		return nil, fmt.Errorf("music: %w", err)
	}
	if music.Frames() == 0 {
		return nil, audio.InvalidParameter("music file %s is empty", req.MusicPath)
	}

	spec, err := synth.NewToneSpec(req.Tone.Mode, req.Tone.Frequency, req.Tone.Beat,
		music.Duration(), req.Tone.Harmonics, req.Tone.Quality)
	if err != nil {
		return nil, fmt.Errorf("tone: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"function":  "MixFile",
		"music":     req.MusicPath,
		"duration":  music.Duration(),
		"level":     req.Level.String(),
		"mode":      spec.Mode.String(),
		"frequency": spec.Frequency,
	}).Info("Mixing tone into music")

	tone, err := Render(spec, RenderOptions{PeakDBFS: dsp.DefaultPeakDBFS})
	if err != nil {
		return nil, fmt.Errorf("tone: %w", err)
	}

	out, err := mix.Mix(tone, music, req.Level)
	if err != nil {
		return nil, err
	}
	out, err = dsp.Fade(out, req.Fade)
	if err != nil {
		return nil, err
	}
	out.BitDepth = tone.BitDepth

	if req.OutPath != "" {
		bitDepth := req.BitDepth
		if bitDepth == 0 {
			bitDepth = spec.Quality.BitDepth()
		}
		if err := c.Encode(out, req.OutPath, bitDepth); err != nil {
			return nil, err
		}
	}

	return out, nil
}
