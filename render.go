// SPDX-License-Identifier: EPL-2.0

package healtone

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ik5/healtone/audio"
	"github.com/ik5/healtone/dsp"
	"github.com/ik5/healtone/presets"
	"github.com/ik5/healtone/synth"
)

// RenderOptions is the finishing applied after synthesis. Fields are used
// as given; start from DefaultRenderOptions.
type RenderOptions struct {
	Fade      float64 // seconds at each end
	FadeShape dsp.Shape
	PeakDBFS  float64

	Noise      synth.NoiseKind
	NoiseLevel float64 // share of the noise bed, [0,1]
	Seed       int64
}

// DefaultRenderOptions fades 3 s and normalizes to -0.1 dBFS, without noise.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Fade:     dsp.DefaultFade,
		PeakDBFS: dsp.DefaultPeakDBFS,
	}
}

// Render synthesizes spec and finishes it with opts.
func Render(spec synth.ToneSpec, opts RenderOptions) (*audio.Buffer, error) {
	logrus.WithFields(logrus.Fields{
		"function":  "Render",
		"mode":      spec.Mode.String(),
		"frequency": spec.Frequency,
		"beat":      spec.Beat,
		"duration":  spec.Duration,
		"harmonics": spec.Harmonics.String(),
		"quality":   spec.Quality.String(),
	}).Debug("Rendering tone")

	raw, err := synth.Render(spec)
	if err != nil {
		return nil, err
	}

	return finish(raw, opts)
}

// RenderTone renders a mono pure tone.
func RenderTone(frequencyHz, durationS float64, harmonics synth.HarmonicProfile, quality synth.Quality, opts RenderOptions) (*audio.Buffer, error) {
	spec, err := synth.NewToneSpec(synth.Pure, frequencyHz, 0, durationS, harmonics, quality)
	if err != nil {
		return nil, err
	}
	return Render(spec, opts)
}

// RenderBinaural renders a stereo beat: carrierHz left, carrierHz+beatHz right.
func RenderBinaural(carrierHz, beatHz, durationS float64, harmonics synth.HarmonicProfile, quality synth.Quality, opts RenderOptions) (*audio.Buffer, error) {
	spec, err := synth.NewToneSpec(synth.BinauralMode, carrierHz, beatHz, durationS, harmonics, quality)
	if err != nil {
		return nil, err
	}
	return Render(spec, opts)
}

// RenderIsochronic renders a mono tone pulsed pulseHz times a second.
func RenderIsochronic(frequencyHz, pulseHz, durationS float64, harmonics synth.HarmonicProfile, quality synth.Quality, opts RenderOptions) (*audio.Buffer, error) {
	spec, err := synth.NewToneSpec(synth.IsochronicMode, frequencyHz, pulseHz, durationS, harmonics, quality)
	if err != nil {
		return nil, err
	}
	return Render(spec, opts)
}

// RenderBrainwave renders the binaural preset called name.
func RenderBrainwave(name string, durationS float64, quality synth.Quality, opts RenderOptions) (*audio.Buffer, error) {
	p, err := presets.LookupBrainwave(name)
	if err != nil {
		return nil, err
	}
	return RenderBinaural(p.Carrier, p.Beat, durationS, synth.None, quality, opts)
}

// RenderSession renders a curated session. Set s.Duration on the copy to
// shorten it.
func RenderSession(s presets.Session, quality synth.Quality, opts RenderOptions) (*audio.Buffer, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	rate := quality.SampleRate()
	if rate == 0 {
		return nil, audio.InvalidParameter("unknown quality tier %d", int(quality))
	}

	logrus.WithFields(logrus.Fields{
		"function": "RenderSession",
		"session":  s.Name,
		"type":     string(s.Kind),
		"duration": s.Duration,
		"quality":  quality.String(),
	}).Info("Rendering session")

	pair, err := synth.Binaural(s.Carrier, s.Beat, s.Duration, rate, s.Harmonics)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", s.Name, err)
	}

	buf := pair
	if s.Kind == presets.LayeredSession {
		base, err := synth.Generate(s.Base, s.Duration, rate, s.Harmonics)
		if err != nil {
			return nil, fmt.Errorf("session %s: %w", s.Name, err)
		}
		buf, err = synth.Layered(base, pair, synth.DefaultLayerWeight)
		if err != nil {
			return nil, fmt.Errorf("session %s: %w", s.Name, err)
		}
	}
	buf.BitDepth = quality.BitDepth()

	return finish(buf, opts)
}

// Sequence plays each frequency for perToneS seconds, one after another.
// Every tone gets its own fades so the joins do not click; noise and
// normalization apply to the whole sequence.
func Sequence(frequencies []float64, perToneS float64, harmonics synth.HarmonicProfile, quality synth.Quality, opts RenderOptions) (*audio.Buffer, error) {
	if len(frequencies) == 0 {
		return nil, audio.InvalidParameter("empty frequency sequence")
	}
	rate := quality.SampleRate()
	if rate == 0 {
		return nil, audio.InvalidParameter("unknown quality tier %d", int(quality))
	}

	out := &audio.Buffer{SampleRate: rate, Channels: 1, BitDepth: quality.BitDepth()}
	for i, f := range frequencies {
		tone, err := synth.Generate(f, perToneS, rate, harmonics)
		if err != nil {
			return nil, fmt.Errorf("tone %d: %w", i, err)
		}
		tone, err = dsp.FadeShape(tone, opts.Fade, opts.FadeShape)
		if err != nil {
			return nil, fmt.Errorf("tone %d: %w", i, err)
		}
		out.Data = append(out.Data, tone.Data...)
	}

	whole := opts
	whole.Fade = 0

	return finish(out, whole)
}

// finish layers noise, fades and normalizes buf.
func finish(buf *audio.Buffer, opts RenderOptions) (*audio.Buffer, error) {
	bitDepth := buf.BitDepth

	if opts.Noise != synth.NoNoise {
		bed, err := synth.Noise(opts.Noise, buf.Duration(), buf.SampleRate, opts.Seed)
		if err != nil {
			return nil, fmt.Errorf("noise: %w", err)
		}
		buf, err = synth.Layer(buf, bed, opts.NoiseLevel)
		if err != nil {
			return nil, fmt.Errorf("noise: %w", err)
		}
	}

	buf, err := dsp.FadeShape(buf, opts.Fade, opts.FadeShape)
	if err != nil {
		return nil, err
	}
	buf, err = dsp.Normalize(buf, opts.PeakDBFS)
	if err != nil {
		return nil, err
	}
	buf.BitDepth = bitDepth

	return buf, nil
}
