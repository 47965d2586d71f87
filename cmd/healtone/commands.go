// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/sirupsen/logrus"

	"github.com/ik5/healtone"
	"github.com/ik5/healtone/audio"
	"github.com/ik5/healtone/dsp"
	"github.com/ik5/healtone/mix"
	"github.com/ik5/healtone/presets"
	"github.com/ik5/healtone/synth"
)

func (a *app) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("healtone "+name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)

	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected argument %q", errUsage, fs.Arg(0))
	}

	return nil
}

// renderFlags are the synthesis and finishing flags shared by the render
// commands. Their defaults come from the config.
type renderFlags struct {
	duration   float64
	harmonics  string
	quality    string
	fade       float64
	shape      string
	peak       float64
	noise      string
	noiseLevel float64
	seed       int64
	out        string
}

func (a *app) addRenderFlags(fs *flag.FlagSet, duration float64) *renderFlags {
	def := a.cfg.RenderOptions()

	r := &renderFlags{}
	fs.Float64Var(&r.duration, "duration", duration, "Duration in seconds")
	fs.StringVar(&r.harmonics, "harmonics", a.cfg.Harmonics.String(), "Harmonic profile (none, warm, bright, natural)")
	fs.StringVar(&r.quality, "quality", a.cfg.Quality.String(), "Quality tier (standard, high, pro)")
	fs.Float64Var(&r.fade, "fade", def.Fade, "Fade in/out in seconds")
	fs.StringVar(&r.shape, "fade-shape", "linear", "Fade curve (linear, cosine)")
	fs.Float64Var(&r.peak, "peak", def.PeakDBFS, "Normalization peak in dBFS")
	fs.StringVar(&r.noise, "noise", def.Noise.String(), "Noise bed (none, white, pink, brown)")
	fs.Float64Var(&r.noiseLevel, "noise-level", def.NoiseLevel, "Share of the noise bed, 0..1")
	fs.Int64Var(&r.seed, "seed", 1, "Noise seed")
	fs.StringVar(&r.out, "o", "", "Output WAV path (default derived from the request)")

	return r
}

func parseShape(s string) (dsp.Shape, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear", "":
		return dsp.Linear, nil
	case "cosine":
		return dsp.Cosine, nil
	}
	return dsp.Linear, fmt.Errorf("%w: unknown fade shape %q", errUsage, s)
}

func (r *renderFlags) resolve() (synth.HarmonicProfile, synth.Quality, healtone.RenderOptions, error) {
	var opts healtone.RenderOptions

	harmonics, err := synth.ParseHarmonicProfile(r.harmonics)
	if err != nil {
		return 0, 0, opts, err
	}
	quality, err := synth.ParseQuality(r.quality)
	if err != nil {
		return 0, 0, opts, err
	}
	noise, err := synth.ParseNoiseKind(r.noise)
	if err != nil {
		return 0, 0, opts, err
	}
	shape, err := parseShape(r.shape)
	if err != nil {
		return 0, 0, opts, err
	}

	opts = healtone.RenderOptions{
		Fade:       r.fade,
		FadeShape:  shape,
		PeakDBFS:   r.peak,
		Noise:      noise,
		NoiseLevel: r.noiseLevel,
		Seed:       r.seed,
	}

	return harmonics, quality, opts, nil
}

func (r *renderFlags) output(def string) string {
	if r.out != "" {
		return r.out
	}
	return def
}

// write encodes buf at the bit depth it carries and reports it.
func (a *app) write(buf *audio.Buffer, path string) error {
	if err := a.cfg.Codec().Encode(buf, path, 0); err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "Wrote %s (%.1f s, %d Hz, %d ch, %d-bit)\n",
		path, buf.Duration(), buf.SampleRate, buf.Channels, buf.BitDepth)

	return nil
}

func runTone(_ context.Context, a *app, args []string) error {
	fs := a.flagSet("tone")
	freq := fs.Float64("freq", 432, "Frequency in Hz")
	r := a.addRenderFlags(fs, 300)
	if err := parse(fs, args); err != nil {
		return err
	}

	harmonics, quality, opts, err := r.resolve()
	if err != nil {
		return err
	}

	buf, err := healtone.RenderTone(*freq, r.duration, harmonics, quality, opts)
	if err != nil {
		return err
	}

	return a.write(buf, r.output(fmt.Sprintf("tone_%ghz.wav", *freq)))
}

func runBinaural(_ context.Context, a *app, args []string) error {
	fs := a.flagSet("binaural")
	carrier := fs.Float64("carrier", 400, "Left ear carrier in Hz")
	beat := fs.Float64("beat", 10, "Beat in Hz; the right ear plays carrier+beat")
	r := a.addRenderFlags(fs, 600)
	if err := parse(fs, args); err != nil {
		return err
	}

	harmonics, quality, opts, err := r.resolve()
	if err != nil {
		return err
	}

	buf, err := healtone.RenderBinaural(*carrier, *beat, r.duration, harmonics, quality, opts)
	if err != nil {
		return err
	}

	return a.write(buf, r.output(fmt.Sprintf("binaural_%ghz_%ghz.wav", *carrier, *beat)))
}

func runIsochronic(_ context.Context, a *app, args []string) error {
	fs := a.flagSet("isochronic")
	freq := fs.Float64("freq", 200, "Tone frequency in Hz")
	pulse := fs.Float64("pulse", 10, "Pulses per second")
	r := a.addRenderFlags(fs, 600)
	if err := parse(fs, args); err != nil {
		return err
	}

	harmonics, quality, opts, err := r.resolve()
	if err != nil {
		return err
	}

	buf, err := healtone.RenderIsochronic(*freq, *pulse, r.duration, harmonics, quality, opts)
	if err != nil {
		return err
	}

	return a.write(buf, r.output(fmt.Sprintf("isochronic_%ghz_%ghz.wav", *freq, *pulse)))
}

func runBrainwave(_ context.Context, a *app, args []string) error {
	fs := a.flagSet("brainwave")
	name := fs.String("name", "alpha", "Preset name (see list)")
	r := a.addRenderFlags(fs, 600)
	if err := parse(fs, args); err != nil {
		return err
	}

	p, err := presets.LookupBrainwave(*name)
	if err != nil {
		return err
	}
	harmonics, quality, opts, err := r.resolve()
	if err != nil {
		return err
	}

	buf, err := healtone.RenderBinaural(p.Carrier, p.Beat, r.duration, harmonics, quality, opts)
	if err != nil {
		return err
	}

	return a.write(buf, r.output(fmt.Sprintf("brainwave_%s.wav", p.Name)))
}

func runSession(_ context.Context, a *app, args []string) error {
	fs := a.flagSet("session")
	name := fs.String("name", "", "Session name (see list)")
	r := a.addRenderFlags(fs, 0)
	if err := parse(fs, args); err != nil {
		return err
	}
	if *name == "" {
		return fmt.Errorf("%w: -name is required", errUsage)
	}

	all, err := a.cfg.Sessions()
	if err != nil {
		return err
	}
	s, err := all.Find(*name)
	if err != nil {
		return err
	}
	if r.duration > 0 {
		s.Duration = r.duration
	}

	_, quality, opts, err := r.resolve()
	if err != nil {
		return err
	}

	buf, err := healtone.RenderSession(s, quality, opts)
	if err != nil {
		return err
	}

	return a.write(buf, r.output(fmt.Sprintf("session_%s.wav", s.Name)))
}

func parseFrequencies(s string) ([]float64, error) {
	var out []float64
	for field := range strings.SplitSeq(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad frequency %q", errUsage, field)
		}
		out = append(out, f)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no frequencies given", errUsage)
	}

	return out, nil
}

func joinFrequencies(fs []float64) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func runSequence(_ context.Context, a *app, args []string) error {
	fs := a.flagSet("sequence")
	freqs := fs.String("freqs", joinFrequencies(presets.ChakraSequence()), "Comma separated frequencies in Hz")
	perTone := fs.Float64("per-tone", 60, "Seconds per tone")
	r := a.addRenderFlags(fs, 0)
	if err := parse(fs, args); err != nil {
		return err
	}

	seq, err := parseFrequencies(*freqs)
	if err != nil {
		return err
	}
	harmonics, quality, opts, err := r.resolve()
	if err != nil {
		return err
	}

	buf, err := healtone.Sequence(seq, *perTone, harmonics, quality, opts)
	if err != nil {
		return err
	}

	return a.write(buf, r.output("sequence.wav"))
}

func runSolfeggio(ctx context.Context, a *app, args []string) error {
	fs := a.flagSet("solfeggio")
	dir := fs.String("dir", ".", "Output directory")
	workers := fs.Int("workers", a.cfg.Workers, "Parallel renders (0 uses every CPU)")
	r := a.addRenderFlags(fs, 300)
	if err := parse(fs, args); err != nil {
		return err
	}

	harmonics, quality, opts, err := r.resolve()
	if err != nil {
		return err
	}

	var freqs []float64
	for _, s := range presets.SolfeggioTones() {
		freqs = append(freqs, s.Frequency)
	}
	reqs, err := healtone.SolfeggioRequests(freqs, r.duration, harmonics, quality, opts)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		return &audio.IOError{Op: "mkdir", Path: *dir, Err: err}
	}

	bufs, err := healtone.RenderBatch(ctx, reqs, *workers)
	if err != nil {
		return err
	}

	for i, buf := range bufs {
		if err := a.write(buf, filepath.Join(*dir, reqs[i].Name+".wav")); err != nil {
			return err
		}
	}

	return nil
}

func runMix(ctx context.Context, a *app, args []string) error {
	fs := a.flagSet("mix")
	music := fs.String("music", "", "Music file to mix under")
	out := fs.String("o", "", "Output WAV path")
	mode := fs.String("mode", "pure", "Tone mode (pure, binaural, isochronic)")
	freq := fs.Float64("freq", 432, "Tone frequency or binaural carrier in Hz")
	beat := fs.Float64("beat", 0, "Binaural beat or isochronic pulse in Hz")
	harmonicsFlag := fs.String("harmonics", a.cfg.Harmonics.String(), "Harmonic profile")
	qualityFlag := fs.String("quality", a.cfg.Quality.String(), "Quality tier of the tone")
	level := fs.String("level", a.cfg.Level.String(), "Mix level (dominant, balanced, subtle, subliminal, binaural_optimal)")
	fade := fs.Float64("fade", a.cfg.Fade, "Fade over the mix in seconds")
	bits := fs.Int("bits", 0, "Output bit depth (0 follows the quality tier)")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *music == "" || *out == "" {
		return fmt.Errorf("%w: -music and -o are required", errUsage)
	}

	m, err := synth.ParseMode(*mode)
	if err != nil {
		return err
	}
	harmonics, err := synth.ParseHarmonicProfile(*harmonicsFlag)
	if err != nil {
		return err
	}
	quality, err := synth.ParseQuality(*qualityFlag)
	if err != nil {
		return err
	}
	lvl, err := mix.ParseLevel(*level)
	if err != nil {
		return err
	}

	buf, err := a.cfg.Codec().MixFile(ctx, healtone.MixRequest{
		MusicPath: *music,
		OutPath:   *out,
		Tone: synth.ToneSpec{
			Mode:      m,
			Frequency: *freq,
			Beat:      *beat,
			Harmonics: harmonics,
			Quality:   quality,
		},
		Level:    lvl,
		Fade:     *fade,
		BitDepth: *bits,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "Wrote %s (%.1f s, %d Hz, %d ch, level %s)\n",
		*out, buf.Duration(), buf.SampleRate, buf.Channels, lvl)

	return nil
}

// runConvert decodes any supported input, optionally resamples and folds
// it to mono, and writes integer PCM WAV.
func runConvert(ctx context.Context, a *app, args []string) error {
	fs := a.flagSet("convert")
	in := fs.String("i", "", "Input file")
	out := fs.String("o", "", "Output WAV path")
	rate := fs.Int("rate", 0, "Output sample rate (0 keeps the input's)")
	mono := fs.Bool("mono", false, "Fold to mono")
	bits := fs.Int("bits", 16, "Output bit depth (16, 24, 32)")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *in == "" || *out == "" {
		return fmt.Errorf("%w: -i and -o are required", errUsage)
	}

	codec := a.cfg.Codec()
	buf, err := codec.Decode(ctx, *in)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"function":    "runConvert",
		"input":       *in,
		"sample_rate": buf.SampleRate,
		"channels":    buf.Channels,
		"duration":    buf.Duration(),
	}).Info("Decoded input")

	if *rate > 0 {
		if buf, err = audio.Resample(buf, *rate); err != nil {
			return err
		}
	}
	if *mono {
		if buf, err = audio.Downmix(buf); err != nil {
			return err
		}
	}
	buf.BitDepth = *bits

	return a.write(buf, *out)
}

func runList(_ context.Context, a *app, args []string) error {
	fs := a.flagSet("list")
	if err := parse(fs, args); err != nil {
		return err
	}

	all, err := a.cfg.Sessions()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "BRAINWAVE\tBEAT\tCARRIER\tRANGE\tEFFECT")
	for _, b := range presets.Brainwaves() {
		fmt.Fprintf(w, "%s\t%g Hz\t%g Hz\t%g-%g Hz\t%s\n", b.Name, b.Beat, b.Carrier, b.MinHz, b.MaxHz, b.Effect)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "SOLFEGGIO\tNAME\tEFFECT")
	for _, s := range presets.SolfeggioTones() {
		fmt.Fprintf(w, "%g Hz\t%s\t%s\n", s.Frequency, s.Name, s.Effect)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "SESSION\tTYPE\tDURATION\tDESCRIPTION")
	for _, s := range all {
		fmt.Fprintf(w, "%s\t%s\t%g s\t%s\n", s.Name, s.Kind, s.Duration, s.Description)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "LEVEL\tMUSIC\tTONE")
	for _, l := range mix.Levels() {
		spec := l.Spec()
		fmt.Fprintf(w, "%s\t%g dB\t%g dB\n", l, spec.MusicDB, spec.FrequencyDB)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "FORMATS\t%s\n", strings.Join(a.cfg.Codec().Formats(), " "))

	return w.Flush()
}
