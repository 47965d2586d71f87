// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ik5/healtone"
	"github.com/ik5/healtone/dsp"
	"github.com/ik5/healtone/formats/external"
	"github.com/ik5/healtone/mix"
	"github.com/ik5/healtone/presets"
	"github.com/ik5/healtone/synth"
)

// Environment overrides, applied after the config file.
const (
	envFFmpeg   = "HEALTONE_FFMPEG"
	envLogLevel = "HEALTONE_LOG_LEVEL"
)

// Config holds the defaults every subcommand starts from. Flags given on
// the command line win over it.
type Config struct {
	Quality    synth.Quality         `yaml:"quality"`
	Harmonics  synth.HarmonicProfile `yaml:"harmonics"`
	Fade       float64               `yaml:"fade"`
	PeakDBFS   float64               `yaml:"peak_dbfs"`
	Level      mix.Level             `yaml:"level"`
	Noise      synth.NoiseKind       `yaml:"noise"`
	NoiseLevel float64               `yaml:"noise_level"`
	Workers    int                   `yaml:"workers"`

	FFmpeg       string `yaml:"ffmpeg"`
	SessionsFile string `yaml:"sessions_file"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// DefaultConfig matches the engine defaults: standard quality, 3 s fades,
// -0.1 dBFS peak and the balanced mix level.
func DefaultConfig() Config {
	return Config{
		Quality:   synth.Standard,
		Harmonics: synth.None,
		Fade:      dsp.DefaultFade,
		PeakDBFS:  dsp.DefaultPeakDBFS,
		Level:     mix.Balanced,
		Noise:     synth.NoNoise,
		FFmpeg:    external.DefaultTool,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// LoadConfig reads the YAML file at path over DefaultConfig. An empty path
// returns the defaults. Keys the file sets replace the default, the rest
// are kept. Environment overrides are applied last.
func LoadConfig(path string, getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
		defer f.Close()

		if err := cfg.decode(f); err != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
	}

	cfg.applyEnv(getenv)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if getenv == nil {
		return
	}
	if v := strings.TrimSpace(getenv(envFFmpeg)); v != "" {
		c.FFmpeg = v
	}
	if v := strings.TrimSpace(getenv(envLogLevel)); v != "" {
		c.LogLevel = v
	}
}

// Validate checks the values the file or environment may have broken.
func (c Config) Validate() error {
	if c.Fade < 0 || math.IsNaN(c.Fade) {
		return fmt.Errorf("config: fade must be >= 0 seconds: %v", c.Fade)
	}
	if c.PeakDBFS > 0 || math.IsNaN(c.PeakDBFS) {
		return fmt.Errorf("config: peak_dbfs must be <= 0: %v", c.PeakDBFS)
	}
	if c.NoiseLevel < 0 || c.NoiseLevel > 1 || math.IsNaN(c.NoiseLevel) {
		return fmt.Errorf("config: noise_level must be in [0,1]: %v", c.NoiseLevel)
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: workers cannot be negative: %d", c.Workers)
	}
	if c.FFmpeg == "" {
		return errors.New("config: ffmpeg cannot be empty")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("config: log_format must be text or json: %q", c.LogFormat)
	}

	return nil
}

// setupLogging points the global logrus logger at w with the configured
// level and formatter.
func setupLogging(c Config, w io.Writer) error {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	logrus.SetOutput(w)
	logrus.SetLevel(level)
	if c.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	return nil
}

// RenderOptions converts the finishing defaults for the facade.
func (c Config) RenderOptions() healtone.RenderOptions {
	return healtone.RenderOptions{
		Fade:       c.Fade,
		PeakDBFS:   c.PeakDBFS,
		Noise:      c.Noise,
		NoiseLevel: c.NoiseLevel,
	}
}

// Codec returns the file codec with the configured external tool.
func (c Config) Codec() *healtone.Codec {
	codec := healtone.NewCodec()
	codec.External = external.Decoder{Tool: c.FFmpeg}

	return codec
}

// Sessions returns the built-in sessions followed by those of
// SessionsFile. Names must stay unique across both.
func (c Config) Sessions() (presets.Sessions, error) {
	all := presets.BuiltinSessions()
	if c.SessionsFile == "" {
		return all, nil
	}

	f, err := os.Open(c.SessionsFile)
	if err != nil {
		return nil, fmt.Errorf("sessions: %w", err)
	}
	defer f.Close()

	extra, err := presets.LoadSessions(f)
	if err != nil {
		return nil, fmt.Errorf("sessions %s: %w", c.SessionsFile, err)
	}

	for _, s := range extra {
		if _, err := all.Find(s.Name); err == nil {
			return nil, fmt.Errorf("sessions %s: %q shadows a built-in session", c.SessionsFile, s.Name)
		}
		all = append(all, s)
	}

	return all, nil
}
