// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/healtone"
	"github.com/ik5/healtone/audio"
	"github.com/ik5/healtone/internal/audiotest"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr, noEnv)

	return code, stdout.String(), stderr.String()
}

func TestRun_Usage(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  string
	}{
		{"no command", nil, 2, "Commands:"},
		{"unknown command", []string{"play"}, 2, `unknown command "play"`},
		{"bad global flag", []string{"-volume", "11", "tone"}, 2, "flag provided but not defined"},
		{"bad command flag", []string{"tone", "-volume", "11"}, 2, "flag provided but not defined"},
		{"stray argument", []string{"list", "extra"}, 2, `unexpected argument "extra"`},
		{"mix without music", []string{"mix", "-o", "x.wav"}, 2, "-music and -o are required"},
		{"session without name", []string{"session"}, 2, "-name is required"},
		{"bad frequency list", []string{"sequence", "-freqs", "396,abc"}, 2, `bad frequency "abc"`},
		{"bad log level", []string{"-log-level", "chatty", "list"}, 1, "Configuration error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, tt.args...)
			assert.Equal(t, tt.wantCode, code)
			assert.Contains(t, stderr, tt.wantErr)
		})
	}
}

func TestRun_Help(t *testing.T) {
	code, stdout, _ := runCLI(t, "-h")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "solfeggio")

	code, _, stderr := runCLI(t, "tone", "-h")
	assert.Equal(t, 0, code)
	assert.Contains(t, stderr, "-freq")
}

func TestRun_List(t *testing.T) {
	code, stdout, _ := runCLI(t, "list")
	require.Equal(t, 0, code)

	for _, want := range []string{"theta", "schumann", "528 Hz", "Love/Miracle", "stress-relief", "subliminal", "binaural_optimal", "wav"} {
		assert.Contains(t, stdout, want)
	}
}

func TestRun_Tone(t *testing.T) {
	out := filepath.Join(t.TempDir(), "tone.wav")

	code, stdout, stderr := runCLI(t, "tone", "-freq", "528", "-duration", "0.5", "-fade", "0.1", "-harmonics", "warm", "-o", out)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Wrote "+out)

	buf, err := healtone.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, 44100, buf.SampleRate)
	assert.Equal(t, 1, buf.Channels)
	assert.Equal(t, 22050, buf.Frames())
	assert.Equal(t, 528.0, audiotest.DominantFrequency(buf.Data, 44100, 500, 560, 1))
}

func TestRun_BinauralHighQuality(t *testing.T) {
	out := filepath.Join(t.TempDir(), "beat.wav")

	code, _, stderr := runCLI(t, "binaural", "-carrier", "300", "-beat", "8", "-duration", "0.25", "-quality", "high", "-o", out)
	require.Equal(t, 0, code, stderr)

	buf, err := healtone.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, 48000, buf.SampleRate)
	assert.Equal(t, 2, buf.Channels)
	assert.Equal(t, 24, buf.BitDepth)
}

func TestRun_ConfigFileSetsDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, "healtone.yaml", "quality: pro\nfade: 0.05\n")
	out := filepath.Join(dir, "iso.wav")

	code, _, stderr := runCLI(t, "-config", cfg, "isochronic", "-freq", "200", "-pulse", "10", "-duration", "0.2", "-o", out)
	require.Equal(t, 0, code, stderr)

	buf, err := healtone.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, 96000, buf.SampleRate)
	assert.Equal(t, 32, buf.BitDepth)
}

func TestRun_InvalidParameter(t *testing.T) {
	code, _, stderr := runCLI(t, "tone", "-freq", "-5", "-duration", "1", "-o", filepath.Join(t.TempDir(), "x.wav"))
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid parameter")

	code, _, stderr = runCLI(t, "brainwave", "-name", "epsilon")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "epsilon")
}

func TestRun_SessionAndSequence(t *testing.T) {
	dir := t.TempDir()

	out := filepath.Join(dir, "session.wav")
	code, _, stderr := runCLI(t, "session", "-name", "heart-coherence", "-duration", "0.3", "-fade", "0.05", "-o", out)
	require.Equal(t, 0, code, stderr)
	buf, err := healtone.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, 2, buf.Channels)

	out = filepath.Join(dir, "sequence.wav")
	code, _, stderr = runCLI(t, "sequence", "-freqs", "396, 528", "-per-tone", "0.2", "-fade", "0.02", "-o", out)
	require.Equal(t, 0, code, stderr)
	buf, err = healtone.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, 2*8820, buf.Frames())
}

func TestRun_Solfeggio(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "solfeggio")

	code, stdout, stderr := runCLI(t, "solfeggio", "-dir", dir, "-duration", "0.1", "-fade", "0.01", "-workers", "3")
	require.Equal(t, 0, code, stderr)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 9)
	assert.FileExists(t, filepath.Join(dir, "solfeggio_963hz.wav"))
	assert.Contains(t, stdout, "solfeggio_174hz.wav")
}

func TestRun_MixAndConvert(t *testing.T) {
	dir := t.TempDir()

	music, err := audio.NewBuffer(32000, 2, 32000)
	require.NoError(t, err)
	for f := range music.Frames() {
		v := 0.3 * math.Sin(2*math.Pi*220*float64(f)/32000)
		music.Data[2*f], music.Data[2*f+1] = v, -v
	}
	musicPath := filepath.Join(dir, "music.wav")
	require.NoError(t, healtone.Encode(music, musicPath, 16))

	mixed := filepath.Join(dir, "mixed.wav")
	code, stdout, stderr := runCLI(t, "mix", "-music", musicPath, "-o", mixed,
		"-mode", "binaural", "-freq", "400", "-beat", "10", "-level", "binaural-optimal", "-fade", "0.1", "-bits", "24")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "level binaural_optimal")

	buf, err := healtone.Decode(mixed)
	require.NoError(t, err)
	assert.Equal(t, 44100, buf.SampleRate)
	assert.Equal(t, 24, buf.BitDepth)
	assert.Greater(t, audiotest.Amplitude(buf.Channel(1), 410, 44100), 0.05)

	converted := filepath.Join(dir, "mono8k.wav")
	code, _, stderr = runCLI(t, "convert", "-i", mixed, "-o", converted, "-rate", "8000", "-mono")
	require.Equal(t, 0, code, stderr)

	small, err := healtone.Decode(converted)
	require.NoError(t, err)
	assert.Equal(t, 8000, small.SampleRate)
	assert.Equal(t, 1, small.Channels)
	assert.Equal(t, 16, small.BitDepth)
	assert.InDelta(t, buf.Duration(), small.Duration(), 0.01)

	code, _, stderr = runCLI(t, "convert", "-i", filepath.Join(dir, "missing.wav"), "-o", converted)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "missing.wav")
}
