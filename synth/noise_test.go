// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"errors"
	"math"
	"testing"

	"github.com/ik5/healtone/audio"
	"github.com/ik5/healtone/internal/audiotest"
)

func TestNoise_DeterministicPerSeed(t *testing.T) {
	t.Parallel()

	for _, kind := range []NoiseKind{White, Pink, Brown} {
		a, err := Noise(kind, 0.5, 8000, 7)
		if err != nil {
			t.Fatalf("Noise(%s) error = %v", kind, err)
		}
		b, _ := Noise(kind, 0.5, 8000, 7)
		c, _ := Noise(kind, 0.5, 8000, 8)

		same, differs := true, false
		for i := range a.Data {
			if a.Data[i] != b.Data[i] {
				same = false
			}
			if a.Data[i] != c.Data[i] {
				differs = true
			}
		}
		if !same {
			t.Errorf("Noise(%s) not reproducible for one seed", kind)
		}
		if !differs {
			t.Errorf("Noise(%s) identical for different seeds", kind)
		}
	}
}

func TestNoise_PeakAndLength(t *testing.T) {
	t.Parallel()

	for _, kind := range []NoiseKind{Pink, Brown} {
		buf, err := Noise(kind, 1, 44100, 1)
		if err != nil {
			t.Fatalf("Noise(%s) error = %v", kind, err)
		}
		if len(buf.Data) != 44100 || buf.Channels != 1 {
			t.Errorf("Noise(%s) = %d samples, %d ch", kind, len(buf.Data), buf.Channels)
		}
		if p := buf.Peak(); math.Abs(p-1) > 1e-12 {
			t.Errorf("Noise(%s) peak = %v, want 1", kind, p)
		}
	}
}

func bandEnergy(data []float64, rate int, lo, hi float64) float64 {
	sum := 0.0
	for f := lo; f < hi; f++ {
		a := audiotest.Amplitude(data, f, rate)
		sum += a * a
	}
	return sum
}

func TestPinkNoise_FallsWithFrequency(t *testing.T) {
	t.Parallel()

	const rate = 44100
	pink, err := PinkNoise(1, rate, 3)
	if err != nil {
		t.Fatalf("PinkNoise() error = %v", err)
	}
	white, _ := WhiteNoise(1, rate, 3)

	// Equal-width bands 50x apart: pink loses about 17 dB, white stays flat.
	pinkRatio := bandEnergy(pink.Data, rate, 100, 200) / bandEnergy(pink.Data, rate, 5000, 5100)
	whiteRatio := bandEnergy(white.Data, rate, 100, 200) / bandEnergy(white.Data, rate, 5000, 5100)

	if pinkRatio < 10 {
		t.Errorf("pink low/high energy ratio = %v, want > 10", pinkRatio)
	}
	if whiteRatio > 3 || whiteRatio < 1.0/3 {
		t.Errorf("white low/high energy ratio = %v, want ≈1", whiteRatio)
	}
}

func TestNoise_InvalidParameters(t *testing.T) {
	t.Parallel()

	if _, err := Noise(NoNoise, 1, 44100, 1); !errors.Is(err, audio.ErrInvalidParameter) {
		t.Errorf("Noise(none) error = %v", err)
	}
	if _, err := PinkNoise(0, 44100, 1); !errors.Is(err, audio.ErrInvalidParameter) {
		t.Errorf("PinkNoise(0s) error = %v", err)
	}
	if _, err := BrownNoise(1, 0, 1); !errors.Is(err, audio.ErrInvalidParameter) {
		t.Errorf("BrownNoise(0 Hz) error = %v", err)
	}
	if _, err := ParseNoiseKind("purple"); !errors.Is(err, audio.ErrInvalidParameter) {
		t.Errorf("ParseNoiseKind(purple) error = %v", err)
	}

	var k NoiseKind
	if err := k.UnmarshalText([]byte("Brown")); err != nil || k != Brown {
		t.Errorf("UnmarshalText(Brown) = %v, %v", k, err)
	}
	if text, err := Pink.MarshalText(); err != nil || string(text) != "pink" {
		t.Errorf("MarshalText() = %q, %v", text, err)
	}
}

func TestLayer(t *testing.T) {
	t.Parallel()

	tone := &audio.Buffer{Data: []float64{1, -1, 1, -1, 1, -1}, SampleRate: 100, Channels: 2}
	noise := &audio.Buffer{Data: []float64{0.5, 0.5}, SampleRate: 100, Channels: 1}

	out, err := Layer(tone, noise, 0.25)
	if err != nil {
		t.Fatalf("Layer() error = %v", err)
	}

	// Mono noise reaches both ears; past its end only the tone remains.
	want := []float64{0.875, -0.625, 0.875, -0.625, 0.75, -0.75}
	for i := range want {
		if math.Abs(out.Data[i]-want[i]) > 1e-12 {
			t.Errorf("out[%d] = %v, want %v", i, out.Data[i], want[i])
		}
	}
	if tone.Data[0] != 1 {
		t.Error("Layer() modified its input")
	}
}

func TestLayer_InvalidParameters(t *testing.T) {
	t.Parallel()

	tone := &audio.Buffer{Data: []float64{0, 0}, SampleRate: 100, Channels: 1}
	noise := &audio.Buffer{Data: []float64{0, 0}, SampleRate: 200, Channels: 1}

	if _, err := Layer(tone, noise, 0.1); !errors.Is(err, audio.ErrInvalidParameter) {
		t.Errorf("Layer(rate mismatch) error = %v", err)
	}
	noise.SampleRate = 100
	if _, err := Layer(tone, noise, 1.5); !errors.Is(err, audio.ErrInvalidParameter) {
		t.Errorf("Layer(level 1.5) error = %v", err)
	}
}
