// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"errors"
	"math"
	"testing"

	"github.com/ik5/healtone/audio"
	"github.com/ik5/healtone/internal/audiotest"
)

func TestBinaural_ChannelsCarrySeparateFrequencies(t *testing.T) {
	t.Parallel()

	const rate = 48000
	buf, err := Binaural(432, 6, 1, rate, None)
	if err != nil {
		t.Fatalf("Binaural() error = %v", err)
	}
	if buf.Channels != 2 {
		t.Fatalf("Binaural() channels = %d, want 2", buf.Channels)
	}

	left, right := buf.Channel(0), buf.Channel(1)

	if f := audiotest.DominantFrequency(left, rate, 400, 470, 1); f != 432 {
		t.Errorf("left peak = %v Hz, want 432", f)
	}
	if f := audiotest.DominantFrequency(right, rate, 400, 470, 1); f != 438 {
		t.Errorf("right peak = %v Hz, want 438", f)
	}

	// No shared peak: each ear is silent at the other's frequency.
	if a := audiotest.Amplitude(left, 438, rate); a > 1e-6 {
		t.Errorf("left amplitude at 438 Hz = %v, want 0", a)
	}
	if a := audiotest.Amplitude(right, 432, rate); a > 1e-6 {
		t.Errorf("right amplitude at 432 Hz = %v, want 0", a)
	}
}

func TestBinaural_SamePhaseAndAmplitude(t *testing.T) {
	t.Parallel()

	buf, err := Binaural(300, 6, 2, 44100, Warm)
	if err != nil {
		t.Fatalf("Binaural() error = %v", err)
	}

	if buf.Data[0] != 0 || buf.Data[1] != 0 {
		t.Errorf("first frame = (%v, %v), want both 0", buf.Data[0], buf.Data[1])
	}

	left, right := buf.Channel(0), buf.Channel(1)
	la := audiotest.Amplitude(left, 300, 44100)
	ra := audiotest.Amplitude(right, 306, 44100)
	if math.Abs(la-ra) > 1e-6 {
		t.Errorf("fundamental amplitudes differ: left %v, right %v", la, ra)
	}
}

func TestBinaural_NyquistKeepsEarsMatched(t *testing.T) {
	t.Parallel()

	// The 8th partial of 2756 Hz fits under 22050 Hz; the one of 2762 Hz does not.
	const rate = 44100
	buf, err := Binaural(2756, 6, 1, rate, Natural)
	if err != nil {
		t.Fatalf("Binaural() error = %v", err)
	}

	left, right := buf.Channel(0), buf.Channel(1)

	la := audiotest.Amplitude(left, 2756, rate)
	ra := audiotest.Amplitude(right, 2762, rate)
	if math.Abs(la-ra) > 1e-6 {
		t.Errorf("fundamental amplitudes differ: left %v, right %v", la, ra)
	}
	if a := audiotest.Amplitude(left, 8*2756, rate); a > 1e-6 {
		t.Errorf("left 8th partial = %v, want dropped with the right ear's", a)
	}

	for _, m := range []float64{2, 5, 7} {
		la := audiotest.Amplitude(left, m*2756, rate)
		ra := audiotest.Amplitude(right, m*2762, rate)
		if math.Abs(la-ra) > 1e-6 {
			t.Errorf("partial %v amplitudes differ: left %v, right %v", m, la, ra)
		}
	}
}

func TestBinaural_ZeroBeatIsDualMono(t *testing.T) {
	t.Parallel()

	buf, err := Binaural(200, 0, 0.5, 44100, None)
	if err != nil {
		t.Fatalf("Binaural() error = %v", err)
	}

	for f := range buf.Frames() {
		if buf.Data[2*f] != buf.Data[2*f+1] {
			t.Fatalf("frame %d differs between ears", f)
		}
	}
}

func TestBinaural_InvalidParameters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		carrier, beat float64
	}{
		{"negative beat", 432, -1},
		{"nan beat", 432, math.NaN()},
		{"right ear not positive", -10, 5},
		{"zero carrier", 0, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := Binaural(tt.carrier, tt.beat, 1, 44100, None); !errors.Is(err, audio.ErrInvalidParameter) {
				t.Errorf("Binaural(%v, %v) error = %v, want ErrInvalidParameter", tt.carrier, tt.beat, err)
			}
		})
	}
}

func TestLayered_WeightsBaseIntoBothEars(t *testing.T) {
	t.Parallel()

	base := &audio.Buffer{Data: []float64{1, 1}, SampleRate: 8000, Channels: 1}
	pair := &audio.Buffer{Data: []float64{0.5, -0.5, 0.5, -0.5}, SampleRate: 8000, Channels: 2}

	out, err := Layered(base, pair, 0.6)
	if err != nil {
		t.Fatalf("Layered() error = %v", err)
	}

	want := []float64{0.6 + 0.2, 0.6 - 0.2, 0.6 + 0.2, 0.6 - 0.2}
	for i := range want {
		if math.Abs(out.Data[i]-want[i]) > 1e-12 {
			t.Errorf("out[%d] = %v, want %v", i, out.Data[i], want[i])
		}
	}
}

func TestLayered_RejectsMismatch(t *testing.T) {
	t.Parallel()

	base := &audio.Buffer{Data: []float64{1}, SampleRate: 8000, Channels: 1}
	pair := &audio.Buffer{Data: []float64{0, 0}, SampleRate: 16000, Channels: 2}

	if _, err := Layered(base, pair, 0.6); !errors.Is(err, audio.ErrInvalidParameter) {
		t.Errorf("Layered() error = %v, want ErrInvalidParameter", err)
	}
	if _, err := Layered(pair, pair, 0.6); !errors.Is(err, audio.ErrInvalidParameter) {
		t.Errorf("Layered(stereo base) error = %v, want ErrInvalidParameter", err)
	}
}
