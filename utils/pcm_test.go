// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestFloatToPCM(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    float64
		bitDepth int
		want     int
	}{
		{name: "zero 16", input: 0, bitDepth: 16, want: 0},
		{name: "full scale 16", input: 1, bitDepth: 16, want: math.MaxInt16},
		{name: "negative full scale 16 is symmetric", input: -1, bitDepth: 16, want: -math.MaxInt16},
		{name: "half rounds up", input: 0.5, bitDepth: 16, want: 16384}, // 16383.5
		{name: "half negative rounds away from zero", input: -0.5, bitDepth: 16, want: -16384},
		{name: "quarter rounds down", input: 0.25, bitDepth: 16, want: 8192}, // 8191.75
		{name: "small value", input: 0.001, bitDepth: 16, want: 33},        // 32.767
		{name: "clamp above", input: 1.5, bitDepth: 16, want: math.MaxInt16},
		{name: "clamp below", input: -7, bitDepth: 16, want: -math.MaxInt16},
		{name: "full scale 24", input: 1, bitDepth: 24, want: 8388607},
		{name: "half 24", input: 0.5, bitDepth: 24, want: 4194304}, // 4194303.5
		{name: "full scale 32", input: 1, bitDepth: 32, want: math.MaxInt32},
		{name: "negative 32", input: -1, bitDepth: 32, want: -math.MaxInt32},
		{name: "unsupported depth", input: 0.5, bitDepth: 12, want: 0},
		{name: "nan is silence", input: math.NaN(), bitDepth: 16, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FloatToPCM(tt.input, tt.bitDepth); got != tt.want {
				t.Errorf("FloatToPCM(%v, %d) = %d, want %d", tt.input, tt.bitDepth, got, tt.want)
			}
		})
	}
}

// Rounding keeps the round-trip error within half a step; truncation would
// allow up to a full step.
func TestFloatToPCM_RoundTripWithinHalfStep(t *testing.T) {
	t.Parallel()

	for _, depth := range []int{16, 24, 32} {
		step := 1 / float64(PCMScale(depth))
		for x := -1.0; x <= 1.0; x += 0.0137 {
			back := PCMToFloat(FloatToPCM(x, depth), depth)
			if diff := math.Abs(back - x); diff > step/2+1e-12 {
				t.Fatalf("depth %d: x=%v round trip %v, diff %v > half step %v", depth, x, back, diff, step/2)
			}
		}
	}
}

func TestFloatToPCM_Monotonic(t *testing.T) {
	t.Parallel()

	prev := FloatToPCM(-1, 16)
	for x := -0.999; x <= 1.0; x += 0.001 {
		cur := FloatToPCM(x, 16)
		if cur < prev {
			t.Fatalf("not monotonic at %v: %d < %d", x, cur, prev)
		}
		prev = cur
	}
}

func TestPCMToFloat_MostNegativeCodeClamps(t *testing.T) {
	t.Parallel()

	if got := PCMToFloat(math.MinInt16, 16); got != -1 {
		t.Errorf("PCMToFloat(MinInt16) = %v, want -1", got)
	}
}

func TestFloat32ToInt16(t *testing.T) {
	t.Parallel()

	if got := Float32ToInt16(1); got != math.MaxInt16 {
		t.Errorf("Float32ToInt16(1) = %d, want %d", got, math.MaxInt16)
	}
	if got := Float32ToInt16(-2); got != -math.MaxInt16 {
		t.Errorf("Float32ToInt16(-2) = %d, want %d", got, -math.MaxInt16)
	}
}

func TestFloatToPCM_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	allocs := testing.AllocsPerRun(1000, func() {
		_ = FloatToPCM(0.5, 24)
	})
	if allocs > 0 {
		t.Errorf("FloatToPCM allocated %v times, want 0", allocs)
	}
}

func BenchmarkFloatToPCM(b *testing.B) {
	samples := make([]float64, 8000)
	for i := range samples {
		samples[i] = math.Sin(float64(i) * 0.1)
	}
	out := make([]int, len(samples))

	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		for j, s := range samples {
			out[j] = FloatToPCM(s, 24)
		}
	}
}
