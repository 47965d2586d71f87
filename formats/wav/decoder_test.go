// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/healtone/audio"
)

// createWAVFile builds a canonical PCM WAV in memory. extra chunks are
// inserted between fmt and data.
func createWAVFile(sampleRate, channels, bitsPerSample, formatTag int, samples []int, extra ...[]byte) []byte {
	bytesPer := bitsPerSample / 8
	data := new(bytes.Buffer)
	for _, s := range samples {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(int32(s)))
		data.Write(b[:bytesPer])
	}

	body := new(bytes.Buffer)
	body.WriteString("WAVE")
	body.WriteString("fmt ")
	binary.Write(body, binary.LittleEndian, uint32(16))
	binary.Write(body, binary.LittleEndian, uint16(formatTag))
	binary.Write(body, binary.LittleEndian, uint16(channels))
	binary.Write(body, binary.LittleEndian, uint32(sampleRate))
	binary.Write(body, binary.LittleEndian, uint32(sampleRate*channels*bytesPer))
	binary.Write(body, binary.LittleEndian, uint16(channels*bytesPer))
	binary.Write(body, binary.LittleEndian, uint16(bitsPerSample))
	for _, e := range extra {
		body.Write(e)
	}
	body.WriteString("data")
	binary.Write(body, binary.LittleEndian, uint32(data.Len()))
	body.Write(data.Bytes())

	out := new(bytes.Buffer)
	out.WriteString("RIFF")
	binary.Write(out, binary.LittleEndian, uint32(body.Len()))
	out.Write(body.Bytes())

	return out.Bytes()
}

func readAll(t *testing.T, data []byte) *audio.Buffer {
	t.Helper()

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer src.Close()

	buf, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	return buf
}

func TestDecoder_BitDepths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bitDepth int
		samples  []int
		want     []float64
	}{
		{"16-bit", 16, []int{0, 16384, -16384, 32767, -32768}, []float64{0, 0.5, -0.5, 1, -1}},
		{"24-bit", 24, []int{0, 4194304, -4194304, 8388607}, []float64{0, 0.5, -0.5, 1}},
		{"32-bit", 32, []int{0, 1 << 30, -(1 << 30), math.MaxInt32}, []float64{0, 0.5, -0.5, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := readAll(t, createWAVFile(8000, 1, tt.bitDepth, formatPCM, tt.samples))
			if buf.SampleRate != 8000 || buf.Channels != 1 {
				t.Fatalf("got %d Hz, %d ch", buf.SampleRate, buf.Channels)
			}
			if len(buf.Data) != len(tt.want) {
				t.Fatalf("got %d samples, want %d", len(buf.Data), len(tt.want))
			}
			for i, w := range tt.want {
				if math.Abs(buf.Data[i]-w) > 1e-4 {
					t.Errorf("sample %d = %v, want %v", i, buf.Data[i], w)
				}
			}
		})
	}
}

func TestDecoder_Stereo(t *testing.T) {
	t.Parallel()

	buf := readAll(t, createWAVFile(44100, 2, 16, formatPCM, []int{1000, -1000, 2000, -2000}))
	if buf.Channels != 2 || buf.Frames() != 2 {
		t.Fatalf("got %d ch x %d frames, want 2 x 2", buf.Channels, buf.Frames())
	}
	if buf.Data[0] <= 0 || buf.Data[1] >= 0 {
		t.Errorf("channels swapped: %v", buf.Data)
	}
}

func TestDecoder_SkipsUnknownChunks(t *testing.T) {
	t.Parallel()

	junk := append([]byte("JUNK"), 4, 0, 0, 0, 0, 0, 0, 0)
	buf := readAll(t, createWAVFile(16000, 1, 16, formatPCM, []int{100, 200, 300}, junk))
	if len(buf.Data) != 3 {
		t.Errorf("got %d samples, want 3", len(buf.Data))
	}
}

func TestDecoder_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"not riff", []byte("this is not a wav file at all, not even close......"), ErrNotWavFile},
		{"empty", nil, ErrNotWavFile},
		{"8-bit", createWAVFile(8000, 1, 8, formatPCM, []int{1, 2}), ErrBitDepth},
		{"float", createWAVFile(8000, 1, 32, 3, []int{1, 2}), ErrNotPCM},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, tt.want) {
				t.Fatalf("Decode() error = %v, want %v", err, tt.want)
			}
			if !errors.Is(err, audio.ErrUnsupportedFormat) {
				t.Errorf("Decode() error = %v does not match ErrUnsupportedFormat", err)
			}
		})
	}
}

func TestDecoder_NonSeekableReader(t *testing.T) {
	t.Parallel()

	data := createWAVFile(8000, 1, 16, formatPCM, []int{5, 6, 7, 8})
	src, err := Decoder{}.Decode(io.MultiReader(bytes.NewReader(data)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	buf, err := audio.ReadAll(src)
	if err != nil {
		t.Fatal(err)
	}
	if len(buf.Data) != 4 {
		t.Errorf("got %d samples, want 4", len(buf.Data))
	}
}

func TestSource_ReadSamples_Chunked(t *testing.T) {
	t.Parallel()

	samples := make([]int, 1000)
	for i := range samples {
		samples[i] = i
	}
	src, err := Decoder{}.Decode(bytes.NewReader(createWAVFile(8000, 1, 16, formatPCM, samples)))
	if err != nil {
		t.Fatal(err)
	}

	total := 0
	dst := make([]float32, 64)
	for {
		n, err := src.ReadSamples(dst)
		total += n
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	if total != 1000 {
		t.Errorf("read %d samples, want 1000", total)
	}
}

func BenchmarkDecoder_ReadAll(b *testing.B) {
	samples := make([]int, 48000*2)
	for i := range samples {
		samples[i] = (i * 37) % 65535
	}
	data := createWAVFile(48000, 2, 16, formatPCM, samples)

	b.ReportAllocs()
	for b.Loop() {
		src, err := Decoder{}.Decode(bytes.NewReader(data))
		if err != nil {
			b.Fatal(err)
		}
		if _, err := audio.ReadAll(src); err != nil {
			b.Fatal(err)
		}
	}
}
