// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"math"
)

// Buffer is an in-memory block of interleaved samples. Processing is done in
// float64; BitDepth is only a hint for export.
//
// Stages treat a Buffer they receive as read-only and return a new one.
type Buffer struct {
	Data       []float64
	SampleRate int
	Channels   int
	BitDepth   int
}

// NewBuffer allocates a silent buffer of the given number of frames.
func NewBuffer(sampleRate, channels, frames int) (*Buffer, error) {
	if sampleRate <= 0 {
		return nil, InvalidParameter("sample rate must be > 0: %d", sampleRate)
	}
	if channels <= 0 {
		return nil, InvalidParameter("channels must be > 0: %d", channels)
	}
	if frames < 0 {
		return nil, InvalidParameter("frames must be >= 0: %d", frames)
	}

	return &Buffer{
		Data:       make([]float64, frames*channels),
		SampleRate: sampleRate,
		Channels:   channels,
	}, nil
}

// Validate reports whether the buffer header is usable.
func (b *Buffer) Validate() error {
	if b == nil {
		return InvalidParameter("nil buffer")
	}
	if b.SampleRate <= 0 {
		return InvalidParameter("sample rate must be > 0: %d", b.SampleRate)
	}
	if b.Channels <= 0 {
		return InvalidParameter("channels must be > 0: %d", b.Channels)
	}
	if len(b.Data)%b.Channels != 0 {
		return fmt.Errorf("%w: %d samples for %d channels", ErrInvalidDstSize, len(b.Data), b.Channels)
	}

	return nil
}

func (b *Buffer) Frames() int {
	if b.Channels == 0 {
		return 0
	}
	return len(b.Data) / b.Channels
}

// Duration in seconds.
func (b *Buffer) Duration() float64 {
	if b.SampleRate == 0 {
		return 0
	}
	return float64(b.Frames()) / float64(b.SampleRate)
}

func (b *Buffer) Clone() *Buffer {
	out := *b
	out.Data = make([]float64, len(b.Data))
	copy(out.Data, b.Data)

	return &out
}

// Channel returns a de-interleaved copy of channel c.
func (b *Buffer) Channel(c int) []float64 {
	frames := b.Frames()
	out := make([]float64, frames)
	for f := range frames {
		out[f] = b.Data[f*b.Channels+c]
	}

	return out
}

// Peak is the largest absolute sample value across all channels.
func (b *Buffer) Peak() float64 {
	peak := 0.0
	for _, v := range b.Data {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}

	return peak
}

// Interleave builds a buffer from equally long per-channel slices.
func Interleave(sampleRate int, channels ...[]float64) (*Buffer, error) {
	if len(channels) == 0 {
		return nil, InvalidParameter("no channels to interleave")
	}

	frames := len(channels[0])
	for i, ch := range channels {
		if len(ch) != frames {
			return nil, InvalidParameter("channel %d has %d frames, want %d", i, len(ch), frames)
		}
	}

	out, err := NewBuffer(sampleRate, len(channels), frames)
	if err != nil {
		return nil, err
	}

	n := len(channels)
	for c, ch := range channels {
		for f, v := range ch {
			out.Data[f*n+c] = v
		}
	}

	return out, nil
}

// Source returns a streaming view over the buffer. The view does not copy
// Data, so the buffer must not be modified while it is read.
func (b *Buffer) Source() Source {
	return &bufferSource{buf: b}
}

type bufferSource struct {
	buf *Buffer
	pos int
}

func (s *bufferSource) SampleRate() int { return s.buf.SampleRate }
func (s *bufferSource) Channels() int   { return s.buf.Channels }
func (s *bufferSource) BufSize() int    { return 4096 }
func (s *bufferSource) Close() error    { return nil }

func (s *bufferSource) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.buf.Channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if s.pos >= len(s.buf.Data) {
		return 0, io.EOF
	}

	n := copyToFloat32(dst, s.buf.Data[s.pos:])
	s.pos += n

	if s.pos >= len(s.buf.Data) {
		return n, io.EOF
	}

	return n, nil
}

func copyToFloat32(dst []float32, src []float64) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = float32(src[i])
	}

	return n
}

// ReadAll drains src into a Buffer. It does not close src.
func ReadAll(src Source) (*Buffer, error) {
	channels := src.Channels()
	if channels <= 0 {
		return nil, InvalidParameter("source reports %d channels", channels)
	}

	size := src.BufSize()
	if size < channels {
		size = 4096
	}
	size -= size % channels
	if size == 0 {
		size = channels
	}

	out := &Buffer{
		SampleRate: src.SampleRate(),
		Channels:   channels,
	}

	tmp := make([]float32, size)
	for {
		n, err := src.ReadSamples(tmp)
		for i := range n {
			out.Data = append(out.Data, float64(tmp[i]))
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading samples: %w", err)
		}
		if n == 0 {
			// A source that neither advances nor reports EOF would spin forever.
			break
		}
	}

	// Drop a trailing partial frame from a truncated stream.
	out.Data = out.Data[:len(out.Data)-len(out.Data)%channels]

	return out, nil
}
