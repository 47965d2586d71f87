// SPDX-License-Identifier: EPL-2.0

// Package intsource adapts the integer PCM readers of go-audio (wav, aiff)
// to audio.Source.
package intsource

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/healtone/audio"
	"github.com/ik5/healtone/utils"
)

// Reader is the part of the go-audio decoders this package needs.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source streams float32 samples out of an integer PCM Reader.
type Source struct {
	dec        Reader
	sampleRate int
	channels   int
	bitDepth   int
	intBuf     *goaudio.IntBuffer
	done       bool
}

// New wraps dec. bitDepth must be 16, 24 or 32.
func New(dec Reader, sampleRate, channels, bitDepth int) (*Source, error) {
	if utils.PCMScale(bitDepth) == 0 {
		return nil, audio.UnsupportedFormat("%d-bit PCM", bitDepth)
	}
	if sampleRate <= 0 || channels <= 0 {
		return nil, audio.UnsupportedFormat("%d Hz, %d channels", sampleRate, channels)
	}

	return &Source{
		dec:        dec,
		sampleRate: sampleRate,
		channels:   channels,
		bitDepth:   bitDepth,
	}, nil
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BitDepth() int   { return s.bitDepth }
func (s *Source) Close() error    { return nil }

func (s *Source) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}
	return 4096
}

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if s.done {
		return 0, io.EOF
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data: make([]int, len(dst)),
			Format: &goaudio.Format{
				NumChannels: s.channels,
				SampleRate:  s.sampleRate,
			},
			SourceBitDepth: s.bitDepth,
		}
	}
	s.intBuf.Data = s.intBuf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.intBuf)
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("%w", err)
	}

	for i := range n {
		dst[i] = float32(utils.PCMToFloat(signed(s.intBuf.Data[i], s.bitDepth), s.bitDepth))
	}

	// go-audio reports the end of the data chunk as a short or empty read.
	if n == 0 || err == io.EOF {
		s.done = true
		return n, io.EOF
	}

	return n, nil
}

// signed folds a code read as unsigned back into the signed range.
func signed(v, bitDepth int) int {
	switch bitDepth {
	case 24:
		if v > 1<<23-1 {
			v -= 1 << 24
		}
	case 32:
		v = int(int32(v))
	}

	return v
}

// Seekable returns r as an io.ReadSeeker, buffering it in memory when r
// cannot seek. The go-audio decoders need to seek over chunks.
func Seekable(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &audio.IOError{Op: "read", Err: err}
	}

	return bytes.NewReader(data), nil
}
