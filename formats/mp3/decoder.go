// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/healtone/audio"
	"github.com/ik5/healtone/utils"
)

// frameReader is the part of gomp3.Decoder the source uses.
type frameReader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

// go-mp3 always produces 16-bit little-endian stereo.
const (
	channels       = 2
	bytesPerSample = 2
	frameBytes     = channels * bytesPerSample
)

type source struct {
	dec        frameReader
	sampleRate int
	buf        []byte
	// pending holds the tail of a read that ended inside a frame.
	pending []byte
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / bytesPerSample }

// ReadSamples returns whole stereo frames only. A read from the decoder
// that splits a frame keeps the remainder for the next call.
func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst)%channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	need := len(dst) * bytesPerSample
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	off := copy(s.buf, s.pending)
	n, err := s.dec.Read(s.buf[off:])
	n += off

	whole := n - n%frameBytes
	s.pending = append(s.pending[:0], s.buf[whole:n]...)

	for i := range whole / bytesPerSample {
		v := int16(binary.LittleEndian.Uint16(s.buf[bytesPerSample*i:]))
		dst[i] = float32(utils.PCMToFloat(int(v), 16))
	}

	if err != nil && err != io.EOF {
		return whole / bytesPerSample, fmt.Errorf("mp3: %w", err)
	}

	return whole / bytesPerSample, err
}

// Decoder reads MPEG-1/2 Layer III streams.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, audio.UnsupportedFormat("mp3: %v", err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, 8192),
	}, nil
}
