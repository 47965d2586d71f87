// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/healtone/utils"
)

// Resampler streams from src to a target sample rate using Catmull-Rom
// (cubic) interpolation. It works on interleaved samples and preserves the
// channel count. Edge frames are duplicated so the first and last source
// frames are reproduced exactly.
//
// There is no anti-alias filter: when downsampling, content above the
// target Nyquist folds back. Use Resample on a Buffer to band-limit first.
type Resampler struct {
	src      Source
	dstRate  int
	step     float64 // source frames per output frame
	channels int

	// win[0..3] hold source frames base-1, base, base+1, base+2
	win  [4][]float32
	base int
	read int // real source frames pulled so far
	pos  float64

	started bool
	eof     bool
	frame   []float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		step:     float64(src.SampleRate()) / float64(dstRate),
		channels: channels,
		frame:    make([]float32, channels),
	}
	for i := range r.win {
		r.win[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// next pulls one frame from the source into r.frame.
func (r *Resampler) next() (bool, error) {
	if r.eof {
		return false, nil
	}

	n, err := r.src.ReadSamples(r.frame)
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("%w", err)
	}
	if err == io.EOF {
		r.eof = true
	}
	if n < r.channels {
		r.eof = true
		return false, nil
	}

	r.read++
	return true, nil
}

func (r *Resampler) prime() (bool, error) {
	r.started = true

	ok, err := r.next()
	if err != nil || !ok {
		return false, err
	}
	copy(r.win[0], r.frame)
	copy(r.win[1], r.frame)

	for i := 2; i < 4; i++ {
		ok, err = r.next()
		if err != nil {
			return false, err
		}
		if ok {
			copy(r.win[i], r.frame)
		} else {
			copy(r.win[i], r.win[i-1])
		}
	}

	return true, nil
}

func (r *Resampler) advance() error {
	copy(r.win[0], r.win[1])
	copy(r.win[1], r.win[2])
	copy(r.win[2], r.win[3])
	r.base++

	ok, err := r.next()
	if err != nil {
		return err
	}
	if ok {
		copy(r.win[3], r.frame)
	}
	// Otherwise win[3] still equals the new win[2].

	return nil
}

// ReadSamples produces dst samples at the target rate.
// dst length must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.started {
		ok, err := r.prime()
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, io.EOF
		}
	}
	if r.read == 0 {
		return 0, io.EOF
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames {
		for r.pos >= 1 {
			r.pos--
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		if r.eof && float64(r.base)+r.pos > float64(r.read-1) {
			return written * r.channels, io.EOF
		}

		x := float32(r.pos)
		out := dst[written*r.channels:]
		for c := range r.channels {
			out[c] = utils.CubicInterpolate(r.win[0][c], r.win[1][c], r.win[2][c], r.win[3][c], x)
		}

		written++
		r.pos += r.step
	}

	return written * r.channels, nil
}

// Resample converts buf to dstRate. A buffer already at dstRate is cloned.
// When downsampling, content above 0.4*dstRate is filtered out first so it
// does not alias. The streaming Resampler does no such filtering.
func Resample(buf *Buffer, dstRate int) (*Buffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	if dstRate <= 0 {
		return nil, InvalidParameter("target sample rate must be > 0: %d", dstRate)
	}
	if buf.SampleRate == dstRate {
		return buf.Clone(), nil
	}

	src := buf
	if dstRate < buf.SampleRate {
		src = bandLimit(buf, dstRate)
	}

	out, err := ReadAll(NewResampler(src.Source(), dstRate))
	if err != nil {
		return nil, fmt.Errorf("resample %d->%d: %w", buf.SampleRate, dstRate, err)
	}
	out.BitDepth = buf.BitDepth

	return out, nil
}
