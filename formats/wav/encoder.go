// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/healtone/audio"
	"github.com/ik5/healtone/utils"
)

// chunkFrames bounds the integer scratch buffer used while encoding.
const chunkFrames = 8192

// Encode writes buf as signed integer PCM at bitDepth (16, 24 or 32).
// Samples are rounded to the nearest code and clamped to full scale.
// The header is finalized before Encode returns; w is not closed.
func Encode(w io.WriteSeeker, buf *audio.Buffer, bitDepth int) error {
	if err := buf.Validate(); err != nil {
		return err
	}
	if utils.PCMScale(bitDepth) == 0 {
		return fmt.Errorf("%w (got %d)", ErrBitDepth, bitDepth)
	}

	enc := wav.NewEncoder(w, buf.SampleRate, bitDepth, buf.Channels, formatPCM)

	format := &goaudio.Format{NumChannels: buf.Channels, SampleRate: buf.SampleRate}
	size := chunkFrames * buf.Channels
	ib := &goaudio.IntBuffer{
		Format:         format,
		Data:           make([]int, min(size, len(buf.Data))),
		SourceBitDepth: bitDepth,
	}

	// The header is emitted by the first Write, so even an empty buffer
	// goes through one.
	for off := 0; off == 0 || off < len(buf.Data); off += size {
		chunk := buf.Data[off:min(off+size, len(buf.Data))]
		ib.Data = ib.Data[:len(chunk)]
		for i, v := range chunk {
			ib.Data[i] = utils.FloatToPCM(v, bitDepth)
		}

		if err := enc.Write(ib); err != nil {
			return &audio.IOError{Op: "write", Err: err}
		}
	}

	if err := enc.Close(); err != nil {
		return &audio.IOError{Op: "write", Err: err}
	}

	return nil
}
