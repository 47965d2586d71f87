// SPDX-License-Identifier: EPL-2.0

package healtone

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ik5/healtone/audio"
	"github.com/ik5/healtone/formats/aiff"
	"github.com/ik5/healtone/formats/external"
	"github.com/ik5/healtone/formats/mp3"
	"github.com/ik5/healtone/formats/vorbis"
	"github.com/ik5/healtone/formats/wav"
)

// Codec resolves files to decoders: natively by extension first, then
// through the external tool.
type Codec struct {
	Registry *audio.Registry
	External external.Decoder
}

// NewCodec registers every native decoder and uses ffmpeg as fallback.
func NewCodec() *Codec {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})

	return &Codec{Registry: reg}
}

// Decode reads the whole file at path with the default Codec.
func Decode(path string) (*audio.Buffer, error) {
	return NewCodec().Decode(context.Background(), path)
}

// Encode writes buf to path with the default Codec.
func Encode(buf *audio.Buffer, path string, bitDepth int) error {
	return NewCodec().Encode(buf, path, bitDepth)
}

// Decode reads the file at path into memory. A native decoder that rejects
// the content hands it to the external tool when that is installed.
func (c *Codec) Decode(ctx context.Context, path string) (*audio.Buffer, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &audio.IOError{Op: "open", Path: path, Err: err}
	}

	dec, ext, ok := c.Registry.Lookup(path)

	logrus.WithFields(logrus.Fields{
		"function": "Decode",
		"path":     path,
		"format":   ext,
		"native":   ok,
	}).Debug("Decoding file")

	if ok {
		buf, err := c.decodeNative(dec, path)
		if err == nil || !errors.Is(err, audio.ErrUnsupportedFormat) || !c.External.Available() {
			return buf, err
		}

		logrus.WithFields(logrus.Fields{
			"function": "Decode",
			"path":     path,
			"error":    err.Error(),
		}).Info("Native decoder refused file, trying external tool")
	}

	src, err := c.External.DecodeFile(ctx, path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return collect(src, path)
}

func (c *Codec) decodeNative(dec audio.Decoder, path string) (*audio.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &audio.IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return collect(src, path)
}

func collect(src audio.Source, path string) (*audio.Buffer, error) {
	buf, err := audio.ReadAll(src)
	if err != nil {
		return nil, &audio.IOError{Op: "read", Path: path, Err: err}
	}
	if bd, ok := src.(interface{ BitDepth() int }); ok {
		buf.BitDepth = bd.BitDepth()
	} else {
		buf.BitDepth = 16
	}

	logrus.WithFields(logrus.Fields{
		"function":    "Decode",
		"path":        path,
		"sample_rate": buf.SampleRate,
		"channels":    buf.Channels,
		"duration":    buf.Duration(),
	}).Debug("Decoded file")

	return buf, nil
}

// Encode writes buf as integer PCM WAV. bitDepth 0 uses buf.BitDepth.
func (c *Codec) Encode(buf *audio.Buffer, path string, bitDepth int) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
	default:
		return audio.UnsupportedFormat("only WAV output is supported: %s", path)
	}
	if err := buf.Validate(); err != nil {
		return err
	}
	if bitDepth == 0 {
		bitDepth = buf.BitDepth
	}

	f, err := os.Create(path)
	if err != nil {
		return &audio.IOError{Op: "create", Path: path, Err: err}
	}

	if err := wav.Encode(f, buf, bitDepth); err != nil {
		f.Close()
		os.Remove(path)

		var ioErr *audio.IOError
		if errors.As(err, &ioErr) {
			ioErr.Path = path
		}
		return err
	}
	if err := f.Close(); err != nil {
		return &audio.IOError{Op: "close", Path: path, Err: err}
	}

	logrus.WithFields(logrus.Fields{
		"function":  "Encode",
		"path":      path,
		"bit_depth": bitDepth,
		"frames":    buf.Frames(),
	}).Info("Wrote audio file")

	return nil
}

// Formats lists the extensions decoded without the external tool.
func (c *Codec) Formats() []string {
	return c.Registry.Formats()
}
