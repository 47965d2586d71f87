// SPDX-License-Identifier: EPL-2.0

package external

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ik5/healtone/audio"
	"github.com/ik5/healtone/formats/wav"
)

// DefaultTool is the decoder binary looked up on PATH.
const DefaultTool = "ffmpeg"

// Decoder converts any input the external tool understands into 16-bit PCM
// WAV in a temporary directory and decodes that natively. The intermediate
// files are removed before Decode returns.
type Decoder struct {
	// Tool is the binary name or path; empty means DefaultTool.
	Tool string
	// SampleRate and Channels force a conversion; zero keeps the input's.
	SampleRate int
	Channels   int
}

func (d Decoder) tool() string {
	if d.Tool == "" {
		return DefaultTool
	}
	return d.Tool
}

// Available reports whether the default tool is on PATH.
func Available() bool {
	return Decoder{}.Available()
}

// Available reports whether d's tool can be found.
func (d Decoder) Available() bool {
	_, err := exec.LookPath(d.tool())
	return err == nil
}

// Decode copies r to a temporary file and converts it.
func (d Decoder) Decode(r io.Reader) (audio.Source, error) {
	return d.DecodeContext(context.Background(), r)
}

// DecodeContext is Decode with cancellation of the subprocess.
func (d Decoder) DecodeContext(ctx context.Context, r io.Reader) (audio.Source, error) {
	dir, err := os.MkdirTemp("", "healtone-decode-")
	if err != nil {
		return nil, &audio.IOError{Op: "mkdir", Path: os.TempDir(), Err: err}
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "input")
	f, err := os.Create(in)
	if err != nil {
		return nil, &audio.IOError{Op: "create", Path: in, Err: err}
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return nil, &audio.IOError{Op: "write", Path: in, Err: err}
	}
	if err := f.Close(); err != nil {
		return nil, &audio.IOError{Op: "close", Path: in, Err: err}
	}

	return d.convert(ctx, in, dir)
}

// DecodeFile converts the file at path without copying it first.
func (d Decoder) DecodeFile(ctx context.Context, path string) (audio.Source, error) {
	dir, err := os.MkdirTemp("", "healtone-decode-")
	if err != nil {
		return nil, &audio.IOError{Op: "mkdir", Path: os.TempDir(), Err: err}
	}
	defer os.RemoveAll(dir)

	return d.convert(ctx, path, dir)
}

// Args returns the tool's command line for converting in to out.
func (d Decoder) Args(in, out string) []string {
	args := []string{"-hide_banner", "-loglevel", "error", "-i", in, "-vn", "-f", "wav", "-acodec", "pcm_s16le"}
	if d.SampleRate > 0 {
		args = append(args, "-ar", strconv.Itoa(d.SampleRate))
	}
	if d.Channels > 0 {
		args = append(args, "-ac", strconv.Itoa(d.Channels))
	}

	return append(args, "-y", out)
}

func (d Decoder) convert(ctx context.Context, in, dir string) (audio.Source, error) {
	tool := d.tool()
	bin, err := exec.LookPath(tool)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "convert",
			"tool":     tool,
		}).Warn("External decoder not found")
		return nil, audio.UnsupportedFormat("no native decoder for %s and %s is not installed", filepath.Base(in), tool)
	}

	out := filepath.Join(dir, "decoded.wav")
	args := d.Args(in, out)

	logrus.WithFields(logrus.Fields{
		"function": "convert",
		"tool":     bin,
		"args":     strings.Join(args, " "),
	}).Debug("Running external decoder")

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s: %w", tool, ctxErr)
		}

		logrus.WithFields(logrus.Fields{
			"function": "convert",
			"tool":     tool,
			"error":    err.Error(),
			"stderr":   lastLine(stderr.String()),
		}).Error("External decoder failed")
		return nil, audio.UnsupportedFormat("%s could not decode %s: %v: %s", tool, filepath.Base(in), err, lastLine(stderr.String()))
	}

	data, err := os.ReadFile(out)
	if err != nil {
		return nil, &audio.IOError{Op: "read", Path: out, Err: err}
	}

	return wav.Decoder{}.Decode(bytes.NewReader(data))
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
