// SPDX-License-Identifier: EPL-2.0

package healtone_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/healtone"
	"github.com/ik5/healtone/dsp"
	"github.com/ik5/healtone/synth"
)

func ExampleRenderTone() {
	opts := healtone.DefaultRenderOptions()
	opts.Fade = 0.5

	buf, err := healtone.RenderTone(528, 2, synth.Warm, synth.High, opts)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("%d Hz, %d ch, %d-bit, %.1f s, peak %.1f dBFS\n",
		buf.SampleRate, buf.Channels, buf.BitDepth, buf.Duration(), dsp.LinearToDB(buf.Peak()))
	// Output:
	// 48000 Hz, 1 ch, 24-bit, 2.0 s, peak -0.1 dBFS
}

func ExampleRenderBatch() {
	reqs, err := healtone.SolfeggioRequests([]float64{396, 528, 639}, 0.5, synth.None, synth.Standard,
		healtone.DefaultRenderOptions())
	if err != nil {
		fmt.Println(err)
		return
	}

	bufs, err := healtone.RenderBatch(context.Background(), reqs, 2)
	if err != nil {
		fmt.Println(err)
		return
	}

	for i, buf := range bufs {
		fmt.Println(reqs[i].Name, buf.Frames())
	}
	// Output:
	// solfeggio_396hz 22050
	// solfeggio_528hz 22050
	// solfeggio_639hz 22050
}

func ExampleEncode() {
	dir, err := os.MkdirTemp("", "healtone")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(dir)

	buf, err := healtone.RenderBinaural(200, 4, 1, synth.None, synth.Standard, healtone.DefaultRenderOptions())
	if err != nil {
		fmt.Println(err)
		return
	}

	path := filepath.Join(dir, "theta.wav")
	if err := healtone.Encode(buf, path, 16); err != nil {
		fmt.Println(err)
		return
	}

	back, err := healtone.Decode(path)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("%d Hz, %d ch, %d frames\n", back.SampleRate, back.Channels, back.Frames())
	// Output:
	// 44100 Hz, 2 ch, 44100 frames
}
