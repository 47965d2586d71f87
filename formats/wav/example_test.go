// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"fmt"
	"os"

	"github.com/ik5/healtone/audio"
	"github.com/ik5/healtone/formats/wav"
)

// Example_roundTrip writes a 24-bit file and reads it back.
func Example_roundTrip() {
	f, err := os.CreateTemp("", "healtone-*.wav")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.Remove(f.Name())
	defer f.Close()

	buf, _ := audio.NewBuffer(48000, 2, 4800)
	if err := wav.Encode(f, buf, 24); err != nil {
		fmt.Println(err)
		return
	}

	if _, err := f.Seek(0, 0); err != nil {
		fmt.Println(err)
		return
	}

	src, err := wav.Decoder{}.Decode(f)
	if err != nil {
		fmt.Println(err)
		return
	}
	out, _ := audio.ReadAll(src)

	fmt.Printf("%d Hz, %d channels, %.1f s\n", out.SampleRate, out.Channels, out.Duration())
	// Output:
	// 48000 Hz, 2 channels, 0.1 s
}
