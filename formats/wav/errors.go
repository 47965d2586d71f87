// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"

	"github.com/ik5/healtone/audio"
)

var (
	// ErrNotWavFile indicates the input has no RIFF/WAVE header.
	ErrNotWavFile = fmt.Errorf("%w: not a WAV file", audio.ErrUnsupportedFormat)

	// ErrNotPCM indicates a WAV file with a non-integer encoding such as
	// IEEE float or ADPCM.
	ErrNotPCM = fmt.Errorf("%w: only integer PCM WAV is supported", audio.ErrUnsupportedFormat)

	// ErrBitDepth indicates a PCM width other than 16, 24 or 32 bits.
	ErrBitDepth = fmt.Errorf("%w: only 16, 24 and 32-bit PCM are supported", audio.ErrUnsupportedFormat)
)
