// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"

	"github.com/ik5/healtone/audio"
)

var (
	// ErrNotAiffFile indicates the file is not a valid AIFF file
	ErrNotAiffFile = fmt.Errorf("%w: not an AIFF file", audio.ErrUnsupportedFormat)

	// ErrBitDepth indicates a sample size other than 16, 24 or 32 bits
	ErrBitDepth = fmt.Errorf("%w: only 16, 24 and 32-bit AIFF is supported", audio.ErrUnsupportedFormat)

	// ErrUnsupportedAiffLayout indicates a COMM chunk without a usable format
	ErrUnsupportedAiffLayout = fmt.Errorf("%w: unsupported AIFF layout", audio.ErrUnsupportedFormat)
)
