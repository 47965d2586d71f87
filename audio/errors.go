// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrInvalidParameter marks a request that can never succeed as given:
	// non-positive frequency, duration or sample rate, unknown preset names.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrUnsupportedFormat marks a container or bit depth without a codec path.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrIOFailure marks a failed open, read or write of a file.
	ErrIOFailure = errors.New("i/o failure")
)

// IOError carries the operation and path of a failed file access.
// It matches both ErrIOFailure and the underlying error with errors.Is.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() []error {
	return []error{ErrIOFailure, e.Err}
}

// InvalidParameter wraps ErrInvalidParameter with a formatted reason.
func InvalidParameter(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}

// UnsupportedFormat wraps ErrUnsupportedFormat with a formatted reason.
func UnsupportedFormat(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, fmt.Sprintf(format, args...))
}
