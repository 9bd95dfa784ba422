// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	// ErrNotAiffFile indicates the stream is not a valid AIFF file
	ErrNotAiffFile = errors.New("not an AIFF file")

	// ErrUnsupportedBitDepth indicates samples that are neither 16 nor 24 bits wide
	ErrUnsupportedBitDepth = errors.New("only 16-bit and 24-bit PCM AIFF is supported")

	// ErrUnsupportedAiffLayout indicates a COMM chunk without a usable format
	ErrUnsupportedAiffLayout = errors.New("unsupported AIFF layout")
)
