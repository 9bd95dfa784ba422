// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff to decode AIFF files.
// AIFF is Apple's standard audio file format, commonly used on macOS.
//
// # Supported Formats
//
//   - uncompressed AIFF
//   - 16-bit PCM, passed through
//   - 24-bit PCM, rescaled to 16 bits
//   - mono and multi-channel, any sample rate
//
// # Decoding AIFF Files
//
//	file, _ := os.Open("audio.aif")
//	source, err := aiff.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]int16, 4096)
//	n, err := source.ReadPCM(buf)
//
// Samples come out as interleaved host-order int16, whatever the big-endian
// layout on disk.
//
// # Error Handling
//
//   - ErrNotAiffFile: the input is not a valid AIFF file
//   - ErrUnsupportedBitDepth: samples are neither 16 nor 24 bits wide
//   - ErrUnsupportedAiffLayout: the COMM chunk describes no usable format
//
// # Limitations
//
// AIFF writing and AIFF-C compression are not supported.
package aiff
