// SPDX-License-Identifier: EPL-2.0

// Package wav decodes RIFF/WAVE PCM streams into audio.Source values.
//
// Decoding is done by github.com/go-audio/wav. Only integer PCM is accepted:
//   - 16-bit samples, passed through unchanged
//   - 24-bit samples, rescaled to 16 bits
//   - any channel count and sample rate
//
// # Decoding
//
//	file, _ := os.Open("speech.wav")
//	source, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    // errors.Is(err, wav.ErrNotWavFile), ...
//	}
//
//	buf := make([]int16, 4096)
//	n, err := source.ReadPCM(buf)
//
// go-audio needs an io.ReadSeeker; any other io.Reader is buffered in memory
// first.
//
// # Errors
//
//   - ErrNotWavFile: the RIFF/WAVE preamble or fmt chunk is missing
//   - ErrUnsupportedWavLayout: the audio format is not integer PCM
//   - ErrUnsupportedBitDepth: samples are neither 16 nor 24 bits wide
package wav
