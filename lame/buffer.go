// SPDX-License-Identifier: EPL-2.0

package lame

import "encoding/binary"

const (
	// FlushBufferSize is the engine's maximum output for a flush call.
	FlushBufferSize = 7200

	// BytesPerSample of the 16-bit PCM input.
	BytesPerSample = 2
)

// MaxEncodedSize returns the worst-case MP3 output size for nsamples of
// input: ceil(1.25*nsamples + 7200). The engine truncates or corrupts output
// when handed anything smaller.
func MaxEncodedSize(nsamples int) int {
	return (5*nsamples+3)/4 + FlushBufferSize
}

// samplesFromPCM decodes little-endian 16-bit PCM bytes. len(pcm) must be even.
func samplesFromPCM(pcm []byte) []int16 {
	samples := make([]int16, len(pcm)/BytesPerSample)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(pcm[i*2:]))
	}

	return samples
}
