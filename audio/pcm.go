// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
)

// PCMBytes encodes samples as 16-bit little-endian PCM, the byte layout
// lame.Session.Encode expects.
func PCMBytes(samples []int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
	}

	return out
}

// FromIntBuffer copies buf into dst, rescaling to 16 bits from the buffer's
// SourceBitDepth (16 when unset). It returns the number of samples copied.
func FromIntBuffer(dst []int16, buf *goaudio.IntBuffer) int {
	depth := buf.SourceBitDepth
	if depth == 0 {
		depth = 16
	}

	n := min(len(dst), len(buf.Data))
	for i := range n {
		v := buf.Data[i]
		switch {
		case depth > 16:
			v >>= depth - 16
		case depth < 16:
			v <<= 16 - depth
		}
		dst[i] = clamp16(v)
	}

	return n
}

// ReadAll drains src and returns every sample it produced.
func ReadAll(src Source) ([]int16, error) {
	var all []int16
	buf := make([]int16, 4096)

	for {
		n, err := src.ReadPCM(buf)
		all = append(all, buf[:n]...)

		if errors.Is(err, io.EOF) {
			return all, nil
		}

		if err != nil {
			return all, fmt.Errorf("%w", err)
		}
	}
}

func clamp16(v int) int16 {
	switch {
	case v > 32767:
		return 32767
	case v < -32768:
		return -32768
	default:
		return int16(v)
	}
}
