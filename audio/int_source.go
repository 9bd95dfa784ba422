// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"

	goaudio "github.com/go-audio/audio"
)

// IntReader is the PCM side of the go-audio decoders (wav.Decoder,
// aiff.Decoder).
type IntReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// IntSource adapts an IntReader into a Source, rescaling every sample to
// 16 bits.
type IntSource struct {
	dec        IntReader
	sampleRate int
	channels   int
	bitDepth   int
	intBuf     *goaudio.IntBuffer
	done       bool
}

// NewIntSource wraps dec, whose samples are bitDepth wide.
func NewIntSource(dec IntReader, sampleRate, channels, bitDepth int) *IntSource {
	return &IntSource{
		dec:        dec,
		sampleRate: sampleRate,
		channels:   channels,
		bitDepth:   bitDepth,
	}
}

func (s *IntSource) SampleRate() int { return s.sampleRate }
func (s *IntSource) Channels() int   { return s.channels }
func (s *IntSource) Close() error    { return nil }

func (s *IntSource) ReadPCM(dst []int16) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.channels > 0 && len(dst)%s.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if s.done {
		return 0, io.EOF
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data: make([]int, len(dst)),
			Format: &goaudio.Format{
				SampleRate:  s.sampleRate,
				NumChannels: s.channels,
			},
			SourceBitDepth: s.bitDepth,
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil && err != io.EOF {
			return 0, err
		}

		s.done = true
		return 0, io.EOF
	}

	s.intBuf.Data = s.intBuf.Data[:n]
	FromIntBuffer(dst, s.intBuf)

	if err == io.EOF || (err == nil && n < len(dst)) {
		s.done = true
		return n, io.EOF
	}

	return n, err
}
