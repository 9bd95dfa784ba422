// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/wav"

	"github.com/ik5/audlame/audio"
)

const formatPCM = 1

// Decoder reads RIFF/WAVE PCM streams.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		// go-audio seeks between chunks.
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	if !hasRIFFHeader(rs) {
		return nil, ErrNotWavFile
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	if dec.WavAudioFormat != formatPCM {
		return nil, fmt.Errorf("%w: audio format %d", ErrUnsupportedWavLayout, dec.WavAudioFormat)
	}

	bitDepth := int(dec.BitDepth)
	if bitDepth != 16 && bitDepth != 24 {
		return nil, fmt.Errorf("%w: %d-bit", ErrUnsupportedBitDepth, bitDepth)
	}

	return audio.NewIntSource(dec, int(dec.SampleRate), int(dec.NumChans), bitDepth), nil
}

// hasRIFFHeader checks the RIFF/WAVE preamble and rewinds rs.
func hasRIFFHeader(rs io.ReadSeeker) bool {
	var header [12]byte

	_, err := io.ReadFull(rs, header[:])
	if _, serr := rs.Seek(0, io.SeekStart); serr != nil || err != nil {
		return false
	}

	return bytes.Equal(header[0:4], []byte("RIFF")) && bytes.Equal(header[8:12], []byte("WAVE"))
}
