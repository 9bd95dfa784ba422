// SPDX-License-Identifier: EPL-2.0

package shine

import (
	"bytes"
	"slices"

	mp3encoder "github.com/braheezy/shine-mp3/pkg/mp3"

	"github.com/ik5/audlame/lame"
)

// Status codes reported by the shine engine. They follow the values
// libmp3lame uses for the same failures.
const (
	statusOK             = 0
	statusInvalid        = -1
	statusBufferTooSmall = -1
	statusNotInitialized = -3
)

// FrameSamples per channel handed to the encoder in one go. It is a whole
// number of frames at every supported sample rate.
const FrameSamples = 1152

// BitRate is the only bit rate the shine encoder produces, in kbps.
const BitRate = 128

// sampleRates keeps 128 kbps output within MaxEncodedSize for any input length.
var sampleRates = []int{16000, 22050, 24000, 32000, 44100, 48000}

// Engine encodes with the pure-Go shine encoder. It needs no native library.
type Engine struct{}

// New returns the shine engine.
func New() Engine { return Engine{} }

func (Engine) Version() string { return "shine-mp3" }

func (Engine) NewHandle() (lame.Handle, error) {
	return &handle{
		sampleRate: 44100,
		channels:   2,
		mode:       lame.JointStereo,
		bitRate:    BitRate,
		quality:    5,
	}, nil
}

type handle struct {
	sampleRate int
	channels   int
	mode       lame.Mode
	bitRate    int
	quality    int

	enc *mp3encoder.Encoder
	// pending holds stereo interleaved samples short of a whole frame.
	pending []int16
	out     bytes.Buffer
}

func (h *handle) SetInSampleRate(hz int) int {
	h.sampleRate = hz
	return statusOK
}

func (h *handle) InSampleRate() int { return h.sampleRate }

func (h *handle) SetNumChannels(n int) int {
	h.channels = n
	return statusOK
}

func (h *handle) NumChannels() int { return h.channels }

func (h *handle) SetMode(m lame.Mode) int {
	h.mode = m
	return statusOK
}

func (h *handle) Mode() lame.Mode { return h.mode }

func (h *handle) SetBitRate(kbps int) int {
	h.bitRate = kbps
	return statusOK
}

func (h *handle) BitRate() int { return h.bitRate }

// SetQuality is stored for the getter; shine has a single quality level.
func (h *handle) SetQuality(q int) int {
	h.quality = q
	return statusOK
}

func (h *handle) Quality() int { return h.quality }

func (h *handle) InitParams() int {
	switch {
	case !slices.Contains(sampleRates, h.sampleRate):
		return statusInvalid
	case h.channels != 1 && h.channels != 2:
		return statusInvalid
	case h.bitRate != BitRate:
		return statusInvalid
	case h.mode == lame.DualChannel || h.mode < lame.Stereo || h.mode > lame.Mono:
		return statusInvalid
	}

	// shine mis-steps through mono input, so it always runs in stereo and
	// mono input is duplicated onto both channels.
	h.enc = mp3encoder.NewEncoder(h.sampleRate, 2)
	h.pending = h.pending[:0]
	h.out.Reset()

	return statusOK
}

func (h *handle) EncodeBuffer(left, right []int16, nsamples int, out []byte) int {
	if h.enc == nil {
		return statusNotInitialized
	}

	if len(left) < nsamples || len(right) < nsamples {
		return statusInvalid
	}

	for i := range nsamples {
		h.pending = append(h.pending, left[i], right[i])
	}

	return h.drain(out, false)
}

func (h *handle) EncodeBufferInterleaved(pcm []int16, nsamples int, out []byte) int {
	if h.enc == nil {
		return statusNotInitialized
	}

	if len(pcm) < nsamples*h.channels {
		return statusInvalid
	}

	if h.channels == 1 {
		for _, s := range pcm[:nsamples] {
			h.pending = append(h.pending, s, s)
		}
	} else {
		h.pending = append(h.pending, pcm[:nsamples*2]...)
	}

	return h.drain(out, false)
}

func (h *handle) EncodeFlush(out []byte) int {
	if h.enc == nil {
		return statusNotInitialized
	}

	return h.drain(out, true)
}

// drain encodes every whole frame in pending. With pad set, a trailing
// partial frame is zero padded and encoded too. Encoded bytes that do not
// fit in out stay in h.out for the next call.
func (h *handle) drain(out []byte, pad bool) int {
	frame := FrameSamples * 2

	if pad && len(h.pending)%frame != 0 {
		h.pending = append(h.pending, make([]int16, frame-len(h.pending)%frame)...)
	}

	if whole := len(h.pending) - len(h.pending)%frame; whole > 0 {
		if err := h.enc.Write(&h.out, h.pending[:whole]); err != nil {
			return statusInvalid
		}

		h.pending = append(h.pending[:0], h.pending[whole:]...)
	}

	if h.out.Len() > len(out) {
		return statusBufferTooSmall
	}

	n := copy(out, h.out.Bytes())
	h.out.Reset()

	return n
}

func (h *handle) Close() int {
	h.enc = nil
	h.pending = nil

	return statusOK
}
