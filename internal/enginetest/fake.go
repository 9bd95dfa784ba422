// SPDX-License-Identifier: EPL-2.0

// Package enginetest provides an in-memory lame.Engine for tests.
package enginetest

import (
	"errors"

	"github.com/ik5/audlame/lame"
)

const (
	// FrameSamples is how many samples per channel the fake needs before it
	// emits a frame.
	FrameSamples = 1152
	// FrameBytes is the size of every emitted frame.
	FrameBytes = 417

	// NotInitialized is returned by encode calls before InitParams, as the
	// real engine does.
	NotInitialized = -3
)

// Engine hands out Handles with the real engine's defaults.
type Engine struct {
	VersionString string
	// NewHandleErr, when set, makes NewHandle fail.
	NewHandleErr error
	// Handles records every handle created, in order.
	Handles []*Handle
}

func New() *Engine {
	return &Engine{VersionString: "3.100-fake"}
}

func (e *Engine) Version() string { return e.VersionString }

func (e *Engine) NewHandle() (lame.Handle, error) {
	if e.NewHandleErr != nil {
		return nil, e.NewHandleErr
	}

	h := NewHandle()
	e.Handles = append(e.Handles, h)

	return h, nil
}

// Last returns the most recently created handle.
func (e *Engine) Last() *Handle {
	if len(e.Handles) == 0 {
		return nil
	}

	return e.Handles[len(e.Handles)-1]
}

// Handle records every call it receives. Exported fields may be changed by
// tests to script engine behaviour.
type Handle struct {
	SampleRate int
	Channels   int
	ModeValue  lame.Mode
	Bitrate    int
	QualityVal int

	// SetStatus is returned by every setter.
	SetStatus int
	// InitStatus is returned by InitParams.
	InitStatus int
	// CloseStatus is returned by Close.
	CloseStatus int
	// EncodeOverride, when set, replaces the frame simulation for encode
	// and flush calls.
	EncodeOverride func(nsamples int, out []byte) int

	Initialized bool
	Closed      bool
	Calls       []string

	LastLeft        []int16
	LastRight       []int16
	LastInterleaved []int16
	LastNSamples    int
	LastOutCap      int

	pending int
}

// NewHandle returns a handle carrying the real engine's defaults.
func NewHandle() *Handle {
	return &Handle{
		SampleRate: 44100,
		Channels:   2,
		ModeValue:  lame.JointStereo,
		Bitrate:    128,
		QualityVal: 5,
	}
}

func (h *Handle) record(call string) { h.Calls = append(h.Calls, call) }

// Count reports how many times call was made.
func (h *Handle) Count(call string) int {
	n := 0
	for _, c := range h.Calls {
		if c == call {
			n++
		}
	}

	return n
}

func (h *Handle) SetInSampleRate(hz int) int {
	h.record("SetInSampleRate")
	if h.SetStatus == 0 {
		h.SampleRate = hz
	}

	return h.SetStatus
}

func (h *Handle) InSampleRate() int { return h.SampleRate }

func (h *Handle) SetNumChannels(n int) int {
	h.record("SetNumChannels")
	if h.SetStatus == 0 {
		h.Channels = n
	}

	return h.SetStatus
}

func (h *Handle) NumChannels() int { return h.Channels }

func (h *Handle) SetMode(m lame.Mode) int {
	h.record("SetMode")
	if h.SetStatus == 0 {
		h.ModeValue = m
	}

	return h.SetStatus
}

func (h *Handle) Mode() lame.Mode { return h.ModeValue }

func (h *Handle) SetBitRate(kbps int) int {
	h.record("SetBitRate")
	if h.SetStatus == 0 {
		h.Bitrate = kbps
	}

	return h.SetStatus
}

func (h *Handle) BitRate() int { return h.Bitrate }

func (h *Handle) SetQuality(q int) int {
	h.record("SetQuality")
	if h.SetStatus == 0 {
		h.QualityVal = q
	}

	return h.SetStatus
}

func (h *Handle) Quality() int { return h.QualityVal }

func (h *Handle) InitParams() int {
	h.record("InitParams")
	if h.InitStatus == 0 {
		h.Initialized = true
	}

	return h.InitStatus
}

func (h *Handle) EncodeBuffer(left, right []int16, nsamples int, out []byte) int {
	h.record("EncodeBuffer")
	h.LastLeft, h.LastRight = left, right
	h.LastNSamples, h.LastOutCap = nsamples, len(out)

	return h.encode(nsamples, out)
}

func (h *Handle) EncodeBufferInterleaved(pcm []int16, nsamples int, out []byte) int {
	h.record("EncodeBufferInterleaved")
	h.LastInterleaved = pcm
	h.LastNSamples, h.LastOutCap = nsamples, len(out)

	if len(pcm) < nsamples*h.Channels {
		panic(errors.New("enginetest: interleaved read past end of input"))
	}

	return h.encode(nsamples, out)
}

func (h *Handle) EncodeFlush(out []byte) int {
	h.record("EncodeFlush")
	h.LastOutCap = len(out)

	if !h.Initialized {
		return NotInitialized
	}

	if h.EncodeOverride != nil {
		return h.EncodeOverride(0, out)
	}

	if h.pending == 0 {
		return 0
	}

	h.pending = 0

	return fill(out, FrameBytes)
}

func (h *Handle) Close() int {
	h.record("Close")
	h.Closed = true

	return h.CloseStatus
}

func (h *Handle) encode(nsamples int, out []byte) int {
	if !h.Initialized {
		return NotInitialized
	}

	if h.EncodeOverride != nil {
		return h.EncodeOverride(nsamples, out)
	}

	h.pending += nsamples
	frames := h.pending / FrameSamples
	h.pending %= FrameSamples

	return fill(out, frames*FrameBytes)
}

func fill(out []byte, n int) int {
	if n > len(out) {
		return -1
	}

	for i := range n {
		out[i] = 0xFF
	}

	return n
}
