// SPDX-License-Identifier: EPL-2.0

package lame

import "strconv"

// Mode is the engine's channel mode. Values match the engine's enumeration.
type Mode int

const (
	Stereo      Mode = 0
	JointStereo Mode = 1
	// DualChannel is part of the engine's enumeration but the engine does
	// not support it. It is forwarded untouched.
	DualChannel Mode = 2
	Mono        Mode = 3
)

func (m Mode) String() string {
	switch m {
	case Stereo:
		return "stereo"
	case JointStereo:
		return "joint-stereo"
	case DualChannel:
		return "dual-channel"
	case Mono:
		return "mono"
	default:
		return "mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// ParseMode maps a mode name (or its numeric value) to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "stereo", "0":
		return Stereo, nil
	case "joint-stereo", "joint", "1":
		return JointStereo, nil
	case "dual-channel", "dual", "2":
		return DualChannel, nil
	case "mono", "3":
		return Mono, nil
	}

	return 0, ErrInvalidArgument
}

// Engine is a loaded MP3 encoding engine able to create encoder handles.
type Engine interface {
	// Version reports the engine version string.
	Version() string
	// NewHandle allocates one engine-side encoder configuration with the
	// engine's built-in defaults.
	NewHandle() (Handle, error)
}

// Handle is one engine-side encoder configuration. Setters and Close return
// the engine's status code (0 on success). Encode calls return the number of
// bytes written to out, or a negative engine error code.
//
// Implementations are not expected to be safe for concurrent use; Session
// serialises every call.
type Handle interface {
	SetInSampleRate(hz int) int
	InSampleRate() int
	SetNumChannels(n int) int
	NumChannels() int
	SetMode(m Mode) int
	Mode() Mode
	SetBitRate(kbps int) int
	BitRate() int
	SetQuality(q int) int
	Quality() int

	InitParams() int

	// EncodeBuffer encodes nsamples samples per channel from separate left
	// and right buffers.
	EncodeBuffer(left, right []int16, nsamples int, out []byte) int
	// EncodeBufferInterleaved encodes nsamples samples per channel from one
	// interleaved buffer holding nsamples*NumChannels() values.
	EncodeBufferInterleaved(pcm []int16, nsamples int, out []byte) int
	EncodeFlush(out []byte) int

	Close() int
}
