// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"
)

// MockSource generates 16-bit PCM for tests.
// It implements the audio.Source interface (without importing it to avoid cycles).
type MockSource struct {
	sampleRate int
	channels   int
	frames     int // total frames to generate
	generated  int
	waveform   func(frame, channel int) int16
	closed     bool
}

// NewMockSource creates a source of frames frames whose values come from waveform.
func NewMockSource(sampleRate, channels, frames int, waveform func(frame, channel int) int16) *MockSource {
	return &MockSource{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		waveform:   waveform,
	}
}

// NewSilentSource generates digital silence.
func NewSilentSource(sampleRate, channels, frames int) *MockSource {
	return NewConstantSource(sampleRate, channels, frames, 0)
}

// NewSineSource generates a sine tone at half of full scale on every channel.
func NewSineSource(sampleRate, channels, frames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(frame, _ int) int16 {
		t := float64(frame) / float64(sampleRate)
		return int16(16383 * math.Sin(2*math.Pi*frequency*t))
	})
}

// NewConstantSource generates the same value on every channel.
func NewConstantSource(sampleRate, channels, frames int, value int16) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) int16 {
		return value
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed }

// Reset rewinds the source.
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadPCM(dst []int16) (int, error) {
	if m.generated >= m.frames {
		return 0, io.EOF
	}

	count := min(len(dst)/m.channels, m.frames-m.generated)
	for f := range count {
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.waveform(m.generated+f, ch)
		}
	}

	m.generated += count
	written := count * m.channels

	if m.generated >= m.frames {
		return written, io.EOF
	}

	return written, nil
}
