// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// MonoMixer folds a multi-channel Source into one channel by averaging each
// frame. The encoder's dual-buffer path only takes mono input.
type MonoMixer struct {
	src Source
	tmp []int16
}

func NewMonoMixer(src Source) *MonoMixer {
	return &MonoMixer{
		src: src,
		tmp: make([]int16, 4096),
	}
}

func (m *MonoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *MonoMixer) Channels() int   { return 1 }

func (m *MonoMixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// ReadPCM fills dst with up to len(dst) mono samples.
func (m *MonoMixer) ReadPCM(dst []int16) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	channels := m.src.Channels()
	if channels <= 1 {
		return m.src.ReadPCM(dst)
	}

	need := len(dst) * channels
	if cap(m.tmp) < need {
		m.tmp = make([]int16, need)
	}
	m.tmp = m.tmp[:need]

	n, err := m.src.ReadPCM(m.tmp)
	frames := n / channels

	// widen before summing so loud frames cannot overflow int16
	switch channels {
	case 2:
		for f := range frames {
			dst[f] = int16((int32(m.tmp[2*f]) + int32(m.tmp[2*f+1])) / 2)
		}
	default:
		for f := range frames {
			var sum int32
			for _, s := range m.tmp[f*channels : (f+1)*channels] {
				sum += int32(s)
			}
			dst[f] = int16(sum / int32(channels))
		}
	}

	return frames, err
}
