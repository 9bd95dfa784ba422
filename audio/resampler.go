// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/audlame/utils"
)

// Resampler streams src at a new sample rate using cubic interpolation.
// It works on interleaved frames and keeps the channel count. Downsampling
// runs a one-pole low-pass filter ahead of interpolation.
type Resampler struct {
	src      Source
	dstRate  int
	ratio    float64 // source frames per output frame
	channels int

	// frames[0] = t-1, frames[1] = t0, frames[2] = t+1, frames[3] = t+2
	frames   [4][]int16
	hasFrame [4]bool
	primed   bool

	// position between frames[1] and frames[2]
	pos float64

	srcBuf []int16
	eof    bool
	done   bool

	filterState  []float64
	filterPrimed bool
	useFilter    bool
}

const filterAlpha = 0.5

// NewResampler returns a Source yielding src's audio at dstRate. When
// dstRate or the source rate is not positive every ReadPCM fails with
// ErrInvalidSampleRate.
func NewResampler(src Source, dstRate int) *Resampler {
	channels := max(src.Channels(), 1)
	ratio := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:         src,
		dstRate:     dstRate,
		ratio:       ratio,
		channels:    channels,
		srcBuf:      make([]int16, channels),
		useFilter:   ratio > 1.0,
		filterState: make([]float64, channels),
	}

	for i := range r.frames {
		r.frames[i] = make([]int16, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("closing resampled source: %w", err)
	}

	return nil
}

// readFrame pulls one source frame into dst, filtered when downsampling.
func (r *Resampler) readFrame(dst []int16) (bool, error) {
	n, err := r.src.ReadPCM(r.srcBuf)
	got := n == r.channels
	if got {
		copy(dst, r.srcBuf)

		if r.useFilter && !r.filterPrimed {
			for c := range r.channels {
				r.filterState[c] = float64(dst[c])
			}
			r.filterPrimed = true
		}

		if r.useFilter {
			for c := range r.channels {
				y := filterAlpha*float64(dst[c]) + (1-filterAlpha)*r.filterState[c]
				r.filterState[c] = y
				dst[c] = utils.ClampInt16(y)
			}
		}
	}

	switch {
	case err == io.EOF:
		r.eof = true
		return got, nil
	case err != nil:
		return got, fmt.Errorf("reading source frame: %w", err)
	}

	return got, nil
}

// prime loads the first three frames. The first frame doubles as t-1 and
// the last real frame is repeated past the end of short sources.
func (r *Resampler) prime() error {
	for i := 1; i < len(r.frames) && !r.eof; i++ {
		ok, err := r.readFrame(r.frames[i])
		if err != nil {
			return err
		}

		if !ok {
			break
		}

		r.hasFrame[i] = true
	}

	if !r.hasFrame[1] {
		return io.EOF
	}

	copy(r.frames[0], r.frames[1])
	r.hasFrame[0] = true

	for i := 2; i < len(r.frames); i++ {
		if !r.hasFrame[i] {
			copy(r.frames[i], r.frames[i-1])
		}
	}

	r.primed = true

	return nil
}

// advance slides the window by one source frame.
func (r *Resampler) advance() error {
	if !r.hasFrame[2] {
		return io.EOF
	}

	copy(r.frames[0], r.frames[1])
	copy(r.frames[1], r.frames[2])
	copy(r.frames[2], r.frames[3])
	r.hasFrame[2] = r.hasFrame[3]

	r.hasFrame[3] = false
	if !r.eof {
		ok, err := r.readFrame(r.frames[3])
		if err != nil {
			return err
		}
		r.hasFrame[3] = ok
	}

	if !r.hasFrame[3] {
		copy(r.frames[3], r.frames[2])
	}

	return nil
}

// ReadPCM produces interleaved samples at the target rate. len(dst) must be
// a multiple of the channel count.
func (r *Resampler) ReadPCM(dst []int16) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if r.dstRate <= 0 || r.src.SampleRate() <= 0 {
		return 0, fmt.Errorf("%w: resampling %d Hz to %d Hz", ErrInvalidSampleRate, r.src.SampleRate(), r.dstRate)
	}

	if r.done {
		return 0, io.EOF
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			if err == io.EOF {
				r.done = true
			}
			return 0, err
		}
	}

	written := 0
	framesNeeded := len(dst) / r.channels

	for written < framesNeeded {
		for r.pos >= 1.0 {
			r.pos -= 1.0

			if err := r.advance(); err != nil {
				if err == io.EOF {
					r.done = true
				}
				return written * r.channels, err
			}
		}

		// The last source frame is emitted once, then the stream ends.
		if !r.hasFrame[2] && r.pos > 0 {
			r.done = true
			return written * r.channels, io.EOF
		}

		for c := range r.channels {
			dst[written*r.channels+c] = utils.CubicInterpolate(
				r.frames[0][c], r.frames[1][c], r.frames[2][c], r.frames[3][c], r.pos)
		}

		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}
