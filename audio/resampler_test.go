// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"testing"

	"github.com/ik5/audlame/internal/audiotest"
)

func TestResampler_FrameCounts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		srcRate  int
		dstRate  int
		channels int
		frames   int
		want     int
	}{
		{name: "same rate", srcRate: 16000, dstRate: 16000, channels: 1, frames: 100, want: 100},
		{name: "upsample x2", srcRate: 8000, dstRate: 16000, channels: 1, frames: 100, want: 199},
		{name: "downsample x2", srcRate: 16000, dstRate: 8000, channels: 1, frames: 100, want: 50},
		{name: "stereo upsample", srcRate: 8000, dstRate: 16000, channels: 2, frames: 50, want: 99},
		{name: "single frame", srcRate: 8000, dstRate: 16000, channels: 1, frames: 1, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewConstantSource(tt.srcRate, tt.channels, tt.frames, 1000)
			r := NewResampler(src, tt.dstRate)

			samples, err := ReadAll(r)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}

			if got := len(samples) / tt.channels; got != tt.want {
				t.Errorf("frames = %d, want %d", got, tt.want)
			}

			for i, s := range samples {
				if s != 1000 {
					t.Fatalf("samples[%d] = %d, want 1000", i, s)
				}
			}
		})
	}
}

func TestResampler_SameRateIsIdentity(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(16000, 1, 64, func(frame, _ int) int16 {
		return int16(frame*37 - 1000)
	})

	samples, err := ReadAll(NewResampler(src, 16000))
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	for i, s := range samples {
		if want := int16(i*37 - 1000); s != want {
			t.Errorf("samples[%d] = %d, want %d", i, s, want)
		}
	}
}

func TestResampler_UpsampleInterpolatesLinearRamp(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(8000, 1, 10, func(frame, _ int) int16 {
		return int16(frame * 100)
	})

	samples, err := ReadAll(NewResampler(src, 16000))
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	// Interior points sit on the ramp; the edges repeat a frame.
	for i := 2; i < len(samples)-3; i++ {
		if want := int16(i * 50); samples[i] != want {
			t.Errorf("samples[%d] = %d, want %d", i, samples[i], want)
		}
	}
}

func TestResampler_Metadata(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 2, 10), 22050)

	if r.SampleRate() != 22050 {
		t.Errorf("SampleRate() = %d, want 22050", r.SampleRate())
	}

	if r.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", r.Channels())
	}
}

func TestResampler_InvalidDstSize(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 2, 10), 22050)

	if _, err := r.ReadPCM(make([]int16, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadPCM() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestResampler_NonPositiveRate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		srcRate int
		dstRate int
	}{
		{name: "negative target", srcRate: 8000, dstRate: -16000},
		{name: "zero target", srcRate: 8000, dstRate: 0},
		{name: "zero source", srcRate: 0, dstRate: 16000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := NewResampler(audiotest.NewSilentSource(tt.srcRate, 1, 100), tt.dstRate)

			if _, err := ReadAll(r); !errors.Is(err, ErrInvalidSampleRate) {
				t.Errorf("ReadAll() error = %v, want ErrInvalidSampleRate", err)
			}
		})
	}
}

func TestResampler_EmptySource(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(8000, 1, 0), 16000)

	for range 2 {
		n, err := r.ReadPCM(make([]int16, 10))
		if n != 0 || !errors.Is(err, io.EOF) {
			t.Errorf("ReadPCM() = %d, %v; want 0, io.EOF", n, err)
		}
	}
}

func TestResampler_StaysAtEOF(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(8000, 1, 5), 8000)
	buf := make([]int16, 10)

	n, err := r.ReadPCM(buf)
	if n != 5 || !errors.Is(err, io.EOF) {
		t.Fatalf("ReadPCM() = %d, %v; want 5, io.EOF", n, err)
	}

	for range 3 {
		if n, err := r.ReadPCM(buf); n != 0 || !errors.Is(err, io.EOF) {
			t.Errorf("ReadPCM() after EOF = %d, %v; want 0, io.EOF", n, err)
		}
	}
}

func TestResampler_Close(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(8000, 1, 5)
	if err := NewResampler(src, 16000).Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if !src.Closed() {
		t.Error("Close() did not close the source")
	}
}

func BenchmarkResampler_44100To16000(b *testing.B) {
	src := audiotest.NewSineSource(44100, 1, 44100, 440.0)
	buf := make([]int16, 4096)

	b.ReportAllocs()

	for b.Loop() {
		src.Reset()
		r := NewResampler(src, 16000)
		for {
			if _, err := r.ReadPCM(buf); err != nil {
				break
			}
		}
	}
}
