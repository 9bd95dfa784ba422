// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"slices"
	"testing"

	"github.com/ik5/audlame/audio"
)

// buildWAV assembles a canonical RIFF/WAVE stream around data.
func buildWAV(format uint16, sampleRate, channels, bitsPerSample int, data []byte) []byte {
	buf := new(bytes.Buffer)

	numChannels := uint16(channels)
	bits := uint16(bitsPerSample)
	byteRate := uint32(sampleRate) * uint32(numChannels) * uint32(bits/8)
	blockAlign := numChannels * (bits / 8)
	dataSize := uint32(len(data))

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, 36+dataSize)
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, format)
	binary.Write(buf, binary.LittleEndian, numChannels)
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, byteRate)
	binary.Write(buf, binary.LittleEndian, blockAlign)
	binary.Write(buf, binary.LittleEndian, bits)

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, dataSize)
	buf.Write(data)

	return buf.Bytes()
}

// createWAVFile builds a 16-bit PCM file.
func createWAVFile(sampleRate, channels int, samples []int16) []byte {
	return buildWAV(formatPCM, sampleRate, channels, 16, audio.PCMBytes(samples))
}

func TestDecoder_ValidWAVFile(t *testing.T) {
	t.Parallel()

	wavData := createWAVFile(8000, 1, []int16{0, 100, 200, -100, -200, 0})

	src, err := Decoder{}.Decode(bytes.NewReader(wavData))
	if err != nil {
		t.Fatalf("Decode() error = %v, want nil", err)
	}

	if src.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", src.SampleRate())
	}

	if src.Channels() != 1 {
		t.Errorf("Channels() = %d, want 1", src.Channels())
	}
}

func TestDecoder_StereoWAVFile(t *testing.T) {
	t.Parallel()

	samples := []int16{100, 200, 300, 400, 500, 600}

	src, err := Decoder{}.Decode(bytes.NewReader(createWAVFile(44100, 2, samples)))
	if err != nil {
		t.Fatalf("Decode() error = %v, want nil", err)
	}

	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}

	got, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	if !slices.Equal(got, samples) {
		t.Errorf("ReadAll() = %v, want %v", got, samples)
	}
}

func TestDecoder_NotWAVFile(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("NOT A WAV FILE DATA")))
	if !errors.Is(err, ErrNotWavFile) {
		t.Errorf("Decode() error = %v, want ErrNotWavFile", err)
	}
}

func TestDecoder_InvalidWAVEMarker(t *testing.T) {
	t.Parallel()

	wavData := createWAVFile(8000, 1, []int16{1, 2})
	copy(wavData[8:12], "NOPE")

	_, err := Decoder{}.Decode(bytes.NewReader(wavData))
	if !errors.Is(err, ErrNotWavFile) {
		t.Errorf("Decode() error = %v, want ErrNotWavFile", err)
	}
}

func TestDecoder_TruncatedHeader(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("RIFF\x00")))
	if err == nil {
		t.Error("Decode() error = nil, want error for truncated header")
	}
}

func TestDecoder_EmptyInput(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader(nil))
	if err == nil {
		t.Error("Decode() error = nil, want error for empty input")
	}
}

func TestDecoder_UnsupportedBitDepth(t *testing.T) {
	t.Parallel()

	wavData := buildWAV(formatPCM, 8000, 1, 8, []byte{128, 129, 130, 131})

	_, err := Decoder{}.Decode(bytes.NewReader(wavData))
	if !errors.Is(err, ErrUnsupportedBitDepth) {
		t.Errorf("Decode() error = %v, want ErrUnsupportedBitDepth", err)
	}
}

func TestDecoder_NonPCMFormat(t *testing.T) {
	t.Parallel()

	// IEEE float
	wavData := buildWAV(3, 8000, 1, 32, make([]byte, 16))

	_, err := Decoder{}.Decode(bytes.NewReader(wavData))
	if err == nil {
		t.Error("Decode() error = nil, want error for non-PCM format")
	}
}

func TestDecoder_24Bit(t *testing.T) {
	t.Parallel()

	// 0x7FFFFF, -0x800000, 0x000100
	data := []byte{
		0xFF, 0xFF, 0x7F,
		0x00, 0x00, 0x80,
		0x00, 0x01, 0x00,
	}

	src, err := Decoder{}.Decode(bytes.NewReader(buildWAV(formatPCM, 48000, 1, 24, data)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	got, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	want := []int16{32767, -32768, 1}
	if !slices.Equal(got, want) {
		t.Errorf("ReadAll() = %v, want %v", got, want)
	}
}

func TestDecoder_WithUnknownChunks(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(52))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1))
	binary.Write(buf, binary.LittleEndian, uint16(1))
	binary.Write(buf, binary.LittleEndian, uint32(8000))
	binary.Write(buf, binary.LittleEndian, uint32(16000))
	binary.Write(buf, binary.LittleEndian, uint16(2))
	binary.Write(buf, binary.LittleEndian, uint16(16))

	// skipped
	buf.WriteString("junk")
	binary.Write(buf, binary.LittleEndian, uint32(4))
	buf.Write([]byte{0, 0, 0, 0})

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(4))
	binary.Write(buf, binary.LittleEndian, int16(100))
	binary.Write(buf, binary.LittleEndian, int16(200))

	// A bytes.Buffer is not an io.ReadSeeker.
	src, err := Decoder{}.Decode(buf)
	if err != nil {
		t.Fatalf("Decode() error = %v, want nil (should skip unknown chunks)", err)
	}

	got, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	if !slices.Equal(got, []int16{100, 200}) {
		t.Errorf("ReadAll() = %v, want [100 200]", got)
	}
}

func TestSource_ReadPCM(t *testing.T) {
	t.Parallel()

	samples := []int16{0, 16384, 32767, -16384, -32768}

	src, err := Decoder{}.Decode(bytes.NewReader(createWAVFile(8000, 1, samples)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	dst := make([]int16, 5)
	n, err := src.ReadPCM(dst)
	if err != nil && err != io.EOF {
		t.Fatalf("ReadPCM() error = %v", err)
	}

	if n != len(samples) {
		t.Fatalf("ReadPCM() n = %d, want %d", n, len(samples))
	}

	if !slices.Equal(dst, samples) {
		t.Errorf("ReadPCM() = %v, want %v", dst, samples)
	}
}

func TestSource_ReadPCM_Streaming(t *testing.T) {
	t.Parallel()

	samples := make([]int16, 10000)
	for i := range samples {
		samples[i] = int16(i%1000 - 500)
	}

	src, err := Decoder{}.Decode(bytes.NewReader(createWAVFile(8000, 1, samples)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	buf := make([]int16, 1000)
	total := 0

	for {
		n, err := src.ReadPCM(buf)
		total += n
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadPCM() error = %v", err)
		}
	}

	if total != len(samples) {
		t.Errorf("read %d samples, want %d", total, len(samples))
	}
}

func TestSource_ReadPCM_StereoOddBuffer(t *testing.T) {
	t.Parallel()

	src, err := Decoder{}.Decode(bytes.NewReader(createWAVFile(8000, 2, []int16{1, 2, 3, 4})))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	_, err = src.ReadPCM(make([]int16, 3))
	if !errors.Is(err, audio.ErrInvalidDstSize) {
		t.Errorf("ReadPCM() error = %v, want audio.ErrInvalidDstSize", err)
	}
}

func TestSource_Close(t *testing.T) {
	t.Parallel()

	src, err := Decoder{}.Decode(bytes.NewReader(createWAVFile(8000, 1, []int16{100, 200})))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v, want nil", err)
	}
}

func TestDecoder_VariousSampleRates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		sampleRate int
		channels   int
	}{
		{"8kHz Mono", 8000, 1},
		{"16kHz Mono", 16000, 1},
		{"22.05kHz Stereo", 22050, 2},
		{"44.1kHz Stereo", 44100, 2},
		{"48kHz Stereo", 48000, 2},
		{"96kHz Mono", 96000, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			wavData := createWAVFile(tt.sampleRate, tt.channels, []int16{100, 200, 300, 400})

			src, err := Decoder{}.Decode(bytes.NewReader(wavData))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}

			if src.SampleRate() != tt.sampleRate {
				t.Errorf("SampleRate() = %d, want %d", src.SampleRate(), tt.sampleRate)
			}

			if src.Channels() != tt.channels {
				t.Errorf("Channels() = %d, want %d", src.Channels(), tt.channels)
			}
		})
	}
}

func BenchmarkDecoder_Decode(b *testing.B) {
	samples := make([]int16, 44100)
	for i := range samples {
		samples[i] = int16(i % 1000)
	}
	wavData := createWAVFile(44100, 2, samples)

	b.ReportAllocs()

	for b.Loop() {
		_, _ = Decoder{}.Decode(bytes.NewReader(wavData))
	}
}

func BenchmarkSource_ReadPCM(b *testing.B) {
	samples := make([]int16, 44100*2)
	for i := range samples {
		samples[i] = int16(i % 1000)
	}
	wavData := createWAVFile(44100, 2, samples)
	dst := make([]int16, 4096)

	b.ReportAllocs()

	for b.Loop() {
		src, _ := Decoder{}.Decode(bytes.NewReader(wavData))
		for {
			if _, err := src.ReadPCM(dst); err != nil {
				break
			}
		}
	}
}
