// SPDX-License-Identifier: EPL-2.0

// Package audio provides the PCM input side of the encoder.
//
// # Source Interface
//
// A Source yields interleaved 16-bit samples, the format the MP3 engine
// consumes:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadPCM(dst []int16) (int, error)
//	    Close() error
//	}
//
// Format decoders (formats/wav, formats/aiff) produce Sources, and the
// root package feeds them to a lame.Session.
//
// # Channel Mixing
//
// The encoder's dependable path takes mono input. MonoMixer averages every
// frame of a multi-channel Source into one sample:
//
//	mono := audio.NewMonoMixer(source)
//	buf := make([]int16, 4096)
//	n, err := mono.ReadPCM(buf)
//
// # Resampling
//
// Resampler converts a Source to another sample rate with cubic
// interpolation, low-pass filtering first when the rate goes down:
//
//	res := audio.NewResampler(source, 16000)
//
// # Format Registry
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	src, err := registry.Open("wav", file)
//
// # Conversions
//
// PCMBytes produces the little-endian byte layout lame.Session.Encode
// takes. FromIntBuffer copies github.com/go-audio/audio buffers into int16
// samples, rescaling other bit depths to 16 bits.
//
// # Error Handling
//
// ReadPCM returns io.EOF when the stream is exhausted, possibly together with
// the last samples:
//
//	for {
//	    n, err := source.ReadPCM(buf)
//	    // use buf[:n]
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
