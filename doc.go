// SPDX-License-Identifier: EPL-2.0

// Package audlame turns PCM audio into MP3.
//
// The heavy lifting happens in the lame package, a session wrapper around the
// libmp3lame encoder. This package ties it to the PCM inputs of the audio and
// formats packages.
//
// # Quick Start
//
//	file, _ := os.Open("speech.wav")
//	src, _ := wav.Decoder{}.Decode(file)
//
//	engine, _ := audlame.OpenEngine(audlame.EngineAuto, "")
//
//	out, _ := os.Create("speech.mp3")
//	stats, err := audlame.Encode(out, src, engine, audlame.Options{BitRate: 128})
//
// # Pipeline
//
// Encode and EncodeSession build the following chain:
//
//	Source -> MonoMixer -> [Resampler] -> lame.Session (dual-buffer mono) -> io.Writer
//
// Every source is mixed down to one channel because the encoder's
// dual-buffer entry point is the dependable path. Set Options.SampleRate to
// resample on the way, for example when the shine engine cannot take the
// source rate.
//
// # Engines
//
// OpenEngine picks the backend by name:
//   - "lame": libmp3lame loaded at run time, no cgo
//   - "shine": a pure-Go encoder fixed at 128 kbps
//   - "auto": libmp3lame when it can be loaded, shine otherwise
//
// # Format Decoders
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	registry.Register("aiff", aiff.Decoder{})
//
//	src, err := registry.Open("wav", file)
package audlame
