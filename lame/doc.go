// SPDX-License-Identifier: EPL-2.0

// Package lame drives an MP3 encoding engine through one owned session.
//
// The engine (libmp3lame, or any other Engine implementation) does the actual
// compression. This package handles the parts around it: which calls are
// legal when, how large the output buffers must be, and how engine status
// codes become Go errors.
//
// # Lifecycle
//
//	Configuring --Commit--> Ready --Close--> Closed
//
// Setters are accepted while Configuring. Encode and Flush are accepted once
// Commit succeeded. Nothing is accepted after Close.
//
//	sess, err := lame.Open()
//	if err != nil {
//	    // errors.Is(err, lame.ErrEngineUnavailable)
//	}
//	defer sess.Close()
//
//	_ = sess.SetMode(lame.Mono)
//	_ = sess.SetChannels(1)
//	_ = sess.SetSampleRate(44100)
//	_ = sess.SetBitRate(128)
//	if err := sess.Commit(); err != nil {
//	    // errors.Is(err, lame.ErrEngineConfig)
//	}
//
//	frames, err := sess.Encode(pcm, false)
//	tail, err := sess.Flush()
//
// # Buffer Sizing
//
// Every encode call allocates MaxEncodedSize(n) bytes, ceil(1.25*n + 7200),
// which is the engine's documented worst case. Flush allocates
// FlushBufferSize (7200) bytes.
//
// # Channels
//
// The dependable path is Encode with interleaved false: the buffer is mono and
// is handed to the engine as both left and right channel. The interleaved
// path counts one frame per 16-bit sample, so it is only exact for mono input.
//
// # Defaults
//
// A new handle carries the engine's defaults: joint stereo, 44100 Hz,
// 128 kbps, quality 5.
package lame
