// SPDX-License-Identifier: EPL-2.0

// Package shine is a lame.Engine backed by the pure-Go shine MP3 encoder
// (github.com/braheezy/shine-mp3).
//
// It lets a lame.Session run where libmp3lame is not installed. shine is a
// fixed-point encoder with fewer knobs than libmp3lame:
//   - output is always 128 kbps; committing any other bit rate fails
//   - quality is stored but has no effect
//   - sample rates from 16 kHz to 48 kHz are accepted
//   - output is always a stereo stream; mono input is duplicated
//
// Input is buffered until a whole number of frames is available, so encode
// calls return empty chunks until then. Flush zero pads the remainder.
//
//	sess, err := lame.NewSession(shine.New())
package shine
