// SPDX-License-Identifier: EPL-2.0

package audlame

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audlame/audio"
	"github.com/ik5/audlame/lame"
)

// DefaultChunkSize is the number of mono samples handed to the encoder per
// call when Options.ChunkSize is zero.
const DefaultChunkSize = 4096

var ErrInvalidOptions = errors.New("invalid encode options")

// Options controls Encode and EncodeSession.
type Options struct {
	// BitRate in kbps; zero keeps the engine default.
	BitRate int

	// Quality 0 (best) to 9 (fastest); nil keeps the engine default.
	Quality *int

	// SampleRate resamples the input when set and different from the
	// source rate.
	SampleRate int

	// ChunkSize is the number of mono samples per encoder call.
	ChunkSize int
}

// Stats summarizes one encode run.
type Stats struct {
	SampleRate int // rate the encoder was configured with
	Samples    int // mono samples submitted
	Bytes      int // MP3 bytes written
}

// Encode opens a session on engine, streams src through it as mono MP3 into
// w and closes the session. The source is left open.
func Encode(w io.Writer, src audio.Source, engine lame.Engine, opts Options, sessionOpts ...lame.Option) (Stats, error) {
	session, err := lame.NewSession(engine, sessionOpts...)
	if err != nil {
		return Stats{}, err
	}

	stats, err := EncodeSession(w, src, session, opts)
	if cerr := session.Close(); cerr != nil && err == nil {
		err = cerr
	}

	return stats, err
}

// EncodeSession drives an unconfigured session: it mixes src down to mono,
// resamples when asked, commits the parameters, encodes every chunk and
// flushes. Closing the session is left to the caller.
func EncodeSession(w io.Writer, src audio.Source, session *lame.Session, opts Options) (Stats, error) {
	if opts.ChunkSize < 0 || opts.SampleRate < 0 {
		return Stats{}, fmt.Errorf("%w: chunk size %d, sample rate %d", ErrInvalidOptions, opts.ChunkSize, opts.SampleRate)
	}

	chunk := opts.ChunkSize
	if chunk == 0 {
		chunk = DefaultChunkSize
	}

	var pcm audio.Source = audio.NewMonoMixer(src)
	if opts.SampleRate > 0 && opts.SampleRate != pcm.SampleRate() {
		pcm = audio.NewResampler(pcm, opts.SampleRate)
	}

	stats := Stats{SampleRate: pcm.SampleRate()}

	err := session.CommitConfig(lame.Config{
		SampleRate: pcm.SampleRate(),
		Channels:   1,
		Mode:       lame.ModePtr(lame.Mono),
		BitRate:    opts.BitRate,
		Quality:    opts.Quality,
	})
	if err != nil {
		return stats, err
	}

	buf := make([]int16, chunk)

	for {
		n, rerr := pcm.ReadPCM(buf)
		if n > 0 {
			mp3, err := session.EncodeSamples(buf[:n], false)
			if err != nil {
				return stats, err
			}

			stats.Samples += n
			if err := write(w, mp3, &stats); err != nil {
				return stats, err
			}
		}

		if errors.Is(rerr, io.EOF) {
			break
		}

		if rerr != nil {
			return stats, fmt.Errorf("reading pcm: %w", rerr)
		}
	}

	tail, err := session.Flush()
	if err != nil {
		return stats, err
	}

	return stats, write(w, tail, &stats)
}

func write(w io.Writer, mp3 []byte, stats *Stats) error {
	if len(mp3) == 0 {
		return nil
	}

	n, err := w.Write(mp3)
	stats.Bytes += n
	if err != nil {
		return fmt.Errorf("writing mp3: %w", err)
	}

	return nil
}
