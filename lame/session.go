// SPDX-License-Identifier: EPL-2.0

package lame

import (
	"fmt"
	"log/slog"
	"sync"
)

// Phase of a Session's lifecycle.
type Phase int

const (
	// Configuring accepts setters; encode and flush are rejected.
	Configuring Phase = iota
	// Ready follows Commit; encode and flush are accepted.
	Ready
	// Closed rejects every operation.
	Closed
)

func (p Phase) String() string {
	switch p {
	case Configuring:
		return "configuring"
	case Ready:
		return "ready"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Session owns one engine handle and enforces the order in which it may be
// used: configure, commit, encode, flush, close.
//
// A Session is safe for concurrent use; calls are serialised since the
// engine handle is not.
type Session struct {
	mu       sync.Mutex
	engine   Engine
	handle   Handle
	phase    Phase
	logger   *slog.Logger
	observer Observer

	warnedInterleaved bool
}

// NewSession allocates a handle from engine. It fails with
// ErrEngineUnavailable when the engine cannot provide one.
func NewSession(engine Engine, opts ...Option) (*Session, error) {
	if engine == nil {
		return nil, fmt.Errorf("%w: nil engine", ErrEngineUnavailable)
	}

	handle, err := engine.NewHandle()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEngineUnavailable, err)
	}

	if handle == nil {
		return nil, fmt.Errorf("%w: engine returned no handle", ErrEngineUnavailable)
	}

	s := &Session{
		engine:   engine,
		handle:   handle,
		phase:    Configuring,
		logger:   slog.Default(),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.logger.Info("mp3 encoder session opened", "engine", engine.Version())

	return s, nil
}

// Phase reports the current lifecycle phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.phase
}

// Version reports the engine version string.
func (s *Session) Version() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == Closed {
		return "", ErrSessionClosed
	}

	return s.engine.Version(), nil
}

// SetSampleRate sets the input sample rate in Hz.
func (s *Session) SetSampleRate(hz int) error {
	return s.set("set sample rate", func(h Handle) int { return h.SetInSampleRate(hz) })
}

// SampleRate reports the input sample rate the engine holds.
func (s *Session) SampleRate() (int, error) {
	return s.get(Handle.InSampleRate)
}

// SetChannels sets the number of input channels, 1 or 2.
func (s *Session) SetChannels(n int) error {
	return s.set("set channels", func(h Handle) int { return h.SetNumChannels(n) })
}

// Channels reports the engine's input channel count.
func (s *Session) Channels() (int, error) {
	return s.get(Handle.NumChannels)
}

// SetMode forwards m to the engine. DualChannel is not supported by the
// engine and is forwarded anyway.
func (s *Session) SetMode(m Mode) error {
	return s.set("set mode", func(h Handle) int {
		if m == DualChannel {
			s.logger.Warn("dual-channel mode is not supported by the engine", "mode", m)
		}

		return h.SetMode(m)
	})
}

// Mode reports the engine's channel mode.
func (s *Session) Mode() (Mode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == Closed {
		return 0, ErrSessionClosed
	}

	return s.handle.Mode(), nil
}

// SetBitRate sets the output bit rate in kbps.
func (s *Session) SetBitRate(kbps int) error {
	return s.set("set bit rate", func(h Handle) int { return h.SetBitRate(kbps) })
}

// BitRate reports the engine's output bit rate in kbps.
func (s *Session) BitRate() (int, error) {
	return s.get(Handle.BitRate)
}

// SetQuality sets the algorithm quality, 0 (best, slowest) to 9 (worst,
// fastest). Values outside that range never reach the engine.
func (s *Session) SetQuality(q int) error {
	if q < 0 || q > 9 {
		return fmt.Errorf("%w: quality %d outside 0-9", ErrInvalidArgument, q)
	}

	return s.set("set quality", func(h Handle) int { return h.SetQuality(q) })
}

// Quality reports the engine's algorithm quality.
func (s *Session) Quality() (int, error) {
	return s.get(Handle.Quality)
}

// Commit applies the accumulated parameters inside the engine and moves the
// session to Ready. Calling it again re-applies the configuration.
func (s *Session) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commitLocked()
}

// CommitConfig applies every non-zero field of cfg and commits. It is only
// legal while Configuring.
func (s *Session) CommitConfig(cfg Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.settable(); err != nil {
		return err
	}

	if cfg.Quality != nil && (*cfg.Quality < 0 || *cfg.Quality > 9) {
		return fmt.Errorf("%w: quality %d outside 0-9", ErrInvalidArgument, *cfg.Quality)
	}

	steps := []struct {
		op    string
		apply bool
		call  func() int
	}{
		{"set sample rate", cfg.SampleRate != 0, func() int { return s.handle.SetInSampleRate(cfg.SampleRate) }},
		{"set channels", cfg.Channels != 0, func() int { return s.handle.SetNumChannels(cfg.Channels) }},
		{"set mode", cfg.Mode != nil, func() int { return s.handle.SetMode(*cfg.Mode) }},
		{"set bit rate", cfg.BitRate != 0, func() int { return s.handle.SetBitRate(cfg.BitRate) }},
		{"set quality", cfg.Quality != nil, func() int { return s.handle.SetQuality(*cfg.Quality) }},
	}
	for _, step := range steps {
		if !step.apply {
			continue
		}

		if code := step.call(); code != 0 {
			return statusError(step.op, code, ErrEngineConfig)
		}
	}

	return s.commitLocked()
}

func (s *Session) commitLocked() error {
	if s.phase == Closed {
		return ErrSessionClosed
	}

	if code := s.handle.InitParams(); code != 0 {
		return statusError("commit parameters", code, ErrEngineConfig)
	}

	s.phase = Ready
	s.logger.Debug("mp3 encoder parameters committed",
		"sampleRate", s.handle.InSampleRate(),
		"channels", s.handle.NumChannels(),
		"mode", s.handle.Mode(),
		"bitRate", s.handle.BitRate(),
		"quality", s.handle.Quality())

	return nil
}

// Encode submits 16-bit little-endian PCM and returns the MP3 bytes the
// engine produced, which may be empty while it buffers a frame.
//
// With interleaved false the buffer is treated as mono and passed to the
// engine as both left and right channel. With interleaved true it goes to the
// engine's interleaved entry point with a sample count of len(pcm)/2, which
// is only correct for single-channel input.
func (s *Session) Encode(pcm []byte, interleaved bool) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == Closed {
		return nil, ErrSessionClosed
	}

	if len(pcm)%BytesPerSample != 0 {
		return nil, fmt.Errorf("%w: pcm length %d is not a whole number of 16-bit samples", ErrInvalidArgument, len(pcm))
	}

	return s.encodeLocked(samplesFromPCM(pcm), interleaved)
}

// EncodeSamples is Encode for already decoded samples.
func (s *Session) EncodeSamples(samples []int16, interleaved bool) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.encodeLocked(samples, interleaved)
}

func (s *Session) encodeLocked(samples []int16, interleaved bool) ([]byte, error) {
	if err := s.encodable(); err != nil {
		return nil, err
	}

	nsamples := len(samples)
	out := make([]byte, MaxEncodedSize(nsamples))

	var used int
	if interleaved {
		used = s.handle.EncodeBufferInterleaved(s.interleavedInput(samples), nsamples, out)
	} else {
		used = s.handle.EncodeBuffer(samples, samples, nsamples, out)
	}

	if err := checkUsed("encode", used, len(out)); err != nil {
		s.observer.Failed("encode", err)
		return nil, err
	}

	s.logger.Debug("mp3 encoded", "samples", nsamples, "bytes", used, "interleaved", interleaved)
	s.observer.Encoded(nsamples, used)

	return out[:used], nil
}

// interleavedInput makes sure the engine never reads past the caller's
// samples when it expects nsamples per channel for more than one channel.
func (s *Session) interleavedInput(samples []int16) []int16 {
	channels := s.handle.NumChannels()
	if channels <= 1 {
		return samples
	}

	if !s.warnedInterleaved {
		s.warnedInterleaved = true
		s.logger.Warn("interleaved encode counts every sample as one frame; multi-channel input is zero padded",
			"channels", channels)
	}

	padded := make([]int16, len(samples)*channels)
	copy(padded, samples)

	return padded
}

// Flush drains the frames still buffered inside the engine.
func (s *Session) Flush() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.encodable(); err != nil {
		return nil, err
	}

	out := make([]byte, FlushBufferSize)
	used := s.handle.EncodeFlush(out)
	if err := checkUsed("flush", used, len(out)); err != nil {
		s.observer.Failed("flush", err)
		return nil, err
	}

	s.logger.Debug("mp3 flushed", "bytes", used)
	s.observer.Flushed(used)

	return out[:used], nil
}

// Close releases the engine handle. The session cannot be used afterwards;
// a second Close returns ErrSessionClosed. A non-zero engine status is
// reported as ErrEngineClose, and the session is closed regardless.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == Closed {
		return ErrSessionClosed
	}

	s.phase = Closed
	code := s.handle.Close()
	s.handle = nil
	s.logger.Info("mp3 encoder session closed")

	if code != 0 {
		return statusError("close", code, ErrEngineClose)
	}

	return nil
}

func (s *Session) set(op string, call func(Handle) int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.settable(); err != nil {
		return err
	}

	if code := call(s.handle); code != 0 {
		return statusError(op, code, ErrEngineConfig)
	}

	return nil
}

func (s *Session) get(call func(Handle) int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == Closed {
		return 0, ErrSessionClosed
	}

	return call(s.handle), nil
}

func (s *Session) settable() error {
	switch s.phase {
	case Closed:
		return ErrSessionClosed
	case Ready:
		return ErrParametersCommitted
	default:
		return nil
	}
}

func (s *Session) encodable() error {
	switch s.phase {
	case Closed:
		return ErrSessionClosed
	case Configuring:
		return ErrSessionNotReady
	default:
		return nil
	}
}

func checkUsed(op string, used, capacity int) error {
	if used < 0 {
		return statusError(op, used, ErrEncode)
	}

	if used > capacity {
		return fmt.Errorf("%w: %s reported %d bytes for a %d byte buffer", ErrEncode, op, used, capacity)
	}

	return nil
}
