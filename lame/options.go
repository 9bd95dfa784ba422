// SPDX-License-Identifier: EPL-2.0

package lame

import "log/slog"

// Observer receives the outcome of data-producing session calls.
// Implementations must be safe for concurrent use when shared by sessions.
type Observer interface {
	Encoded(samples, bytes int)
	Flushed(bytes int)
	Failed(op string, err error)
}

type nopObserver struct{}

func (nopObserver) Encoded(int, int)     {}
func (nopObserver) Flushed(int)          {}
func (nopObserver) Failed(string, error) {}

// Option customises a Session.
type Option func(*Session)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithObserver attaches an Observer, e.g. a metrics collector.
func WithObserver(o Observer) Option {
	return func(s *Session) {
		if o != nil {
			s.observer = o
		}
	}
}

// Config is the full set of encoder parameters, applied in one step by
// Session.CommitConfig. Zero fields keep the engine's current value.
type Config struct {
	SampleRate int
	Channels   int
	Mode       *Mode
	BitRate    int
	Quality    *int
}

// ModePtr returns a pointer to m, for use in Config.
func ModePtr(m Mode) *Mode { return &m }

// QualityPtr returns a pointer to q, for use in Config.
func QualityPtr(q int) *int { return &q }
