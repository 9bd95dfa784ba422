// SPDX-License-Identifier: EPL-2.0

package lame

import (
	"errors"
	"fmt"
)

var (
	ErrEngineUnavailable   = errors.New("mp3 encoding engine unavailable")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrEngineConfig        = errors.New("engine rejected configuration")
	ErrSessionNotReady     = errors.New("session parameters not committed")
	ErrSessionClosed       = errors.New("session closed")
	ErrEncode              = errors.New("engine encode failed")
	ErrParametersCommitted = errors.New("parameters already committed")
	ErrEngineClose         = errors.New("engine failed to release handle")
)

// StatusError carries a status code reported by the engine. It unwraps to
// one of the package sentinels so callers can match with errors.Is.
type StatusError struct {
	Op   string
	Code int
	Kind error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Kind, e.Code)
}

func (e *StatusError) Unwrap() error { return e.Kind }

func statusError(op string, code int, kind error) error {
	return &StatusError{Op: op, Code: code, Kind: kind}
}
