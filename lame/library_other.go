// SPDX-License-Identifier: EPL-2.0

//go:build android || !(darwin || freebsd || linux)

package lame

import "fmt"

// Library is libmp3lame loaded into the process. Dynamic loading is not
// available on this platform.
type Library struct{}

// LoadLibrary always fails with ErrEngineUnavailable on this platform.
func LoadLibrary(paths ...string) (*Library, error) {
	return nil, fmt.Errorf("%w: dynamic loading is not supported on this platform", ErrEngineUnavailable)
}

func (*Library) Path() string { return "" }

func (*Library) Version() string { return "" }

func (*Library) NewHandle() (Handle, error) {
	return nil, ErrEngineUnavailable
}
