// SPDX-License-Identifier: EPL-2.0

package lame

// Open loads libmp3lame from the platform's usual locations and starts a
// session on it.
func Open(opts ...Option) (*Session, error) {
	return OpenPath("", opts...)
}

// OpenPath is Open with an explicit library path. An empty path searches the
// usual locations.
func OpenPath(path string, opts ...Option) (*Session, error) {
	var paths []string
	if path != "" {
		paths = []string{path}
	}

	lib, err := LoadLibrary(paths...)
	if err != nil {
		return nil, err
	}

	return NewSession(lib, opts...)
}
