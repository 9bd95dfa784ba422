// SPDX-License-Identifier: EPL-2.0

package audlame

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ik5/audlame/lame"
	"github.com/ik5/audlame/shine"
)

// Engine names accepted by OpenEngine.
const (
	EngineAuto  = "auto"
	EngineLame  = "lame"
	EngineShine = "shine"
)

var ErrUnknownEngine = errors.New("unknown encoder engine")

// OpenEngine returns the named encoder engine.
//
//   - "lame" (or "native") loads libmp3lame, from libraryPath when set and
//     from the platform's usual names otherwise.
//   - "shine" is the pure-Go fixed 128 kbps encoder.
//   - "auto" (or "") tries libmp3lame and falls back to shine.
func OpenEngine(name, libraryPath string) (lame.Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case EngineLame, "native", "libmp3lame":
		return loadLame(libraryPath)
	case EngineShine:
		return shine.New(), nil
	case EngineAuto, "":
		lib, err := loadLame(libraryPath)
		if err == nil {
			return lib, nil
		}

		if !errors.Is(err, lame.ErrEngineUnavailable) {
			return nil, err
		}

		return shine.New(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
}

func loadLame(libraryPath string) (*lame.Library, error) {
	if libraryPath != "" {
		return lame.LoadLibrary(libraryPath)
	}

	return lame.LoadLibrary()
}
