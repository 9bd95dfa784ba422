// SPDX-License-Identifier: EPL-2.0

//go:build (darwin || freebsd || linux) && !android

package lame

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/ebitengine/purego"
)

// Library is libmp3lame loaded into the process with its entry points bound.
// It implements Engine; each handle it creates is independent.
type Library struct {
	path string

	lameInit                func() uintptr
	getLameVersion          func() string
	setInSamplerate         func(gfp uintptr, hz int32) int32
	getInSamplerate         func(gfp uintptr) int32
	setNumChannels          func(gfp uintptr, n int32) int32
	getNumChannels          func(gfp uintptr) int32
	setMode                 func(gfp uintptr, mode int32) int32
	getMode                 func(gfp uintptr) int32
	setBrate                func(gfp uintptr, kbps int32) int32
	getBrate                func(gfp uintptr) int32
	setQuality              func(gfp uintptr, q int32) int32
	getQuality              func(gfp uintptr) int32
	initParams              func(gfp uintptr) int32
	encodeBuffer            func(gfp uintptr, left, right *int16, nsamples int32, mp3buf *byte, size int32) int32
	encodeBufferInterleaved func(gfp uintptr, pcm *int16, nsamples int32, mp3buf *byte, size int32) int32
	encodeFlush             func(gfp uintptr, mp3buf *byte, size int32) int32
	lameClose               func(gfp uintptr) int32
}

func defaultLibraryNames() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{
			"libmp3lame.dylib",
			"libmp3lame.0.dylib",
			"/opt/homebrew/lib/libmp3lame.dylib",
			"/usr/local/lib/libmp3lame.dylib",
		}
	default:
		return []string{"libmp3lame.so.0", "libmp3lame.so"}
	}
}

// LoadLibrary opens the first of paths that loads, or the platform's usual
// libmp3lame names when paths is empty. It fails with ErrEngineUnavailable
// when none can be loaded and bound.
func LoadLibrary(paths ...string) (*Library, error) {
	if len(paths) == 0 {
		paths = defaultLibraryNames()
	}

	var errs []error
	for _, path := range paths {
		if path == "" {
			continue
		}

		dl, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil {
			errs = append(errs, fmt.Errorf("open %s: %w", path, err))
			continue
		}

		lib, err := bind(dl, path)
		if err != nil {
			_ = purego.Dlclose(dl)
			errs = append(errs, fmt.Errorf("bind %s: %w", path, err))
			continue
		}

		return lib, nil
	}

	if len(errs) == 0 {
		return nil, fmt.Errorf("%w: no library path given", ErrEngineUnavailable)
	}

	return nil, fmt.Errorf("%w: %w", ErrEngineUnavailable, errors.Join(errs...))
}

func bind(dl uintptr, path string) (*Library, error) {
	lib := &Library{path: path}

	symbols := []struct {
		name string
		fptr any
	}{
		{"lame_init", &lib.lameInit},
		{"get_lame_version", &lib.getLameVersion},
		{"lame_set_in_samplerate", &lib.setInSamplerate},
		{"lame_get_in_samplerate", &lib.getInSamplerate},
		{"lame_set_num_channels", &lib.setNumChannels},
		{"lame_get_num_channels", &lib.getNumChannels},
		{"lame_set_mode", &lib.setMode},
		{"lame_get_mode", &lib.getMode},
		{"lame_set_brate", &lib.setBrate},
		{"lame_get_brate", &lib.getBrate},
		{"lame_set_quality", &lib.setQuality},
		{"lame_get_quality", &lib.getQuality},
		{"lame_init_params", &lib.initParams},
		{"lame_encode_buffer", &lib.encodeBuffer},
		{"lame_encode_buffer_interleaved", &lib.encodeBufferInterleaved},
		{"lame_encode_flush", &lib.encodeFlush},
		{"lame_close", &lib.lameClose},
	}

	for _, sym := range symbols {
		addr, err := purego.Dlsym(dl, sym.name)
		if err != nil {
			return nil, fmt.Errorf("symbol %s: %w", sym.name, err)
		}

		purego.RegisterFunc(sym.fptr, addr)
	}

	return lib, nil
}

// Path is the library path that was loaded.
func (l *Library) Path() string { return l.path }

func (l *Library) Version() string { return l.getLameVersion() }

func (l *Library) NewHandle() (Handle, error) {
	gfp := l.lameInit()
	if gfp == 0 {
		return nil, errors.New("lame_init returned NULL")
	}

	return &libraryHandle{lib: l, gfp: gfp}, nil
}

type libraryHandle struct {
	lib *Library
	gfp uintptr
}

func (h *libraryHandle) SetInSampleRate(hz int) int {
	return int(h.lib.setInSamplerate(h.gfp, int32(hz)))
}

func (h *libraryHandle) InSampleRate() int { return int(h.lib.getInSamplerate(h.gfp)) }

func (h *libraryHandle) SetNumChannels(n int) int {
	return int(h.lib.setNumChannels(h.gfp, int32(n)))
}

func (h *libraryHandle) NumChannels() int { return int(h.lib.getNumChannels(h.gfp)) }

func (h *libraryHandle) SetMode(m Mode) int { return int(h.lib.setMode(h.gfp, int32(m))) }

func (h *libraryHandle) Mode() Mode { return Mode(h.lib.getMode(h.gfp)) }

func (h *libraryHandle) SetBitRate(kbps int) int {
	return int(h.lib.setBrate(h.gfp, int32(kbps)))
}

func (h *libraryHandle) BitRate() int { return int(h.lib.getBrate(h.gfp)) }

func (h *libraryHandle) SetQuality(q int) int { return int(h.lib.setQuality(h.gfp, int32(q))) }

func (h *libraryHandle) Quality() int { return int(h.lib.getQuality(h.gfp)) }

func (h *libraryHandle) InitParams() int { return int(h.lib.initParams(h.gfp)) }

func (h *libraryHandle) EncodeBuffer(left, right []int16, nsamples int, out []byte) int {
	used := h.lib.encodeBuffer(h.gfp, firstSample(left), firstSample(right), int32(nsamples),
		firstByte(out), int32(len(out)))
	runtime.KeepAlive(left)
	runtime.KeepAlive(right)
	runtime.KeepAlive(out)

	return int(used)
}

func (h *libraryHandle) EncodeBufferInterleaved(pcm []int16, nsamples int, out []byte) int {
	used := h.lib.encodeBufferInterleaved(h.gfp, firstSample(pcm), int32(nsamples),
		firstByte(out), int32(len(out)))
	runtime.KeepAlive(pcm)
	runtime.KeepAlive(out)

	return int(used)
}

func (h *libraryHandle) EncodeFlush(out []byte) int {
	used := h.lib.encodeFlush(h.gfp, firstByte(out), int32(len(out)))
	runtime.KeepAlive(out)

	return int(used)
}

func (h *libraryHandle) Close() int {
	code := h.lib.lameClose(h.gfp)
	h.gfp = 0

	return int(code)
}

func firstSample(s []int16) *int16 {
	if len(s) == 0 {
		return nil
	}

	return &s[0]
}

func firstByte(b []byte) *byte {
	if len(b) == 0 {
		return nil
	}

	return &b[0]
}
