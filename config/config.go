// SPDX-License-Identifier: EPL-2.0

// Package config reads encoder settings from AUDLAME_* environment variables,
// optionally seeded from .env files.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/ik5/audlame"
	"github.com/ik5/audlame/internal/logger"
	"github.com/ik5/audlame/lame"
)

// Prefix is prepended to every variable name.
const Prefix = "AUDLAME"

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the encoder settings.
type Config struct {
	// Engine settings
	Engine      string `envconfig:"ENGINE" default:"auto"`
	LibraryPath string `envconfig:"LIBRARY_PATH"`

	// Encoder parameters. Zero values (and a negative quality) keep the
	// engine defaults.
	SampleRate int    `envconfig:"SAMPLE_RATE"`
	Channels   int    `envconfig:"CHANNELS"`
	Mode       string `envconfig:"MODE"`
	BitRate    int    `envconfig:"BIT_RATE"`
	Quality    int    `envconfig:"QUALITY" default:"-1"`

	// Pipeline settings
	ChunkSize int `envconfig:"CHUNK_SIZE" default:"4096"`

	// Logging
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads the given .env files (".env" when none are named) into the
// environment, then parses and validates the AUDLAME_* variables. Missing
// .env files are not an error; variables already set in the environment win.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks every field without touching an engine.
func (c *Config) Validate() error {
	var errs []error

	engines := []string{audlame.EngineAuto, audlame.EngineLame, audlame.EngineShine}
	if !slices.Contains(engines, strings.ToLower(c.Engine)) {
		errs = append(errs, fmt.Errorf("engine %q is not one of %v", c.Engine, engines))
	}

	if c.SampleRate < 0 {
		errs = append(errs, fmt.Errorf("sample rate %d is negative", c.SampleRate))
	}

	if c.Channels < 0 || c.Channels > 2 {
		errs = append(errs, fmt.Errorf("channels %d outside 0-2", c.Channels))
	}

	if c.Mode != "" {
		if _, err := lame.ParseMode(c.Mode); err != nil {
			errs = append(errs, err)
		}
	}

	if c.BitRate < 0 {
		errs = append(errs, fmt.Errorf("bit rate %d is negative", c.BitRate))
	}

	if c.Quality < -1 || c.Quality > 9 {
		errs = append(errs, fmt.Errorf("quality %d outside 0-9", c.Quality))
	}

	if c.ChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("chunk size %d must be positive", c.ChunkSize))
	}

	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}

	return nil
}

// SessionConfig converts the encoder parameters for lame.Session.CommitConfig.
func (c *Config) SessionConfig() (lame.Config, error) {
	cfg := lame.Config{
		SampleRate: c.SampleRate,
		Channels:   c.Channels,
		BitRate:    c.BitRate,
	}

	if c.Mode != "" {
		mode, err := lame.ParseMode(c.Mode)
		if err != nil {
			return lame.Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		cfg.Mode = lame.ModePtr(mode)
	}

	if c.Quality >= 0 {
		cfg.Quality = lame.QualityPtr(c.Quality)
	}

	return cfg, nil
}

// EncodeOptions converts the settings for audlame.Encode. The pipeline is
// always mono, so Channels and Mode do not apply.
func (c *Config) EncodeOptions() audlame.Options {
	opts := audlame.Options{
		BitRate:    c.BitRate,
		SampleRate: c.SampleRate,
		ChunkSize:  c.ChunkSize,
	}

	if c.Quality >= 0 {
		opts.Quality = lame.QualityPtr(c.Quality)
	}

	return opts
}

// OpenEngine opens the configured engine.
func (c *Config) OpenEngine() (lame.Engine, error) {
	return audlame.OpenEngine(c.Engine, c.LibraryPath)
}

// NewSession opens the configured engine and starts a session that logs to w
// at the configured level. Further options are applied after the logger.
// The caller commits the session, for example with SessionConfig.
func (c *Config) NewSession(w io.Writer, opts ...lame.Option) (*lame.Session, error) {
	log, err := logger.New(w, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	engine, err := c.OpenEngine()
	if err != nil {
		return nil, err
	}

	return lame.NewSession(engine, append([]lame.Option{lame.WithLogger(log)}, opts...)...)
}
