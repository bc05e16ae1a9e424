// Package cli holds the state shared by every v2t subcommand: persistent
// flags, configuration loading and the logger.
package cli

import (
	"errors"

	"go.uber.org/zap"

	"youtube-whisper/internal/app/common"
	"youtube-whisper/internal/config"
)

// Flags are the persistent root flags.
type Flags struct {
	ConfigPath string
	Verbose    bool
	Model      string
	Language   string
	Provider   string
}

// Global is bound to the root command's persistent flags.
var Global Flags

// ErrReported marks a failure that has already been logged. The root command
// exits non-zero without printing it again.
var ErrReported = errors.New("failure already reported")

// NewLogger builds the logger handed out by Load.
var NewLogger = common.NewLogger

// Load reads the configuration, applies flag overrides and builds the logger.
func Load() (*config.Config, *zap.Logger, error) {
	logger, err := NewLogger(Global.Verbose)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load(Global.ConfigPath)
	if err != nil {
		logger.Error("failed to load configuration", zap.Error(err))
		return nil, nil, ErrReported
	}

	if Global.applyTo(cfg) {
		if err := config.Validate(cfg); err != nil {
			logger.Error("invalid flag value", zap.Error(err))
			return nil, nil, ErrReported
		}
	}
	return cfg, logger, nil
}

func (f Flags) applyTo(cfg *config.Config) bool {
	changed := false
	if f.Model != "" {
		cfg.Transcriber.Model = f.Model
		changed = true
	}
	if f.Language != "" {
		cfg.Transcriber.Language = f.Language
		changed = true
	}
	if f.Provider != "" {
		cfg.Transcriber.Provider = f.Provider
		changed = true
	}
	return changed
}
