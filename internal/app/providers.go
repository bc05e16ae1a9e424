package app

import (
	"os"
	"time"

	"github.com/google/wire"
	"go.uber.org/zap"

	"youtube-whisper/internal/app/api"
	"youtube-whisper/internal/app/audio"
	"youtube-whisper/internal/app/pipeline"
	"youtube-whisper/internal/app/repository"
	"youtube-whisper/internal/app/repository/sqlite"
	"youtube-whisper/internal/config"
	"youtube-whisper/internal/downloader"
)

// StageSet provides every pipeline stage from a *config.Config and a logger.
var StageSet = wire.NewSet(
	provideFetcher,
	provideTranscoder,
	provideTranscriber,
	wire.Bind(new(pipeline.Fetcher), new(*downloader.YouTubeFetcher)),
	wire.Bind(new(pipeline.Transcoder), new(*audio.Transcoder)),
)

// stderrIsTTY decides whether download progress can be drawn.
var stderrIsTTY = func() bool { return downloader.IsTTY(os.Stderr) }

func provideProgress(cfg *config.Config) downloader.ProgressConfig {
	return downloader.ProgressConfig{
		Enabled: cfg.Download.Progress && stderrIsTTY(),
		Writer:  os.Stderr,
	}
}

func provideFetcher(cfg *config.Config, logger *zap.Logger) *downloader.YouTubeFetcher {
	timeout := time.Duration(cfg.Download.TimeoutSec) * time.Second
	return downloader.NewYouTubeFetcher(cfg.Paths.DownloadsDir, timeout, provideProgress(cfg), logger)
}

func provideTranscoder(cfg *config.Config, logger *zap.Logger) *audio.Transcoder {
	return audio.NewTranscoder(cfg.Transcoder, logger)
}

// provideTranscriber builds the configured provider once per process.
func provideTranscriber(cfg *config.Config, logger *zap.Logger) (api.Transcriber, error) {
	return api.NewTranscriber(cfg.Transcriber, logger)
}

// provideRunDAO returns a nil DAO when no history database is configured.
func provideRunDAO(cfg *config.Config) (repository.RunDAO, error) {
	if cfg.Paths.HistoryDB == "" {
		return nil, nil
	}
	db, err := sqlite.NewSQLiteDB(cfg.Paths.HistoryDB)
	if err != nil {
		return nil, err
	}
	return db, nil
}

func provideOptions(cfg *config.Config) pipeline.Options {
	return pipeline.Options{
		TranscriptPath: cfg.Paths.TranscriptFile,
		LineWidth:      cfg.Transcriber.LineWidth,
		Model:          cfg.Transcriber.Model,
		Language:       cfg.Transcriber.Language,
	}
}

func provideLineWidth(cfg *config.Config) int {
	return cfg.Transcriber.LineWidth
}
