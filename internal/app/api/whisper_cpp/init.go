package whisper_cpp

import (
	"time"

	"go.uber.org/zap"

	"youtube-whisper/internal/app/api"
	"youtube-whisper/internal/config"
)

func init() {
	api.RegisterProvider("whisper_cpp", createWhisperCppProvider)
}

func createWhisperCppProvider(cfg config.Transcriber, logger *zap.Logger) (api.Transcriber, error) {
	lt, err := NewLocalTranscriber(
		cfg.WhisperCppBinary,
		cfg.WhisperCppModelDir,
		api.ModelTier(cfg.Model),
		cfg.PinnedLanguage(),
		cfg.Threads,
		time.Duration(cfg.TimeoutSec)*time.Second,
		logger,
	)
	if err != nil {
		return nil, err
	}
	return lt.WithFFmpeg(cfg.FFmpegPath), nil
}
