package whisper

import (
	"go.uber.org/zap"

	"youtube-whisper/internal/app/api"
	"youtube-whisper/internal/app/api/openai"
	"youtube-whisper/internal/config"
)

func init() {
	api.RegisterProvider("openai", createOpenAIProvider)
}

func createOpenAIProvider(cfg config.Transcriber, logger *zap.Logger) (api.Transcriber, error) {
	client := openai.NewClient(cfg.OpenAIKey, cfg.OpenAIBaseURL)
	return NewRemoteTranscriber(client, cfg.PinnedLanguage(), logger), nil
}
