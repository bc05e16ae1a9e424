package api

import (
	"context"
	"os"
	"strings"

	"go.uber.org/zap"

	"youtube-whisper/internal/app/errors"
)

// CheckedTranscriber applies the contract every provider shares: the input
// must exist, output is trimmed, and an empty transcript is returned as-is
// with a warning.
type CheckedTranscriber struct {
	inner  Transcriber
	logger *zap.Logger
}

func NewCheckedTranscriber(inner Transcriber, logger *zap.Logger) *CheckedTranscriber {
	return &CheckedTranscriber{inner: inner, logger: logger}
}

func (c *CheckedTranscriber) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	info, err := os.Stat(inputFilePath)
	if err != nil || info.IsDir() {
		return "", errors.NotFound("audio file", inputFilePath)
	}

	c.logger.Info("starting transcription", zap.String("path", inputFilePath))

	text, err := c.inner.Transcript(ctx, inputFilePath)
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		c.logger.Warn("transcription is empty", zap.String("path", inputFilePath))
	}
	return text, nil
}
