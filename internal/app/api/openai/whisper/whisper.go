package whisper

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// RemoteTranscriber implements remote transcription using the OpenAI API.
type RemoteTranscriber struct {
	client   *openai.Client
	language string
	logger   *zap.Logger
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance. An empty
// language lets the service detect it.
func NewRemoteTranscriber(client *openai.Client, language string, logger *zap.Logger) *RemoteTranscriber {
	return &RemoteTranscriber{client: client, language: language, logger: logger}
}

// Transcript uses the OpenAI API for remote transcription. The hosted
// service serves a single model, so every tier maps to whisper-1.
func (rt *RemoteTranscriber) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	req := openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: inputFilePath,
		Language: rt.language,
	}

	rt.logger.Debug("sending audio to openai", zap.String("path", inputFilePath), zap.String("model", req.Model))

	resp, err := rt.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", fmt.Errorf("createTranscription failed: %w", err)
	}

	return resp.Text, nil
}
