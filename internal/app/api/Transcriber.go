package api

import "context"

// Transcriber defines a transcription interface for converting audio files to text.
// Model tier and language are fixed when the transcriber is created so one
// instance can be reused across many files.
type Transcriber interface {
	Transcript(ctx context.Context, inputFilePath string) (string, error)
}

// ModelTier names a pretrained model size. Smaller tiers are faster, larger
// tiers are more accurate.
type ModelTier string

const (
	ModelTiny   ModelTier = "tiny"
	ModelBase   ModelTier = "base"
	ModelSmall  ModelTier = "small"
	ModelMedium ModelTier = "medium"
	ModelLarge  ModelTier = "large"
)
