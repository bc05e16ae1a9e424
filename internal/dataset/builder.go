package dataset

import (
	"context"
	"os"

	"go.uber.org/zap"

	"youtube-whisper/internal/app/api"
	"youtube-whisper/internal/app/errors"
	"youtube-whisper/internal/app/transcript"
	"youtube-whisper/internal/app/util/files"
)

// Builder produces the transcript half of a chunk dataset.
type Builder struct {
	transcriber api.Transcriber
	lineWidth   int
	logger      *zap.Logger
}

func NewBuilder(transcriber api.Transcriber, lineWidth int, logger *zap.Logger) *Builder {
	return &Builder{transcriber: transcriber, lineWidth: lineWidth, logger: logger}
}

// TranscribeStats summarizes one TranscribeChunks pass.
type TranscribeStats struct {
	Transcribed int
	Skipped     int
	Empty       int
}

// TranscribeChunks transcribes every chunk in chunksDir that has no transcript
// yet and writes <name>.txt into transcriptsDir. Chunks are handled one at a
// time; the first failure stops the pass.
func (b *Builder) TranscribeChunks(ctx context.Context, chunksDir, transcriptsDir string) (TranscribeStats, error) {
	var stats TranscribeStats

	chunks, err := files.ListFiles(chunksDir, ChunkExt)
	if err != nil {
		return stats, errors.NotFound("chunks directory", chunksDir)
	}
	if err := files.EnsureDir(transcriptsDir); err != nil {
		return stats, err
	}

	b.logger.Info("transcribing chunks", zap.String("dir", chunksDir), zap.Int("count", len(chunks)))

	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		out := TranscriptPathFor(chunk, transcriptsDir)
		if _, ok := readTranscript(out); ok {
			stats.Skipped++
			continue
		}

		text, err := b.transcriber.Transcript(ctx, chunk)
		if err != nil {
			return stats, errors.Wrapf(err, "failed to transcribe %s", chunk)
		}
		if text == "" {
			// Leave no file so the chunk is retried on the next pass.
			stats.Empty++
			_ = os.Remove(out)
			continue
		}

		if err := transcript.Write(out, text, b.lineWidth); err != nil {
			return stats, errors.Wrapf(err, "failed to write %s", out)
		}
		stats.Transcribed++

		b.logger.Info("chunk transcribed",
			zap.Int("index", i+1),
			zap.Int("total", len(chunks)),
			zap.String("transcript", out))
	}

	return stats, nil
}
