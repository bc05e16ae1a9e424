// Package dataset turns directories of audio chunks and transcripts into a
// publishable dataset.
package dataset

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"youtube-whisper/internal/app/errors"
	"youtube-whisper/internal/app/model"
	"youtube-whisper/internal/app/util/files"
)

// ChunkExt is the audio format of dataset chunks.
const ChunkExt = "mp3"

// Assemble pairs every chunk in chunksDir with the transcript of the same base
// name in transcriptsDir. Chunks without a transcript, or with an empty one,
// are left out. Records are ordered by chunk file name and carry absolute
// audio paths.
func Assemble(chunksDir, transcriptsDir string) ([]model.DatasetRecord, error) {
	if info, err := os.Stat(chunksDir); err != nil || !info.IsDir() {
		return nil, errors.NotFound("chunks directory", chunksDir)
	}

	chunks, err := files.ListFiles(chunksDir, ChunkExt)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list chunks in %s", chunksDir)
	}

	return lo.FilterMap(chunks, func(chunk string, _ int) (model.DatasetRecord, bool) {
		text, ok := readTranscript(TranscriptPathFor(chunk, transcriptsDir))
		if !ok {
			return model.DatasetRecord{}, false
		}
		abs, err := files.GetAbsolutePath(chunk)
		if err != nil {
			return model.DatasetRecord{}, false
		}
		return model.DatasetRecord{AudioPath: abs, Transcript: text}, true
	}), nil
}

// TranscriptPathFor returns where the transcript of chunk lives.
func TranscriptPathFor(chunk, transcriptsDir string) string {
	return filepath.Join(transcriptsDir, model.NewLocalMediaFile(chunk).BaseName()+".txt")
}

// readTranscript returns the file content verbatim, and false when the file
// is missing or holds only whitespace.
func readTranscript(path string) (string, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	text := string(content)
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}
