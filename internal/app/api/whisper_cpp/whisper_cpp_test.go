package whisper_cpp

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"youtube-whisper/internal/app/api"
	"youtube-whisper/internal/app/errors"
	"youtube-whisper/internal/config"
)

func TestNewLocalTranscriber_ModelFiles(t *testing.T) {
	tests := []struct {
		tier api.ModelTier
		want string
	}{
		{api.ModelTiny, "ggml-tiny.bin"},
		{api.ModelBase, "ggml-base.bin"},
		{api.ModelSmall, "ggml-small.bin"},
		{api.ModelMedium, "ggml-medium.bin"},
		{api.ModelLarge, "ggml-large-v3.bin"},
	}

	for _, tt := range tests {
		t.Run(string(tt.tier), func(t *testing.T) {
			lt, err := NewLocalTranscriber("whisper-cli", "/models", tt.tier, "", 0, time.Minute, zap.NewNop())
			require.NoError(t, err)
			assert.Equal(t, filepath.Join("/models", tt.want), lt.modelPath)
		})
	}

	_, err := NewLocalTranscriber("whisper-cli", "/models", "huge", "", 0, time.Minute, zap.NewNop())
	assert.Error(t, err)
}

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name     string
		language string
		threads  int
		want     []string
	}{
		{
			name: "auto language",
			want: []string{"-m", "/models/ggml-small.bin", "-l", "auto", "-nt", "-otxt", "-f", "/in.wav", "-of", "/tmp/out"},
		},
		{
			name:     "pinned language with threads",
			language: "en",
			threads:  4,
			want:     []string{"-m", "/models/ggml-small.bin", "-l", "en", "-nt", "-otxt", "-f", "/in.wav", "-of", "/tmp/out", "-t", "4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lt, err := NewLocalTranscriber("whisper-cli", "/models", api.ModelSmall, tt.language, tt.threads, 0, zap.NewNop())
			require.NoError(t, err)
			assert.Equal(t, tt.want, lt.buildArgs("/in.wav", "/tmp/out"))
		})
	}
}

func TestTranscript_MissingModel(t *testing.T) {
	lt, err := NewLocalTranscriber("whisper-cli", t.TempDir(), api.ModelSmall, "", 0, 0, zap.NewNop())
	require.NoError(t, err)

	_, err = lt.Transcript(context.Background(), "/test/audio.wav")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestTranscript_MissingBinary(t *testing.T) {
	modelDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(modelDir, "ggml-small.bin"), []byte("model"), 0o644))

	lt, err := NewLocalTranscriber("v2t-test-no-such-whisper", modelDir, api.ModelSmall, "", 0, 0, zap.NewNop())
	require.NoError(t, err)

	_, err = lt.Transcript(context.Background(), "/test/audio.wav")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestProviderRegistered(t *testing.T) {
	assert.Contains(t, api.ListRegisteredProviders(), "whisper_cpp")

	tr, err := createWhisperCppProvider(config.Transcriber{
		Provider:           "whisper_cpp",
		Model:              "medium",
		Language:           "auto",
		WhisperCppBinary:   "whisper-cli",
		WhisperCppModelDir: "/models",
		TimeoutSec:         30,
		FFmpegPath:         "/opt/ffmpeg/bin/ffmpeg",
	}, zap.NewNop())
	require.NoError(t, err)

	lt := tr.(*LocalTranscriber)
	assert.Equal(t, "/models/ggml-medium.bin", lt.modelPath)
	assert.Empty(t, lt.language)
	assert.Equal(t, 30*time.Second, lt.timeout)
	assert.Equal(t, "/opt/ffmpeg/bin/ffmpeg", lt.ffmpegPath)
}

func TestTranscript_MissingConfiguredFFmpeg(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script fakes need a POSIX shell")
	}
	modelDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(modelDir, "ggml-small.bin"), []byte("model"), 0o644))
	binary := filepath.Join(t.TempDir(), "whisper-cli")
	require.NoError(t, os.WriteFile(binary, []byte("#!/bin/sh\nexit 0\n"), 0o755))

	lt, err := NewLocalTranscriber(binary, modelDir, api.ModelSmall, "", 0, 0, zap.NewNop())
	require.NoError(t, err)
	lt.WithFFmpeg(filepath.Join(t.TempDir(), "missing", "ffmpeg"))

	_, err = lt.Transcript(context.Background(), "/test/audio.mp3")
	assert.ErrorIs(t, err, errors.ErrTranscode)
	assert.ErrorIs(t, err, errors.ErrToolNotFound)
}

func TestWithFFmpeg_KeepsDefaultForEmptyPath(t *testing.T) {
	lt, err := NewLocalTranscriber("whisper-cli", "/models", api.ModelSmall, "", 0, 0, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "ffmpeg", lt.WithFFmpeg("").ffmpegPath)
}
