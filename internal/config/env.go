package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// envPaths are searched in order; the first existing file wins.
var envPaths = []string{
	".env",
	".env.local",
	"../.env",
}

// LoadEnv loads environment variables from the first .env file found.
// Variables already set in the process environment are not overridden.
// It returns the path that was loaded, or "" if none exists.
func LoadEnv() (string, error) {
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return "", fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			return envPath, nil
		}
	}
	return "", nil
}

// ApplyEnv overrides cfg with values from the environment.
func ApplyEnv(cfg *Config) {
	cfg.Paths.DownloadsDir = getEnvOrDefault("V2T_DOWNLOADS_DIR", cfg.Paths.DownloadsDir)
	cfg.Paths.ChunksDir = getEnvOrDefault("V2T_CHUNKS_DIR", cfg.Paths.ChunksDir)
	cfg.Paths.TranscriptsDir = getEnvOrDefault("V2T_TRANSCRIPTS_DIR", cfg.Paths.TranscriptsDir)
	cfg.Paths.TranscriptFile = getEnvOrDefault("V2T_TRANSCRIPT_FILE", cfg.Paths.TranscriptFile)
	cfg.Paths.ParquetFile = getEnvOrDefault("V2T_PARQUET_FILE", cfg.Paths.ParquetFile)
	cfg.Paths.HistoryDB = getEnvOrDefault("V2T_HISTORY_DB", cfg.Paths.HistoryDB)

	cfg.Download.Progress = getBoolEnvOrDefault("V2T_PROGRESS", cfg.Download.Progress)

	cfg.Transcoder.FFmpegPath = getEnvOrDefault("V2T_FFMPEG_PATH", cfg.Transcoder.FFmpegPath)

	cfg.Transcriber.Provider = getEnvOrDefault("V2T_PROVIDER", cfg.Transcriber.Provider)
	cfg.Transcriber.Model = getEnvOrDefault("V2T_MODEL", cfg.Transcriber.Model)
	cfg.Transcriber.Language = getEnvOrDefault("V2T_LANGUAGE", cfg.Transcriber.Language)
	cfg.Transcriber.LineWidth = getIntEnvOrDefault("V2T_LINE_WIDTH", cfg.Transcriber.LineWidth)
	cfg.Transcriber.WhisperCppBinary = getEnvOrDefault("WHISPER_CPP_BINARY", cfg.Transcriber.WhisperCppBinary)
	cfg.Transcriber.WhisperCppModelDir = getEnvOrDefault("WHISPER_CPP_MODEL_DIR", cfg.Transcriber.WhisperCppModelDir)
	cfg.Transcriber.OpenAIKey = getEnvOrDefault("OPENAI_API_KEY", cfg.Transcriber.OpenAIKey)
	cfg.Transcriber.OpenAIBaseURL = getEnvOrDefault("OPENAI_BASE_URL", cfg.Transcriber.OpenAIBaseURL)

	cfg.Dataset.RepoID = getEnvOrDefault("V2T_DATASET_REPO", cfg.Dataset.RepoID)
	cfg.Dataset.Target = getEnvOrDefault("V2T_DATASET_TARGET", cfg.Dataset.Target)

	cfg.HuggingFace.Endpoint = getEnvOrDefault("HF_ENDPOINT", cfg.HuggingFace.Endpoint)
	cfg.HuggingFace.Token = getEnvOrDefault("HF_TOKEN", cfg.HuggingFace.Token)

	cfg.MinIO.Endpoint = getEnvOrDefault("MINIO_ENDPOINT", cfg.MinIO.Endpoint)
	cfg.MinIO.AccessKey = getEnvOrDefault("MINIO_ACCESS_KEY", cfg.MinIO.AccessKey)
	cfg.MinIO.SecretKey = getEnvOrDefault("MINIO_SECRET_KEY", cfg.MinIO.SecretKey)
	cfg.MinIO.Bucket = getEnvOrDefault("MINIO_BUCKET", cfg.MinIO.Bucket)
	if v, ok := os.LookupEnv("MINIO_USE_SSL"); ok {
		cfg.MinIO.UseSSL = strings.EqualFold(strings.TrimSpace(v), "true")
	}
}

func getEnvOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getBoolEnvOrDefault(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getIntEnvOrDefault(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
