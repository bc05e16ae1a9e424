package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read from the working directory when no --config is given.
const DefaultConfigFile = "v2t.yaml"

// Config holds every setting the pipeline stages need. Stages receive the
// parts they use explicitly; nothing reads package-level paths.
type Config struct {
	Paths       Paths       `yaml:"paths"`
	Download    Download    `yaml:"download"`
	Transcoder  Transcoder  `yaml:"transcoder"`
	Transcriber Transcriber `yaml:"transcriber"`
	Dataset     Dataset     `yaml:"dataset"`
	HuggingFace HuggingFace `yaml:"huggingface"`
	MinIO       MinIO       `yaml:"minio"`
}

// Paths contains the filesystem layout.
type Paths struct {
	DownloadsDir   string `yaml:"downloads_dir" validate:"required"`
	ChunksDir      string `yaml:"chunks_dir" validate:"required"`
	TranscriptsDir string `yaml:"transcripts_dir" validate:"required"`
	TranscriptFile string `yaml:"transcript_file" validate:"required"`
	ParquetFile    string `yaml:"parquet_file" validate:"required"`
	HistoryDB      string `yaml:"history_db"`
}

// Download configures the fetcher. Progress bars are only drawn when stderr
// is a terminal, even with Progress set.
type Download struct {
	TimeoutSec int  `yaml:"timeout_sec" validate:"gte=0"`
	Progress   bool `yaml:"progress"`
}

// Transcoder configures the ffmpeg conversion.
type Transcoder struct {
	FFmpegPath   string `yaml:"ffmpeg_path" validate:"required"`
	TargetFormat string `yaml:"target_format" validate:"oneof=mp3 wav m4a flac"`
	Quality      string `yaml:"quality" validate:"required"`
}

// Transcriber configures the speech-to-text provider.
type Transcriber struct {
	Provider  string `yaml:"provider" validate:"oneof=whisper_cpp openai"`
	Model     string `yaml:"model" validate:"oneof=tiny base small medium large"`
	Language  string `yaml:"language"`
	LineWidth int    `yaml:"line_width" validate:"gte=0"`

	WhisperCppBinary   string `yaml:"whisper_cpp_binary"`
	WhisperCppModelDir string `yaml:"whisper_cpp_model_dir"`
	Threads            int    `yaml:"threads" validate:"gte=0"`

	OpenAIKey     string `yaml:"openai_api_key"`
	OpenAIBaseURL string `yaml:"openai_base_url"`

	TimeoutSec int `yaml:"timeout_sec" validate:"gt=0"`

	// FFmpegPath mirrors Transcoder.FFmpegPath for providers that resample
	// their input.
	FFmpegPath string `yaml:"-"`
}

// Dataset configures assembly and publishing of chunk datasets.
type Dataset struct {
	RepoID       string `yaml:"repo_id"`
	Target       string `yaml:"target" validate:"oneof=huggingface minio"`
	Private      bool   `yaml:"private"`
	SamplingRate int    `yaml:"sampling_rate" validate:"gt=0"`
}

// HuggingFace configures the dataset hub.
type HuggingFace struct {
	Endpoint string `yaml:"endpoint" validate:"required,url"`
	Token    string `yaml:"token"`
}

// MinIO configures the object store publish target.
type MinIO struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// PinnedLanguage returns the configured language, or "" when it should be
// auto-detected.
func (t Transcriber) PinnedLanguage() string {
	lang := strings.TrimSpace(strings.ToLower(t.Language))
	if lang == "auto" {
		return ""
	}
	return lang
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in that order, and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}
	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	ApplyEnv(cfg)
	cfg.Transcriber.FFmpegPath = cfg.Transcoder.FFmpegPath

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}
