package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks struct-level constraints on cfg.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed on '%s' (value %q)", fe.Namespace(), fe.Tag(), fmt.Sprint(fe.Value())))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := ValidateTimeout(time.Duration(cfg.Transcriber.TimeoutSec)*time.Second, "transcriber"); err != nil {
		return err
	}
	return ValidateURL(cfg.HuggingFace.Endpoint, "huggingface endpoint")
}

// RequireTranscriber checks the provider-specific settings needed to build a
// transcriber.
func RequireTranscriber(t Transcriber) error {
	switch t.Provider {
	case "whisper_cpp":
		if t.WhisperCppBinary == "" {
			return fmt.Errorf("whisper_cpp_binary is required (set WHISPER_CPP_BINARY)")
		}
		if t.WhisperCppModelDir == "" {
			return fmt.Errorf("whisper_cpp_model_dir is required (set WHISPER_CPP_MODEL_DIR)")
		}
	case "openai":
		if err := ValidateAPIKey(t.OpenAIKey, "OpenAI"); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown transcriber provider: %s", t.Provider)
	}
	return nil
}

// RequirePublish checks the settings needed to publish to target.
func RequirePublish(cfg *Config, target string) error {
	switch target {
	case "huggingface":
		if cfg.HuggingFace.Token == "" {
			return fmt.Errorf("huggingface token is required (set HF_TOKEN)")
		}
	case "minio":
		if cfg.MinIO.Endpoint == "" || cfg.MinIO.Bucket == "" {
			return fmt.Errorf("minio endpoint and bucket are required")
		}
		if cfg.MinIO.AccessKey == "" || cfg.MinIO.SecretKey == "" {
			return fmt.Errorf("minio credentials are required (set MINIO_ACCESS_KEY and MINIO_SECRET_KEY)")
		}
	default:
		return fmt.Errorf("unknown publish target: %s", target)
	}
	return nil
}

// ValidateTimeout validates timeout duration
func ValidateTimeout(timeout time.Duration, name string) error {
	if timeout <= 0 {
		return fmt.Errorf("%s timeout must be positive", name)
	}
	if timeout > 6*time.Hour {
		return fmt.Errorf("%s timeout too large (max 6 hours)", name)
	}
	return nil
}

// ValidateAPIKey validates API key format
func ValidateAPIKey(apiKey string, keyType string) error {
	if apiKey == "" {
		return fmt.Errorf("%s API key is required", keyType)
	}

	switch keyType {
	case "OpenAI":
		if !strings.HasPrefix(apiKey, "sk-") {
			return fmt.Errorf("invalid OpenAI API key format: must start with 'sk-'")
		}
		if len(apiKey) < 20 {
			return fmt.Errorf("invalid OpenAI API key format: too short")
		}
	}

	return nil
}

// ValidateURL validates URL format
func ValidateURL(url string, name string) error {
	if url == "" {
		return fmt.Errorf("%s URL is required", name)
	}

	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("%s URL must start with http:// or https://", name)
	}

	return nil
}
