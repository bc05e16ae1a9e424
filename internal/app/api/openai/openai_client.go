package openai

import (
	"strings"

	"github.com/sashabaranov/go-openai"
)

// NewClient builds an OpenAI client. An empty baseURL keeps the public API
// endpoint; any other value points the client at a compatible server.
func NewClient(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	}
	return openai.NewClientWithConfig(cfg)
}
