package api

import (
	"fmt"
	"sort"
	"sync"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"youtube-whisper/internal/config"
)

// ProviderCreator builds a provider from the transcriber configuration.
type ProviderCreator func(cfg config.Transcriber, logger *zap.Logger) (Transcriber, error)

var (
	providerRegistry = make(map[string]ProviderCreator)
	registryMutex    sync.RWMutex
)

// RegisterProvider registers a provider creator function. Providers call it
// from init.
func RegisterProvider(providerType string, creator ProviderCreator) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	providerRegistry[providerType] = creator
}

// ListRegisteredProviders returns all registered provider types, sorted.
func ListRegisteredProviders() []string {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	providers := lo.Keys(providerRegistry)
	sort.Strings(providers)
	return providers
}

// NewTranscriber creates the configured provider wrapped in the input and
// output checks shared by every provider.
func NewTranscriber(cfg config.Transcriber, logger *zap.Logger) (Transcriber, error) {
	registryMutex.RLock()
	creator, ok := providerRegistry[cfg.Provider]
	registryMutex.RUnlock()
	if !ok {
		return nil, fmt.Errorf("provider type %s not registered (available: %v)", cfg.Provider, ListRegisteredProviders())
	}

	if err := config.RequireTranscriber(cfg); err != nil {
		return nil, err
	}

	inner, err := creator(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s transcriber: %w", cfg.Provider, err)
	}

	logger.Info("transcriber ready",
		zap.String("provider", cfg.Provider),
		zap.String("model", cfg.Model),
		zap.String("language", languageLabel(cfg.PinnedLanguage())))

	return NewCheckedTranscriber(inner, logger), nil
}

func languageLabel(lang string) string {
	if lang == "" {
		return "auto"
	}
	return lang
}
