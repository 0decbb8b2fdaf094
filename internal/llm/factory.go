package llm

import (
	"fmt"
	"strings"

	"persona-chat/internal/config"
)

const (
	ProviderOpenAI = "openai"
	ProviderYandex = "yandex"
)

// Factory creates LLM clients with consistent logic
type Factory struct {
	OpenRouterAPIKey   string
	OpenRouterBaseURL  string
	OpenRouterReferrer string
	OpenRouterTitle    string
	Temperature        float32
	PresencePenalty    float32
	YandexOAuthToken   string
	YandexFolderID     string
}

func NewFactory(cfg *config.Config) *Factory {
	return &Factory{
		OpenRouterAPIKey:   cfg.OpenRouterAPIKey,
		OpenRouterBaseURL:  cfg.OpenRouterBaseURL,
		OpenRouterReferrer: cfg.OpenRouterReferrer,
		OpenRouterTitle:    cfg.OpenRouterTitle,
		Temperature:        float32(cfg.Temperature),
		PresencePenalty:    float32(cfg.PresencePenalty),
		YandexOAuthToken:   cfg.YandexOAuthToken,
		YandexFolderID:     cfg.YandexFolderID,
	}
}

func (f *Factory) CreateClient(provider, model string) (Client, error) {
	switch strings.ToLower(provider) {
	case ProviderOpenAI:
		return NewOpenAI(f.OpenRouterAPIKey, f.OpenRouterBaseURL, model,
			f.Temperature, f.PresencePenalty, f.OpenRouterReferrer, f.OpenRouterTitle), nil
	case ProviderYandex:
		return NewYandex(f.YandexOAuthToken, f.YandexFolderID)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", provider)
	}
}
