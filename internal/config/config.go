package config

import (
	"log"

	"github.com/caarlos0/env/v6"
)

type LLMProvider string

const (
	ProviderOpenAI LLMProvider = "openai"
	ProviderYandex LLMProvider = "yandex"
)

type Config struct {
	ListenPort int `env:"PORT" envDefault:"8080"`

	// LLM settings
	LLMProvider       LLMProvider `env:"LLM_PROVIDER" envDefault:"openai"`
	OpenRouterAPIKey  string      `env:"OPENROUTER_API_KEY"`
	OpenRouterBaseURL string      `env:"OPENROUTER_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	ChatModel         string      `env:"CHAT_MODEL" envDefault:"anthropic/claude-3.5-sonnet"`
	Temperature       float64     `env:"CHAT_TEMPERATURE" envDefault:"0.8"`
	PresencePenalty   float64     `env:"CHAT_PRESENCE_PENALTY" envDefault:"0.4"`
	YandexOAuthToken  string      `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID    string      `env:"YANDEX_FOLDER_ID"`

	// OpenRouter attribution (optional)
	OpenRouterReferrer string `env:"OPENROUTER_SITE_URL"`
	OpenRouterTitle    string `env:"OPENROUTER_APP_NAME"`

	// Conversation window: retained turns per session
	MaxTurns int `env:"MAX_TURNS" envDefault:"3"`

	// Reference data
	PersonasFilePath  string `env:"PERSONAS_FILE_PATH" envDefault:"data/personas.json"`
	SentimentFilePath string `env:"SENTIMENT_FILE_PATH" envDefault:"data/sentiment_profiles.json"`
	ResourcesFilePath string `env:"RESOURCES_FILE_PATH" envDefault:"data/city_resources.json"`

	// Storage
	LogFilePath string `env:"LOG_FILE_PATH" envDefault:"logs/exchanges.jsonl"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
