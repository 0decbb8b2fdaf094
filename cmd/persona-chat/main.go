package main

import (
	"log"

	"github.com/joho/godotenv"

	"persona-chat/internal/config"
	"persona-chat/internal/llm"
	"persona-chat/internal/persona"
	"persona-chat/internal/session"
	"persona-chat/internal/storage"
	"persona-chat/internal/web"
)

func main() {
	// godotenv only fills variables that are not already set, so a missing
	// file simply means the credential must come from the environment.
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	store, err := persona.Load(cfg.PersonasFilePath, cfg.SentimentFilePath, cfg.ResourcesFilePath)
	if err != nil {
		log.Fatalf("failed to load reference data: %v", err)
	}

	if cfg.LLMProvider == config.ProviderOpenAI && cfg.OpenRouterAPIKey == "" {
		log.Printf("Warning: OPENROUTER_API_KEY not set; chat replies will use the fallback message")
	}

	client, err := llm.NewFactory(cfg).CreateClient(string(cfg.LLMProvider), cfg.ChatModel)
	if err != nil {
		log.Fatalf("failed to create llm client: %v", err)
	}

	var rec storage.Recorder
	if cfg.LogFilePath != "" {
		fr, err := storage.NewFileRecorder(cfg.LogFilePath)
		if err != nil {
			log.Printf("failed to init exchange recorder: %v", err)
		} else {
			rec = fr
		}
	}

	manager := session.NewManager(store, client, rec, cfg.MaxTurns)

	srv := web.New(manager, store, cfg.ListenPort)
	if err := srv.Start(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
