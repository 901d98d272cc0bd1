package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN must be set")
	}

	switch cfg.LLM.Provider {
	case "gemini":
		if cfg.LLM.ProjectID == "" {
			return nil, fmt.Errorf("GCP_PROJECT must be set for the gemini provider")
		}
	case "mock":
		// no credentials needed
	default:
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("LLM_API_KEY must be set for provider %s", cfg.LLM.Provider)
		}
	}

	return cfg, nil
}
