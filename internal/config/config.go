package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	// DefaultBaseURL is used when OPENAI_BASE_URL is not set.
	DefaultBaseURL = "https://api.openai.com/v1"
	// DefaultModel is used when OPENAI_MODEL is not set.
	DefaultModel = "gpt-4o-mini"
)

// Config holds everything the bot reads from the environment.
// Behavioral constants (history size, truncation lengths, timeouts,
// keyword sets) are fixed in code and intentionally not configurable.
type Config struct {
	// DiscordToken is the bot token used for both the gateway session
	// and REST message sends.
	DiscordToken string

	// APIKey authenticates against the OpenAI-compatible completion API.
	APIKey string

	// BaseURL is the completion API base URL (OpenAI-compatible).
	BaseURL string

	// Model is the completion model name.
	Model string

	// ScrapeProxy is an optional SOCKS5 proxy address (host:port) used
	// for web search and page fetches. Empty means direct egress.
	ScrapeProxy string
}

// FromEnv builds a Config from environment variables. Call LoadDotEnv
// first so .env files are honored.
func FromEnv() (Config, error) {
	cfg := Config{
		DiscordToken: strings.TrimSpace(os.Getenv("DISCORD_BOT_TOKEN")),
		APIKey:       strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		BaseURL:      strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),
		Model:        strings.TrimSpace(os.Getenv("OPENAI_MODEL")),
		ScrapeProxy:  strings.TrimSpace(os.Getenv("ASKBOT_SCRAPE_PROXY")),
	}

	if cfg.DiscordToken == "" {
		return Config{}, fmt.Errorf("config incomplete: DISCORD_BOT_TOKEN is required")
	}
	if cfg.APIKey == "" {
		return Config{}, fmt.Errorf("config incomplete: OPENAI_API_KEY is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return cfg, nil
}
