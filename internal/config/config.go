// Package config provides environment-based configuration for both services.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds everything the campaign and proposal services read from the
// environment. Defaults mirror a local docker-compose setup (MailHog relay,
// local Chroma and Ollama).
type Config struct {
	// LLM
	APIKey string // GEMINI_API_KEY
	Model  string // LEADFLOW_MODEL

	// SMTP relay (assumed open, no auth)
	SMTPHost  string // SMTP_HOST
	SMTPPort  int    // SMTP_PORT
	FromEmail string // FROM_EMAIL
	FromName  string // FROM_NAME

	// Vector store
	ChromaURL  string // CHROMA_URL
	OllamaURL  string // OLLAMA_URL
	EmbedModel string // EMBED_MODEL

	// Campaign files
	LeadsCSV    string // LEADS_CSV
	EnrichedCSV string // ENRICHED_CSV
	ReportsDir  string // REPORTS_DIR
}

// Load reads configuration from the environment, applying defaults for
// everything except the API key.
func Load() (*Config, error) {
	cfg := &Config{
		APIKey:      os.Getenv("GEMINI_API_KEY"),
		Model:       getEnv("LEADFLOW_MODEL", ""),
		SMTPHost:    getEnv("SMTP_HOST", "mailhog"),
		SMTPPort:    1025,
		FromEmail:   getEnv("FROM_EMAIL", "sales@crm.local"),
		FromName:    getEnv("FROM_NAME", "Sales Team"),
		ChromaURL:   getEnv("CHROMA_URL", "http://localhost:8000"),
		OllamaURL:   getEnv("OLLAMA_URL", "http://localhost:11434"),
		EmbedModel:  getEnv("EMBED_MODEL", "nomic-embed-text:v1.5"),
		LeadsCSV:    getEnv("LEADS_CSV", "data/leads.csv"),
		EnrichedCSV: getEnv("ENRICHED_CSV", "data/leads_enriched.csv"),
		ReportsDir:  getEnv("REPORTS_DIR", "reports"),
	}

	if port := os.Getenv("SMTP_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP_PORT %q: %w", port, err)
		}
		cfg.SMTPPort = p
	}

	return cfg, nil
}

// Validate checks that configuration required for LLM-backed flows is present.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}
	return nil
}

// SMTPAddr returns the host:port address of the relay.
func (c *Config) SMTPAddr() string {
	return fmt.Sprintf("%s:%d", c.SMTPHost, c.SMTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
