package infrastructure

import (
	"fmt"
	"os"
)

// Config is loaded from environment variables with defaults where sensible.
type Config struct {
	AppEnv       string
	Port         string
	GeminiAPIKey string
	TextModel    string
	ImageModel   string
	ChromePath   string
}

// LoadConfig reads configuration from the environment. GEMINI_API_KEY is the
// only required value.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:       getEnv("APP_ENV", "development"),
		Port:         getEnv("PORT", "3000"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		TextModel:    getEnv("GEMINI_TEXT_MODEL", "gemini-2.5-flash"),
		ImageModel:   getEnv("GEMINI_IMAGE_MODEL", "gemini-2.5-flash-image"),
		ChromePath:   os.Getenv("CHROME_PATH"),
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
