package config

import (
	"log"
	"os"
	"time"
)

type Config struct {
	Port string

	// APIKey is the Gemini API credential. Required unless the mock gateway
	// is enabled.
	APIKey string

	TextModel  string
	ImageModel string

	// RequestTimeout bounds each outbound model call. There is no retry
	// above the gateway, so the bound is the whole story.
	RequestTimeout time.Duration

	UseMockGateway bool // true = never call the real API (useful for dev)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if v == "1" || v == "true" || v == "TRUE" {
		return true
	}
	return false
}

func getDurationEnv(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid duration for %s: %q, using default %s", key, v, def)
		return def
	}
	return d
}

// Load reads all env vars and builds the config.
func Load() *Config {
	cfg := &Config{
		Port: getEnv("RANKPILOT_PORT", "8080"),

		APIKey: getEnv("RANKPILOT_API_KEY", os.Getenv("GEMINI_API_KEY")),

		TextModel:  getEnv("RANKPILOT_TEXT_MODEL", "gemini-3-flash-preview"),
		ImageModel: getEnv("RANKPILOT_IMAGE_MODEL", "gemini-2.5-flash-image"),

		RequestTimeout: getDurationEnv("RANKPILOT_REQUEST_TIMEOUT", 45*time.Second),

		UseMockGateway: getBoolEnv("RANKPILOT_USE_MOCK_GATEWAY", false),
	}

	// The credential is only checked for presence; there is no rotation or
	// validation beyond this.
	if !cfg.UseMockGateway && cfg.APIKey == "" {
		log.Fatal("RANKPILOT_API_KEY must be set (or RANKPILOT_USE_MOCK_GATEWAY=1)")
	}

	return cfg
}
