package web

import "github.com/wanderlist/internal/config"

// Config holds the web server settings.
type Config struct {
	Host string
	Port int

	// APIKey, when set, is required in the X-API-Key header for all
	// /api routes.
	APIKey string
}

// ConfigFromEnv builds the server config from WEB_* environment keys.
func ConfigFromEnv() *Config {
	return &Config{
		Host:   config.GetEnv("WEB_HOST", "127.0.0.1"),
		Port:   config.GetEnvInt("WEB_PORT", 8080),
		APIKey: config.GetEnv("WEB_API_KEY", ""),
	}
}
