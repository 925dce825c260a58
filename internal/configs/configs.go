/*
Package configs is responsible for loading and parsing the application's configuration settings.

It configures server parameters by reading operating system environment variables,
including the running environment, port, CORS allowed origins, the chat page location
and the rate limits applied to WebSocket connections.
*/
package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// AppConfig contains all configuration parameters required for the application to run.
// All configuration values are loaded from environment variables.
type AppConfig struct {
	// General Server Settings
	Environment  string
	Port         int
	ChatPagePath string

	// Security Settings
	AllowedOrigins []string

	// Rate Limit Settings
	WSJoinRate  float64
	WSJoinBurst int
	MsgRate     float64
	MsgBurst    int
}

// IsDevelopment reports whether the server runs in the development environment.
func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

// LoadConfig reads and parses the application configuration from environment variables.
// It provides default values for each configuration item and performs necessary type conversions and validation.
// It returns a pointer to the AppConfig struct and any error encountered.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}

	// --- General Server Settings ---
	// Environment
	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	// Port
	port, err := intEnv("PORT", 3000)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	if cfg.Port < 1024 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the recommended range (%d-%d) to avoid privileged ports", cfg.Port, 1024, 65535)
	}

	// ChatPagePath
	cfg.ChatPagePath = os.Getenv("CHAT_PAGE_PATH")
	if cfg.ChatPagePath == "" {
		cfg.ChatPagePath = "./chat_page.html"
	}

	// --- Security Settings ---
	// AllowedOrigins
	cfg.AllowedOrigins = []string{}
	if originsStr := os.Getenv("ALLOWED_ORIGINS"); originsStr != "" {
		for _, origin := range strings.Split(originsStr, ",") {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	}

	// --- Rate Limit Settings ---
	if cfg.WSJoinRate, err = floatEnv("WS_JOIN_RATE", 0.5); err != nil {
		return nil, err
	}
	if cfg.WSJoinBurst, err = intEnv("WS_JOIN_BURST", 5); err != nil {
		return nil, err
	}
	if cfg.MsgRate, err = floatEnv("MSG_RATE", 5); err != nil {
		return nil, err
	}
	if cfg.MsgBurst, err = intEnv("MSG_BURST", 10); err != nil {
		return nil, err
	}

	if cfg.WSJoinRate <= 0 || cfg.MsgRate <= 0 {
		return nil, fmt.Errorf("rate limits must be positive (WS_JOIN_RATE=%v, MSG_RATE=%v)", cfg.WSJoinRate, cfg.MsgRate)
	}
	if cfg.WSJoinBurst < 1 || cfg.MsgBurst < 1 {
		return nil, fmt.Errorf("rate limit bursts must be at least 1 (WS_JOIN_BURST=%d, MSG_BURST=%d)", cfg.WSJoinBurst, cfg.MsgBurst)
	}

	return cfg, nil
}

func intEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return v, nil
}

func floatEnv(key string, def float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return v, nil
}
