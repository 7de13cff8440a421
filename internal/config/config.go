// Package config resolves server settings from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
)

const (
	// ResponsesURLDefault is the completion service endpoint.
	ResponsesURLDefault = "https://api.openai.com/v1/responses"
	// ModelDefault is the completion model used unless overridden.
	ModelDefault = "gpt-5"
)

// ServerConfig holds all server configuration.
type ServerConfig struct {
	Host         string
	Port         int
	Verbose      bool
	Debug        bool
	APIKey       string
	Model        string
	ResponsesURL string
	CORSOrigin   string
	AccessToken  string
	DatasetPath  string
	RateRPS      float64
	RateBurst    int
}

// DefaultFromEnv creates a ServerConfig with defaults from environment variables.
func DefaultFromEnv() *ServerConfig {
	return &ServerConfig{
		Host:         "127.0.0.1",
		Port:         8787,
		Debug:        envBool("ASSISTANT_DEBUG"),
		APIKey:       strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		Model:        envOrDefault("ASSISTANT_MODEL", ModelDefault),
		ResponsesURL: envOrDefault("ASSISTANT_RESPONSES_URL", ResponsesURLDefault),
		CORSOrigin:   envOrDefault("ASSISTANT_CORS_ORIGIN", "*"),
		AccessToken:  strings.TrimSpace(os.Getenv("ASSISTANT_ACCESS_TOKEN")),
		DatasetPath:  strings.TrimSpace(os.Getenv("ASSISTANT_DATASET")),
		RateRPS:      envFloat("ASSISTANT_RATE_RPS", 5),
		RateBurst:    envInt("ASSISTANT_RATE_BURST", 10),
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return defaultVal
}

func envBool(key string) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	return v == "1" || v == "true" || v == "yes" || v == "on"
}

func envInt(key string, defaultVal int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return defaultVal
	}
	return n
}

func envFloat(key string, defaultVal float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return defaultVal
	}
	return f
}
