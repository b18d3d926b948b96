package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	TransportDirect = "direct"
	TransportHTTP   = "http"
)

type Config struct {
	// Server
	Port        string
	Env         string
	ServiceName string
	CORSOrigin  string

	// Gemini AI
	GeminiAPIKey         string
	GeminiModel          string
	GeminiConcurrentReqs int

	// Letter delegation
	ChatTransport   string
	ChatEndpointURL string
	LetterTimeout   time.Duration

	// Rate limiting
	RateLimitPerMinute int
	RedisURL           string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	port := getEnvOrDefault("PORT", "3500")

	cfg := &Config{
		Port:                 port,
		Env:                  getEnvOrDefault("ENV", "production"),
		ServiceName:          getEnvOrDefault("SERVICE_NAME", "Letter Writer API"),
		CORSOrigin:           getEnvOrDefault("CORS_ORIGIN", "*"),
		GeminiAPIKey:         mustGetEnv("GEMINI_API_KEY"),
		GeminiModel:          getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiConcurrentReqs: getEnvAsIntOrDefault("GEMINI_CONCURRENT_REQUESTS", 5),
		ChatTransport:        getEnvOrDefault("CHAT_TRANSPORT", TransportDirect),
		ChatEndpointURL:      getEnvOrDefault("CHAT_ENDPOINT_URL", fmt.Sprintf("http://localhost:%s/chatWithAi", port)),
		LetterTimeout:        time.Duration(getEnvAsIntOrDefault("LETTER_CHAT_TIMEOUT_SECONDS", 30)) * time.Second,
		RateLimitPerMinute:   getEnvAsIntOrDefault("RATE_LIMIT_PER_MINUTE", 30),
		RedisURL:             getEnvOrDefault("REDIS_URL", ""),
	}

	if cfg.ChatTransport != TransportDirect && cfg.ChatTransport != TransportHTTP {
		panic(fmt.Sprintf("CHAT_TRANSPORT must be %q or %q, got %q", TransportDirect, TransportHTTP, cfg.ChatTransport))
	}

	return cfg
}

// IsDevelopment reports whether error details may be exposed to clients.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
