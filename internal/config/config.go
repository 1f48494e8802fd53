package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"lexiguide/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort         string
	MaxFileSize        int64
	LogLevel           string
	LogFormat          string
	SupabaseURL        string
	SupabaseKey        string
	CORSAllowedOrigins []string

	LLMProvider      string
	OpenAIAPIKey     string
	OpenAIBaseURL    string
	OpenAIModel      string
	LLMTemperature   float32
	LLMMaxRetries    int
	LLMMaxInputChars int
	GCPProjectID     string
	GCPLocation      string
	VertexModel      string

	OCRProvider  string
	OCRLanguages []string

	DictionaryAPIURL string
	RedisURL         string
	CacheTTL         time.Duration

	GeocoderURL       string
	GeocoderUserAgent string
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:  getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		MaxFileSize: getEnvInt64OrDefault("MAX_FILE_SIZE", 20*1024*1024), // 20MB default
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:   getEnvOrDefault("LOG_FORMAT", "console"),
		SupabaseURL: getEnvOrDefault("SUPABASE_URL", ""),
		SupabaseKey: getEnvOrDefault("SUPABASE_ANON_KEY", ""),
		CORSAllowedOrigins: getEnvListOrDefault("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:5173",
			"http://localhost:4173",
			"http://localhost:3000",
		}),

		LLMProvider:      strings.ToLower(getEnvOrDefault("LLM_PROVIDER", "openai")),
		OpenAIAPIKey:     getEnvOrDefault("OPENAI_API_KEY", ""),
		OpenAIBaseURL:    getEnvOrDefault("OPENAI_BASE_URL", ""),
		OpenAIModel:      getEnvOrDefault("OPENAI_MODEL", "gpt-3.5-turbo"),
		LLMTemperature:   getEnvFloat32OrDefault("LLM_TEMPERATURE", 0.3),
		LLMMaxRetries:    getEnvIntOrDefault("LLM_MAX_RETRIES", 3),
		LLMMaxInputChars: getEnvIntOrDefault("LLM_MAX_INPUT_CHARS", 12000),
		GCPProjectID:     getEnvOrDefault("GCP_PROJECT_ID", ""),
		GCPLocation:      getEnvOrDefault("GCP_LOCATION", "us-central1"),
		VertexModel:      getEnvOrDefault("VERTEX_MODEL", "gemini-2.0-flash-001"),

		OCRProvider:  strings.ToLower(getEnvOrDefault("OCR_PROVIDER", "tesseract")),
		OCRLanguages: getEnvListOrDefault("OCR_LANGUAGES", []string{"eng"}),

		DictionaryAPIURL: getEnvOrDefault("DICTIONARY_API_URL", "https://api.dictionaryapi.dev/api/v2/entries/en"),
		RedisURL:         getEnvOrDefault("REDIS_URL", ""),
		CacheTTL:         getEnvDurationOrDefault("CACHE_TTL", 24*time.Hour),

		GeocoderURL:       getEnvOrDefault("GEOCODER_URL", "https://nominatim.openstreetmap.org"),
		GeocoderUserAgent: getEnvOrDefault("GEOCODER_USER_AGENT", "lexiguide"),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetMaxFileSize returns the maximum allowed upload size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetLogFormat returns the log output format
func (c *AppConfig) GetLogFormat() string {
	return c.LogFormat
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase anon key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

func (c *AppConfig) GetCORSAllowedOrigins() []string {
	return c.CORSAllowedOrigins
}

// GetLLMProvider returns "openai" or "vertex"
func (c *AppConfig) GetLLMProvider() string {
	return c.LLMProvider
}

func (c *AppConfig) GetOpenAIAPIKey() string {
	return c.OpenAIAPIKey
}

func (c *AppConfig) GetOpenAIBaseURL() string {
	return c.OpenAIBaseURL
}

func (c *AppConfig) GetOpenAIModel() string {
	return c.OpenAIModel
}

func (c *AppConfig) GetLLMTemperature() float32 {
	return c.LLMTemperature
}

func (c *AppConfig) GetLLMMaxRetries() int {
	return c.LLMMaxRetries
}

// GetLLMMaxInputChars returns how much document text is sent to a prompt
func (c *AppConfig) GetLLMMaxInputChars() int {
	return c.LLMMaxInputChars
}

func (c *AppConfig) GetGCPProjectID() string {
	return c.GCPProjectID
}

func (c *AppConfig) GetGCPLocation() string {
	return c.GCPLocation
}

func (c *AppConfig) GetVertexModel() string {
	return c.VertexModel
}

// GetOCRProvider returns "tesseract" or "vision"
func (c *AppConfig) GetOCRProvider() string {
	return c.OCRProvider
}

func (c *AppConfig) GetOCRLanguages() []string {
	return c.OCRLanguages
}

func (c *AppConfig) GetDictionaryAPIURL() string {
	return c.DictionaryAPIURL
}

// GetRedisURL returns the dictionary cache URL; empty selects the in-memory cache
func (c *AppConfig) GetRedisURL() string {
	return c.RedisURL
}

func (c *AppConfig) GetCacheTTL() time.Duration {
	return c.CacheTTL
}

func (c *AppConfig) GetGeocoderURL() string {
	return c.GeocoderURL
}

func (c *AppConfig) GetGeocoderUserAgent() string {
	return c.GeocoderUserAgent
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat32OrDefault(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(f)
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvListOrDefault splits a comma-separated variable, dropping empty items
func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
