package domain

import "time"

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetMaxFileSize() int64
	GetLogLevel() string
	GetLogFormat() string
	GetSupabaseURL() string
	GetSupabaseKey() string
	GetCORSAllowedOrigins() []string

	GetLLMProvider() string
	GetOpenAIAPIKey() string
	GetOpenAIBaseURL() string
	GetOpenAIModel() string
	GetLLMTemperature() float32
	GetLLMMaxRetries() int
	GetLLMMaxInputChars() int
	GetGCPProjectID() string
	GetGCPLocation() string
	GetVertexModel() string

	GetOCRProvider() string
	GetOCRLanguages() []string

	GetDictionaryAPIURL() string
	GetRedisURL() string
	GetCacheTTL() time.Duration

	GetGeocoderURL() string
	GetGeocoderUserAgent() string
}
