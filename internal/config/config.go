package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"     validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"   validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth"       validate:"required"`
	LLM       LLMConfig       `mapstructure:"llm"        validate:"required"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// TrustedProxies lists the reverse proxies (IPs or CIDR ranges) whose
	// X-Forwarded-For and X-Real-IP headers identify the client.
	TrustedProxies []string `mapstructure:"trusted_proxies" validate:"dive,cidr|ip"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains the owner credentials and token settings. The site has a
// single owner; visitors never authenticate.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0,lte=10080"`
	OwnerEmail           string `mapstructure:"owner_email"            validate:"required,email"`
	// OwnerPasswordHash is a bcrypt hash, see cmd/hash-generator.
	OwnerPasswordHash string `mapstructure:"owner_password_hash" validate:"required"`
}

// TokenLifetime returns the access token lifetime as a duration.
func (a AuthConfig) TokenLifetime() time.Duration {
	return time.Duration(a.TokenLifetimeMinutes) * time.Minute
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	GeminiAPIKey   string  `mapstructure:"gemini_api_key"  validate:"required"`
	ModelName      string  `mapstructure:"model_name"      validate:"required"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" validate:"required,gt=0,lte=300"`
	Temperature    float64 `mapstructure:"temperature"     validate:"gte=0,lte=2"`
	// LeadCapture asks the chat model to classify the visitor and extract an email.
	LeadCapture bool `mapstructure:"lead_capture"`
	// AssistantName and OwnerName personalize the chat persona; empty keeps the defaults.
	AssistantName string `mapstructure:"assistant_name"`
	OwnerName     string `mapstructure:"owner_name"`
}

// Timeout returns the per-call provider wait as a duration.
func (l LLMConfig) Timeout() time.Duration {
	return time.Duration(l.TimeoutSeconds) * time.Second
}

// RateLimitConfig controls the Redis-backed limiter on the public chat endpoint.
type RateLimitConfig struct {
	Enabled               bool   `mapstructure:"enabled"`
	RedisAddr             string `mapstructure:"redis_addr"               validate:"required_if=Enabled true"`
	RedisPassword         string `mapstructure:"redis_password"`
	RedisDB               int    `mapstructure:"redis_db"                 validate:"gte=0"`
	ChatRequestsPerMinute int    `mapstructure:"chat_requests_per_minute" validate:"required_if=Enabled true,gte=0"`
}
