package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. FOLIO_SERVER_PORT.
const EnvPrefix = "FOLIO"

// defaults are applied before the config file and the environment.
var defaults = map[string]any{
	"server.port":                         8080,
	"server.log_level":                    "info",
	"server.trusted_proxies":              []string{},
	"auth.token_lifetime_minutes":         60,
	"llm.model_name":                      "gemini-2.0-flash",
	"llm.timeout_seconds":                 30,
	"llm.temperature":                     0.7,
	"llm.lead_capture":                    true,
	"rate_limit.enabled":                  false,
	"rate_limit.redis_addr":               "localhost:6379",
	"rate_limit.redis_db":                 0,
	"rate_limit.chat_requests_per_minute": 20,
}

// keys without a default still need an explicit env binding for Unmarshal to see them.
var boundKeys = []string{
	"database.url",
	"auth.jwt_secret",
	"auth.owner_email",
	"auth.owner_password_hash",
	"llm.gemini_api_key",
	"llm.assistant_name",
	"llm.owner_name",
	"rate_limit.redis_password",
}

// Load reads a .env file from the working directory if present, then an optional
// config.yaml, then FOLIO_* environment variables. Environment variables take
// precedence over the config file. Returns a validated Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	return LoadFile("")
}

// LoadFile is Load without .env handling, reading configPath instead of searching
// for config.yaml when configPath is non-empty.
func LoadFile(configPath string) (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigType("yaml")
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	keys := make([]string, 0, len(defaults)+len(boundKeys))
	for key := range defaults {
		keys = append(keys, key)
	}
	keys = append(keys, boundKeys...)
	for _, key := range keys {
		if err := v.BindEnv(key, EnvVar(key)); err != nil {
			return nil, fmt.Errorf("error binding environment variable %s: %w", EnvVar(key), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// EnvVar returns the environment variable bound to a config key.
func EnvVar(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}
