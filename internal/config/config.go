package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	LLM       LLMConfig       `yaml:"llm"`
	Drill     DrillConfig     `yaml:"drill"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"120s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes" env:"SERVER_MAX_UPLOAD_BYTES" env-default:"1048576"`
}

// LLMConfig holds the text-generation endpoint settings.
type LLMConfig struct {
	BaseURL             string        `yaml:"base_url"             env:"LLM_BASE_URL"             env-required:"true"`
	APIKey              string        `yaml:"api_key"              env:"LLM_API_KEY"              env-required:"true"`
	Model               string        `yaml:"model"                env:"LLM_MODEL"                env-required:"true"`
	Timeout             time.Duration `yaml:"timeout"              env:"LLM_TIMEOUT"              env-default:"30s"`
	MaxRetries          uint64        `yaml:"max_retries"          env:"LLM_MAX_RETRIES"          env-default:"2"`
	RetryBaseDelay      time.Duration `yaml:"retry_base_delay"     env:"LLM_RETRY_BASE_DELAY"     env-default:"1s"`
	Temperature         float32       `yaml:"temperature"          env:"LLM_TEMPERATURE"          env-default:"0.7"`
	MaxTokens           int           `yaml:"max_tokens"           env:"LLM_MAX_TOKENS"           env-default:"1000"`
	TranslationLanguage string        `yaml:"translation_language" env:"LLM_TRANSLATION_LANGUAGE" env-default:"Simplified Chinese"`
	MinArticleWords     int           `yaml:"min_article_words"    env:"LLM_MIN_ARTICLE_WORDS"    env-default:"200"`
	MaxArticleWords     int           `yaml:"max_article_words"    env:"LLM_MAX_ARTICLE_WORDS"    env-default:"300"`
}

// DrillConfig holds learning-session registry settings.
type DrillConfig struct {
	SessionTTL      time.Duration `yaml:"session_ttl"      env:"DRILL_SESSION_TTL"      env-default:"2h"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"DRILL_CLEANUP_INTERVAL" env-default:"5m"`
	MaxSessions     int           `yaml:"max_sessions"     env:"DRILL_MAX_SESSIONS"     env-default:"10000"`
}

// RateLimitConfig holds per-IP limits for expensive endpoints.
type RateLimitConfig struct {
	ArticlePerMinute int           `yaml:"article_per_minute" env:"RATE_LIMIT_ARTICLE_PER_MINUTE" env-default:"10"`
	CleanupInterval  time.Duration `yaml:"cleanup_interval"   env:"RATE_LIMIT_CLEANUP_INTERVAL"   env-default:"1m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// SplitList splits a comma-separated setting, dropping blanks.
func SplitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
