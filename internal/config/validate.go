package config

import (
	"fmt"
	"net/url"
	"strings"
)

// maxRetries caps llm.max_retries.
const maxRetries = 10

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.LLM.validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}

	if c.Drill.SessionTTL <= 0 {
		return fmt.Errorf("drill: session_ttl must be > 0 (got %s)", c.Drill.SessionTTL)
	}
	if c.Drill.MaxSessions < 0 {
		return fmt.Errorf("drill: max_sessions must be >= 0 (got %d)", c.Drill.MaxSessions)
	}

	if c.RateLimit.ArticlePerMinute <= 0 {
		return fmt.Errorf("rate_limit: article_per_minute must be > 0 (got %d)", c.RateLimit.ArticlePerMinute)
	}

	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("server: max_upload_bytes must be > 0 (got %d)", c.Server.MaxUploadBytes)
	}

	return nil
}

func (l *LLMConfig) validate() error {
	u, err := url.Parse(l.BaseURL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base_url must be an absolute http(s) URL (got %q)", l.BaseURL)
	}
	if strings.TrimSpace(l.APIKey) == "" {
		return fmt.Errorf("api_key is required")
	}
	if strings.TrimSpace(l.Model) == "" {
		return fmt.Errorf("model is required")
	}
	if l.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %s)", l.Timeout)
	}
	if l.MaxRetries > maxRetries {
		return fmt.Errorf("max_retries must be <= %d (got %d)", maxRetries, l.MaxRetries)
	}
	if l.RetryBaseDelay < 0 {
		return fmt.Errorf("retry_base_delay must be >= 0 (got %s)", l.RetryBaseDelay)
	}
	if l.Temperature < 0 || l.Temperature > 2 {
		return fmt.Errorf("temperature must be within [0, 2] (got %v)", l.Temperature)
	}
	if l.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0 (got %d)", l.MaxTokens)
	}
	if l.MinArticleWords <= 0 || l.MinArticleWords > l.MaxArticleWords {
		return fmt.Errorf("article length must satisfy 0 < min_article_words <= max_article_words (got %d..%d)",
			l.MinArticleWords, l.MaxArticleWords)
	}
	return nil
}
