// Package app wires configuration, services and transports into a running process.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/heartmarshall/wordsprint/internal/adapter/provider/llm"
	"github.com/heartmarshall/wordsprint/internal/config"
	"github.com/heartmarshall/wordsprint/internal/service/article"
	"github.com/heartmarshall/wordsprint/internal/service/drill"
	"github.com/heartmarshall/wordsprint/internal/transport/middleware"
	"github.com/heartmarshall/wordsprint/internal/transport/rest"
	"github.com/heartmarshall/wordsprint/internal/wordlist"
)

// Run is the entry point of the serve command. It loads configuration,
// initializes the logger and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("llm_model", cfg.LLM.Model),
	)

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	return serve(ctx, cfg, logger, ln)
}

// NewArticleService builds the article pipeline on top of the configured endpoint.
func NewArticleService(cfg config.LLMConfig, logger *slog.Logger) *article.Service {
	client := llm.NewClient(llm.Options{
		BaseURL:        cfg.BaseURL,
		APIKey:         cfg.APIKey,
		Model:          cfg.Model,
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		RetryBaseDelay: cfg.RetryBaseDelay,
		Temperature:    cfg.Temperature,
		MaxTokens:      cfg.MaxTokens,
	}, logger)

	return article.NewService(logger, client, article.PromptOptions{
		MinWords:            cfg.MinArticleWords,
		MaxWords:            cfg.MaxArticleWords,
		TranslationLanguage: cfg.TranslationLanguage,
	}, nil)
}

// serve runs the HTTP server on ln until ctx is done, then shuts it down
// gracefully within the configured timeout.
func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger, ln net.Listener) error {
	registry := drill.NewRegistry(logger, drill.RegistryOptions{
		SessionTTL:      cfg.Drill.SessionTTL,
		CleanupInterval: cfg.Drill.CleanupInterval,
		MaxSessions:     cfg.Drill.MaxSessions,
	})
	defer registry.Stop()

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	router := rest.NewRouter(rest.RouterDeps{
		Logger:           logger,
		Health:           rest.NewHealthHandler(registry, cfg.Drill.MaxSessions, BuildVersion()),
		Words:            rest.NewWordsHandler(wordlist.NewParser(logger), cfg.Server.MaxUploadBytes, logger),
		Sessions:         rest.NewSessionHandler(registry, logger),
		Articles:         rest.NewArticleHandler(NewArticleService(cfg.LLM, logger), logger),
		RateLimiter:      limiter,
		CORS:             cfg.CORS,
		ArticlePerMinute: cfg.RateLimit.ArticlePerMinute,
		MaxBodyBytes:     cfg.Server.MaxUploadBytes,
	})

	srv := &http.Server{
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Int("active_sessions", registry.Len()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
