package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/heartmarshall/wordsprint/internal/config"
	"github.com/heartmarshall/wordsprint/internal/transport/middleware"
)

// RouterDeps holds everything NewRouter wires together.
type RouterDeps struct {
	Logger      *slog.Logger
	Health      *HealthHandler
	Words       *WordsHandler
	Sessions    *SessionHandler
	Articles    *ArticleHandler
	RateLimiter *middleware.RateLimiter

	CORS             config.CORSConfig
	ArticlePerMinute int
	MaxBodyBytes     int64
}

// NewRouter builds the HTTP handler: probes at the root, the JSON API under /api.
func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Chain(
		middleware.Recovery(d.Logger),
		middleware.RequestID(),
		middleware.Logger(d.Logger),
		middleware.CORS(d.CORS),
	))

	r.Get("/live", d.Health.Live)
	r.Get("/ready", d.Health.Ready)
	r.Get("/health", d.Health.Health)

	r.Route("/api", func(r chi.Router) {
		r.Use(chimiddleware.RequestSize(d.MaxBodyBytes))

		r.Post("/words/parse", d.Words.Parse)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", d.Sessions.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", d.Sessions.Get)
				r.Delete("/", d.Sessions.Delete)
				r.Post("/start", d.Sessions.Start)
				r.Post("/reveal", d.Sessions.Reveal)
				r.Post("/advance", d.Sessions.Advance)
				r.Post("/master", d.Sessions.Master)
				r.Post("/reset", d.Sessions.Reset)
			})
		})

		r.With(d.RateLimiter.Limit(d.ArticlePerMinute)).Post("/articles", d.Articles.Generate)
	})

	return r
}
