package middleware

import (
	"github.com/rs/cors"

	"github.com/heartmarshall/wordsprint/internal/config"
)

// CORS returns middleware that handles Cross-Origin Resource Sharing,
// including preflight OPTIONS requests, from the configured allow lists.
// An empty origin list disables the layer.
func CORS(cfg config.CORSConfig) Middleware {
	origins := config.SplitList(cfg.AllowedOrigins)
	if len(origins) == 0 {
		return nil
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   config.SplitList(cfg.AllowedMethods),
		AllowedHeaders:   config.SplitList(cfg.AllowedHeaders),
		ExposedHeaders:   []string{RequestIDHeader, "Retry-After"},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
	return c.Handler
}
