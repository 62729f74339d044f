package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/wordsprint/internal/domain"
)

// articleGenerator defines the minimal interface needed by ArticleHandler.
type articleGenerator interface {
	Generate(ctx context.Context, words []domain.Word, count int) (*domain.ArticleResult, error)
}

// ArticleHandler serves reading-passage generation.
type ArticleHandler struct {
	svc articleGenerator
	log *slog.Logger
}

// NewArticleHandler creates an ArticleHandler.
func NewArticleHandler(svc articleGenerator, logger *slog.Logger) *ArticleHandler {
	return &ArticleHandler{svc: svc, log: logger.With("handler", "article")}
}

type generateArticleRequest struct {
	Words []wordDTO `json:"words"`
	Count *int      `json:"count"`
}

// Generate handles POST /api/articles.
func (h *ArticleHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateArticleRequest
	if !decodeJSON(h.log, w, r, &req) {
		return
	}

	words, err := toDomainWords(req.Words)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	result, err := h.svc.Generate(r.Context(), words, sampleSizeOrDefault(req.Count, len(words)))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toArticleResponse(result))
}
