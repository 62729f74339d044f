package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/wordsprint/internal/domain"
	"github.com/heartmarshall/wordsprint/internal/service/drill"
	"github.com/heartmarshall/wordsprint/pkg/ctxutil"
)

// sessionRegistry defines the minimal interface needed by SessionHandler.
type sessionRegistry interface {
	Create(mode drill.Mode) (*drill.Session, error)
	Get(id uuid.UUID) (*drill.Session, error)
	Delete(id uuid.UUID) error
}

// SessionHandler serves learning-session endpoints.
type SessionHandler struct {
	registry sessionRegistry
	log      *slog.Logger
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(registry sessionRegistry, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{registry: registry, log: logger.With("handler", "session")}
}

type createSessionRequest struct {
	Mode       string    `json:"mode"`
	SampleSize *int      `json:"sampleSize"`
	Words      []wordDTO `json:"words"`
}

type startSessionRequest struct {
	SampleSize *int      `json:"sampleSize"`
	Words      []wordDTO `json:"words"`
}

type revealRequest struct {
	Answer string `json:"answer"`
}

// Create handles POST /api/sessions: registers a session and starts it.
// A session whose start is rejected is discarded.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if !decodeJSON(h.log, w, r, &req) {
		return
	}

	words, err := toDomainWords(req.Words)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	s, err := h.registry.Create(drill.Mode(req.Mode))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	r = r.WithContext(ctxutil.WithSessionID(r.Context(), s.ID()))

	view, err := s.Start(sampleSizeOrDefault(req.SampleSize, len(words)), words)
	if err != nil {
		if delErr := h.registry.Delete(s.ID()); delErr != nil {
			h.log.WarnContext(r.Context(), "discard rejected session",
				requestAttrs(r.Context(), delErr)...)
		}
		handleError(h.log, w, r, err)
		return
	}

	w.Header().Set("Location", "/api/sessions/"+s.ID().String())
	writeJSON(w, http.StatusCreated, toSessionResponse(view))
}

// Get handles GET /api/sessions/{id}.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, r, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(s.View()))
}

// Start handles POST /api/sessions/{id}/start on a reset session.
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	s, r, ok := h.session(w, r)
	if !ok {
		return
	}

	var req startSessionRequest
	if !decodeJSON(h.log, w, r, &req) {
		return
	}

	words, err := toDomainWords(req.Words)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	view, err := s.Start(sampleSizeOrDefault(req.SampleSize, len(words)), words)
	h.respond(w, r, view, err)
}

// Reveal handles POST /api/sessions/{id}/reveal.
func (h *SessionHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	s, r, ok := h.session(w, r)
	if !ok {
		return
	}

	var req revealRequest
	if !decodeJSON(h.log, w, r, &req) {
		return
	}

	view, err := s.Reveal(req.Answer)
	h.respond(w, r, view, err)
}

// Advance handles POST /api/sessions/{id}/advance.
func (h *SessionHandler) Advance(w http.ResponseWriter, r *http.Request) {
	s, r, ok := h.session(w, r)
	if !ok {
		return
	}

	view, err := s.Advance()
	h.respond(w, r, view, err)
}

// Master handles POST /api/sessions/{id}/master.
func (h *SessionHandler) Master(w http.ResponseWriter, r *http.Request) {
	s, r, ok := h.session(w, r)
	if !ok {
		return
	}

	view, err := s.MarkMastered()
	h.respond(w, r, view, err)
}

// Reset handles POST /api/sessions/{id}/reset.
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	s, _, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(s.Reset()))
}

// Delete handles DELETE /api/sessions/{id}.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	if err := h.registry.Delete(id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// session resolves the {id} URL parameter. The returned request carries the
// session id in its context for logging.
func (h *SessionHandler) session(w http.ResponseWriter, r *http.Request) (*drill.Session, *http.Request, bool) {
	id, ok := h.parseID(w, r)
	if !ok {
		return nil, r, false
	}
	r = r.WithContext(ctxutil.WithSessionID(r.Context(), id))

	s, err := h.registry.Get(id)
	if err != nil {
		handleError(h.log, w, r, err)
		return nil, r, false
	}
	return s, r, true
}

func (h *SessionHandler) respond(w http.ResponseWriter, r *http.Request, view drill.View, err error) {
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(view))
}

func (h *SessionHandler) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		handleError(h.log, w, r, domain.NewValidationError("id", "must be a UUID"))
		return uuid.Nil, false
	}
	return id, true
}
