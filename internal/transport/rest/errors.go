package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/wordsprint/internal/domain"
	"github.com/heartmarshall/wordsprint/pkg/ctxutil"
)

// Error codes carried in the "code" field of error responses.
const (
	codeBadRequest      = "bad_request"
	codeValidation      = "validation"
	codeNotFound        = "not_found"
	codeConflict        = "conflict"
	codeTooLarge        = "too_large"
	codeFormat          = "format"
	codeUpstream        = "upstream"
	codeUpstreamTimeout = "upstream_timeout"
	codeInternal        = "internal"
)

type errorResponse struct {
	Error  string       `json:"error"`
	Code   string       `json:"code"`
	Fields []fieldError `json:"fields,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}

// handleError maps a service error to an HTTP response. Unexpected errors are
// logged with their detail and answered with a generic message.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var (
		ve  *domain.ValidationError
		mbe *http.MaxBytesError
	)

	switch {
	case errors.As(err, &ve):
		resp := errorResponse{Error: ve.Error(), Code: codeValidation}
		for _, fe := range ve.Errors {
			resp.Fields = append(resp.Fields, fieldError{Field: fe.Field, Message: fe.Message})
		}
		writeJSON(w, http.StatusBadRequest, resp)
	case errors.As(err, &mbe):
		writeError(w, http.StatusRequestEntityTooLarge, codeTooLarge, "request body too large")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, "not found")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, codeConflict, err.Error())
	case errors.Is(err, domain.ErrFormat):
		log.WarnContext(r.Context(), "unusable generated reply", requestAttrs(r.Context(), err)...)
		writeError(w, http.StatusBadGateway, codeFormat, "generated reply could not be read as an article")
	case errors.Is(err, domain.ErrUpstream):
		log.WarnContext(r.Context(), "text generation failed", requestAttrs(r.Context(), err)...)
		if errors.Is(err, context.DeadlineExceeded) {
			writeError(w, http.StatusGatewayTimeout, codeUpstreamTimeout, "text generation timed out")
			return
		}
		writeError(w, http.StatusBadGateway, codeUpstream, "text generation failed")
	default:
		log.ErrorContext(r.Context(), "internal error", requestAttrs(r.Context(), err)...)
		writeError(w, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}

func requestAttrs(ctx context.Context, err error) []any {
	attrs := []any{
		slog.String("error", err.Error()),
		slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
	}
	if id, ok := ctxutil.SessionIDFromCtx(ctx); ok {
		attrs = append(attrs, slog.String("session_id", id.String()))
	}
	return attrs
}

// decodeJSON reads a JSON request body into v. Syntax errors become a 400
// response; an oversized body becomes 413. It reports whether decoding succeeded.
func decodeJSON(log *slog.Logger, w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}

	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		handleError(log, w, r, err)
		return false
	}
	writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
	return false
}
