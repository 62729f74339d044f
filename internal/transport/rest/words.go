package rest

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/heartmarshall/wordsprint/internal/domain"
)

// wordListParser defines the minimal interface needed by WordsHandler.
type wordListParser interface {
	ParseReader(r io.Reader) ([]domain.Word, error)
}

// WordsHandler serves word-list upload endpoints.
type WordsHandler struct {
	parser    wordListParser
	maxUpload int64
	log       *slog.Logger
}

// NewWordsHandler creates a WordsHandler accepting uploads up to maxUpload bytes.
func NewWordsHandler(parser wordListParser, maxUpload int64, logger *slog.Logger) *WordsHandler {
	return &WordsHandler{parser: parser, maxUpload: maxUpload, log: logger.With("handler", "words")}
}

// Parse handles POST /api/words/parse. The list is either the raw text/plain
// body or a .txt file in the multipart field "file".
func (h *WordsHandler) Parse(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	src, err := h.source(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	defer src.Close()

	words, err := h.parser.ParseReader(src)
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			handleError(h.log, w, r, err)
			return
		}
		h.log.WarnContext(r.Context(), "word list unreadable", slog.String("error", err.Error()))
		writeError(w, http.StatusBadRequest, codeBadRequest, "word list could not be read")
		return
	}
	if len(words) == 0 {
		handleError(h.log, w, r, domain.NewValidationError("words", "no words recognized"))
		return
	}

	writeJSON(w, http.StatusOK, wordListResponse{Count: len(words), Words: toWordDTOs(words)})
}

func (h *WordsHandler) source(r *http.Request) (io.ReadCloser, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "multipart/form-data" {
		return r.Body, nil
	}

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, err
		}
		return nil, domain.NewValidationError("file", "malformed multipart body")
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, domain.NewValidationError("file", "required")
	}
	if !strings.EqualFold(filepath.Ext(header.Filename), ".txt") {
		file.Close()
		return nil, domain.NewValidationError("file", "only .txt files are accepted")
	}
	return file, nil
}
