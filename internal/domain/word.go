package domain

import (
	"regexp"
	"strings"
)

var spelling = regexp.MustCompile(`^[A-Za-z]+$`)

// Word is one parsed vocabulary item. Duplicates are legal and tracked independently.
type Word struct {
	Word    string `json:"word"`
	Meaning string `json:"meaning"`
}

// Validate reports a non-alphabetic spelling or a blank meaning as a *ValidationError.
func (w Word) Validate() error {
	var errs []FieldError
	if !spelling.MatchString(w.Word) {
		errs = append(errs, FieldError{Field: "word", Message: "must contain only letters A-Z"})
	}
	if strings.TrimSpace(w.Meaning) == "" {
		errs = append(errs, FieldError{Field: "meaning", Message: "required"})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// ArticleResult is one generated reading passage with its translation.
// Words holds the selection the passage was requested for.
type ArticleResult struct {
	Article     string `json:"article"`
	Translation string `json:"translation"`
	Words       []Word `json:"words,omitempty"`
}
