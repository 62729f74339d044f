package drill

import (
	"strings"

	"github.com/heartmarshall/wordsprint/internal/domain"
)

// Mode selects how a learner's answer for the current word is judged.
type Mode string

const (
	// ModeMemorize shows the word; the learner reports whether they know it.
	ModeMemorize Mode = "memorize"
	// ModePractice shows the meaning; the learner types the spelling.
	ModePractice Mode = "practice"
)

func (m Mode) String() string { return string(m) }

// IsValid reports whether m is a supported mode.
func (m Mode) IsValid() bool {
	switch m {
	case ModeMemorize, ModePractice:
		return true
	}
	return false
}

// Answers accepted in memorize mode.
const (
	AnswerKnow    = "know"
	AnswerUnknown = "unknown"
)

// EvaluateFunc judges the learner's input for w. A false result sends w to the
// next review round. An error means the input itself is unusable.
type EvaluateFunc func(input string, w domain.Word) (bool, error)

// EvaluatorFor returns the evaluation strategy of a mode.
func EvaluatorFor(m Mode) (EvaluateFunc, error) {
	switch m {
	case ModeMemorize:
		return evaluateMemorize, nil
	case ModePractice:
		return evaluatePractice, nil
	}
	return nil, domain.NewValidationError("mode", "must be memorize or practice")
}

func evaluateMemorize(input string, _ domain.Word) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case AnswerKnow:
		return true, nil
	case AnswerUnknown:
		return false, nil
	}
	return false, domain.NewValidationError("answer", "must be know or unknown")
}

// evaluatePractice is a case-insensitive, whitespace-trimmed exact match.
func evaluatePractice(input string, w domain.Word) (bool, error) {
	return domain.SameSpelling(input, w.Word), nil
}
