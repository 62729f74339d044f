// Package drill implements learning sessions: a sampled pool of words is shown
// one item at a time, misses are collected, and each round's misses become the
// next round's pool until a round finishes clean.
package drill

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordsprint/internal/domain"
	"github.com/heartmarshall/wordsprint/internal/wordlist"
)

// ErrInvalidTransition is returned when an action is not allowed in the
// session's current state.
var ErrInvalidTransition = fmt.Errorf("invalid transition: %w", domain.ErrConflict)

// State is the position of a session in its lifecycle.
type State string

const (
	StateNotStarted State = "not_started"
	StatePrompt     State = "prompt"
	StateFeedback   State = "feedback"
	StateCompleted  State = "completed"
)

// Session is one learning attempt. All methods are safe for concurrent use;
// transitions on the same session are applied one at a time.
type Session struct {
	id       uuid.UUID
	mode     Mode
	evaluate EvaluateFunc
	shuffle  wordlist.ShuffleFunc
	now      func() time.Time

	mu         sync.Mutex
	state      State
	pool       []domain.Word
	cursor     int
	missed     []domain.Word
	history    [][]domain.Word
	round      int
	feedback   *Feedback
	flagged    bool // current item was appended to missed by the last reveal
	lastActive time.Time
}

// Feedback is the outcome of the last reveal.
type Feedback struct {
	Correct  bool
	Answer   string
	Expected domain.Word
}

// View is a point-in-time snapshot of a session.
type View struct {
	ID    uuid.UUID
	Mode  Mode
	State State
	// Round is 0 for the initial pass and N for the N-th review round.
	Round    int
	Position int // 1-based, 0 outside a round
	PoolSize int
	// Prompt is what the learner is asked about: the word in memorize mode,
	// the meaning in practice mode.
	Prompt   string
	Feedback *Feedback
	Missed   int
	History  []int // missed-set size of each finished round
}

// NewSession creates a session in NotStarted. A nil shuffle draws uniformly
// random permutations.
func NewSession(mode Mode, shuffle wordlist.ShuffleFunc) (*Session, error) {
	evaluate, err := EvaluatorFor(mode)
	if err != nil {
		return nil, err
	}
	if shuffle == nil {
		shuffle = wordlist.RandomShuffle
	}
	s := &Session{
		id:       uuid.New(),
		mode:     mode,
		evaluate: evaluate,
		shuffle:  shuffle,
		now:      time.Now,
		state:    StateNotStarted,
	}
	s.lastActive = s.now()
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// Mode returns the session's mode.
func (s *Session) Mode() Mode { return s.mode }

// Start draws sampleSize words from source and begins the first round.
// Invalid input is rejected before any state changes.
func (s *Session) Start(sampleSize int, source []domain.Word) (View, error) {
	if err := validateStart(sampleSize, source); err != nil {
		return View{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateNotStarted {
		return View{}, s.invalid("start")
	}

	s.pool = wordlist.Sample(source, sampleSize, s.shuffle)
	s.cursor = 0
	s.missed = nil
	s.history = nil
	s.round = 0
	s.feedback = nil
	s.flagged = false
	s.state = StatePrompt
	s.touch()
	return s.view(), nil
}

func validateStart(sampleSize int, source []domain.Word) error {
	var errs []domain.FieldError

	if len(source) == 0 {
		errs = append(errs, domain.FieldError{Field: "words", Message: "required"})
	}
	if sampleSize < 1 {
		errs = append(errs, domain.FieldError{Field: "sample_size", Message: "must be at least 1"})
	} else if len(source) > 0 && sampleSize > len(source) {
		errs = append(errs, domain.FieldError{
			Field:   "sample_size",
			Message: fmt.Sprintf("must not exceed the number of words (%d)", len(source)),
		})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Reveal judges input for the current item and shows its feedback.
// A miss is recorded for the next round.
func (s *Session) Reveal(input string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePrompt {
		return View{}, s.invalid("reveal")
	}

	current := s.pool[s.cursor]
	correct, err := s.evaluate(input, current)
	if err != nil {
		return View{}, err
	}

	s.flagged = !correct
	if !correct {
		s.missed = append(s.missed, current)
	}
	s.feedback = &Feedback{Correct: correct, Answer: input, Expected: current}
	s.state = StateFeedback
	s.touch()
	return s.view(), nil
}

// Advance moves to the next item, the next review round, or completion.
func (s *Session) Advance() (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateFeedback {
		return View{}, s.invalid("advance")
	}
	s.next()
	return s.view(), nil
}

// MarkMastered overrides a miss recorded for the current item by the last
// reveal, then advances. Earlier entries in the missed set are untouched.
func (s *Session) MarkMastered() (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateFeedback {
		return View{}, s.invalid("mark mastered")
	}
	if s.flagged {
		s.missed = s.missed[:len(s.missed)-1]
		s.flagged = false
	}
	s.next()
	return s.view(), nil
}

// Reset discards all progress and returns the session to NotStarted.
func (s *Session) Reset() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pool = nil
	s.cursor = 0
	s.missed = nil
	s.history = nil
	s.round = 0
	s.feedback = nil
	s.flagged = false
	s.state = StateNotStarted
	s.touch()
	return s.view()
}

// View returns a snapshot of the session.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

// LastActive returns the time of the last transition.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// next must be called with s.mu held and the session in StateFeedback.
func (s *Session) next() {
	s.feedback = nil
	s.flagged = false
	s.touch()

	if s.cursor < len(s.pool)-1 {
		s.cursor++
		s.state = StatePrompt
		return
	}

	if len(s.missed) > 0 {
		s.history = append(s.history, s.missed)
		s.pool = s.missed
		s.missed = nil
		s.cursor = 0
		s.round++
		s.state = StatePrompt
		return
	}

	s.pool = nil
	s.cursor = 0
	s.state = StateCompleted
}

func (s *Session) view() View {
	v := View{
		ID:       s.id,
		Mode:     s.mode,
		State:    s.state,
		Round:    s.round,
		PoolSize: len(s.pool),
		Missed:   len(s.missed),
		History:  make([]int, len(s.history)),
	}
	for i, h := range s.history {
		v.History[i] = len(h)
	}

	switch s.state {
	case StatePrompt, StateFeedback:
		v.Position = s.cursor + 1
		current := s.pool[s.cursor]
		if s.mode == ModePractice {
			v.Prompt = current.Meaning
		} else {
			v.Prompt = current.Word
		}
	}
	if s.feedback != nil {
		fb := *s.feedback
		v.Feedback = &fb
	}
	return v
}

func (s *Session) touch() {
	s.lastActive = s.now()
}

func (s *Session) invalid(op string) error {
	return fmt.Errorf("%w: cannot %s in state %s", ErrInvalidTransition, op, s.state)
}

// IsInvalidTransition reports whether err came from an action attempted in the wrong state.
func IsInvalidTransition(err error) bool {
	return errors.Is(err, ErrInvalidTransition)
}
