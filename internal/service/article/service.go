// Package article generates reading passages around a random selection of words.
package article

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/wordsprint/internal/domain"
	"github.com/heartmarshall/wordsprint/internal/wordlist"
)

type completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Service implements the article request pipeline.
type Service struct {
	llm     completer
	prompt  PromptOptions
	shuffle wordlist.ShuffleFunc
	log     *slog.Logger
}

// NewService creates an article Service. A nil shuffle selects words uniformly at random.
func NewService(log *slog.Logger, llm completer, prompt PromptOptions, shuffle wordlist.ShuffleFunc) *Service {
	if shuffle == nil {
		shuffle = wordlist.RandomShuffle
	}
	return &Service{
		llm:     llm,
		prompt:  prompt,
		shuffle: shuffle,
		log:     log.With("service", "article"),
	}
}

// Generate selects count random words and asks the endpoint for a passage
// using them. Every call selects and queries afresh.
func (s *Service) Generate(ctx context.Context, words []domain.Word, count int) (*domain.ArticleResult, error) {
	if err := validateGenerate(words, count); err != nil {
		return nil, err
	}

	selection := wordlist.Sample(words, count, s.shuffle)
	prompt := BuildPrompt(selection, s.prompt)

	start := time.Now()
	content, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate article: %w", err)
	}

	result, err := Extract(content)
	if err != nil {
		s.log.WarnContext(ctx, "unusable article reply",
			slog.String("error", err.Error()),
			slog.Int("content_len", len(content)),
		)
		return nil, fmt.Errorf("generate article: %w", err)
	}
	result.Words = selection

	s.log.InfoContext(ctx, "article generated",
		slog.Int("words", len(selection)),
		slog.Int("article_len", len(result.Article)),
		slog.Duration("duration", time.Since(start)),
	)
	return &result, nil
}

func validateGenerate(words []domain.Word, count int) error {
	var errs []domain.FieldError

	if len(words) == 0 {
		errs = append(errs, domain.FieldError{Field: "words", Message: "required"})
	}
	if count < 1 {
		errs = append(errs, domain.FieldError{Field: "count", Message: "must be at least 1"})
	} else if len(words) > 0 && count > len(words) {
		errs = append(errs, domain.FieldError{
			Field:   "count",
			Message: fmt.Sprintf("must not exceed the number of words (%d)", len(words)),
		})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
