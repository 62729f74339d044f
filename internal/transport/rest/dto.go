package rest

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/heartmarshall/wordsprint/internal/domain"
	"github.com/heartmarshall/wordsprint/internal/service/article"
	"github.com/heartmarshall/wordsprint/internal/service/drill"
)

// defaultSampleSize is used when a request omits its sample size or count.
const defaultSampleSize = 10

type wordDTO struct {
	Word    string `json:"word"`
	Meaning string `json:"meaning"`
}

type wordListResponse struct {
	Count int       `json:"count"`
	Words []wordDTO `json:"words"`
}

type feedbackDTO struct {
	Correct  bool    `json:"correct"`
	Answer   string  `json:"answer"`
	Expected wordDTO `json:"expected"`
}

type sessionResponse struct {
	ID       string       `json:"id"`
	Mode     string       `json:"mode"`
	State    string       `json:"state"`
	Round    int          `json:"round"`
	Position int          `json:"position"`
	PoolSize int          `json:"poolSize"`
	Prompt   string       `json:"prompt,omitempty"`
	Feedback *feedbackDTO `json:"feedback,omitempty"`
	Missed   int          `json:"missed"`
	History  []int        `json:"history"`
}

type segmentDTO struct {
	Text    string `json:"text"`
	Hit     bool   `json:"hit"`
	Meaning string `json:"meaning,omitempty"`
}

type articleResponse struct {
	Article     string       `json:"article"`
	Translation string       `json:"translation"`
	Words       []wordDTO    `json:"words"`
	Segments    []segmentDTO `json:"segments"`
}

func toWordDTOs(words []domain.Word) []wordDTO {
	return lo.Map(words, func(w domain.Word, _ int) wordDTO {
		return wordDTO{Word: w.Word, Meaning: w.Meaning}
	})
}

// toDomainWords converts request words, rejecting any that is not a valid domain.Word.
func toDomainWords(words []wordDTO) ([]domain.Word, error) {
	out := lo.Map(words, func(w wordDTO, _ int) domain.Word {
		return domain.Word{Word: w.Word, Meaning: w.Meaning}
	})

	var errs []domain.FieldError
	for i, w := range out {
		var ve *domain.ValidationError
		if !errors.As(w.Validate(), &ve) {
			continue
		}
		for _, fe := range ve.Errors {
			errs = append(errs, domain.FieldError{
				Field:   fmt.Sprintf("words[%d].%s", i, fe.Field),
				Message: fe.Message,
			})
		}
	}
	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}
	return out, nil
}

func toSessionResponse(v drill.View) sessionResponse {
	resp := sessionResponse{
		ID:       v.ID.String(),
		Mode:     v.Mode.String(),
		State:    string(v.State),
		Round:    v.Round,
		Position: v.Position,
		PoolSize: v.PoolSize,
		Prompt:   v.Prompt,
		Missed:   v.Missed,
		History:  v.History,
	}
	if resp.History == nil {
		resp.History = []int{}
	}
	if v.Feedback != nil {
		resp.Feedback = &feedbackDTO{
			Correct: v.Feedback.Correct,
			Answer:  v.Feedback.Answer,
			Expected: wordDTO{
				Word:    v.Feedback.Expected.Word,
				Meaning: v.Feedback.Expected.Meaning,
			},
		}
	}
	return resp
}

func toArticleResponse(result *domain.ArticleResult) articleResponse {
	segments := article.Segment(result.Article, result.Words)
	return articleResponse{
		Article:     result.Article,
		Translation: result.Translation,
		Words:       toWordDTOs(result.Words),
		Segments: lo.Map(segments, func(s article.TextSegment, _ int) segmentDTO {
			dto := segmentDTO{Text: s.Text}
			if s.Word != nil {
				dto.Hit = true
				dto.Meaning = s.Word.Meaning
			}
			return dto
		}),
	}
}

// sampleSizeOrDefault resolves an optional size: nil means the default,
// clamped to the number of available words.
func sampleSizeOrDefault(size *int, available int) int {
	if size != nil {
		return *size
	}
	return min(defaultSampleSize, available)
}
