package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/wordsprint/internal/domain"
)

var _ articleGenerator = &articleGeneratorMock{}

type articleGeneratorMock struct {
	GenerateFunc func(ctx context.Context, words []domain.Word, count int) (*domain.ArticleResult, error)

	calls struct {
		Generate []struct {
			Ctx   context.Context
			Words []domain.Word
			Count int
		}
	}
	lockGenerate sync.RWMutex
}

func (mock *articleGeneratorMock) Generate(ctx context.Context, words []domain.Word, count int) (*domain.ArticleResult, error) {
	if mock.GenerateFunc == nil {
		panic("articleGeneratorMock.GenerateFunc: method is nil but articleGenerator.Generate was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Words []domain.Word
		Count int
	}{Ctx: ctx, Words: words, Count: count}
	mock.lockGenerate.Lock()
	mock.calls.Generate = append(mock.calls.Generate, callInfo)
	mock.lockGenerate.Unlock()
	return mock.GenerateFunc(ctx, words, count)
}

func (mock *articleGeneratorMock) GenerateCalls() []struct {
	Ctx   context.Context
	Words []domain.Word
	Count int
} {
	mock.lockGenerate.RLock()
	calls := mock.calls.Generate
	mock.lockGenerate.RUnlock()
	return calls
}
