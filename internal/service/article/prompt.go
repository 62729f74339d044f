package article

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/heartmarshall/wordsprint/internal/domain"
)

// PromptOptions shapes the generation request.
type PromptOptions struct {
	MinWords            int
	MaxWords            int
	TranslationLanguage string
}

// BuildPrompt asks for a short passage that uses every selected word and for
// the reply as a JSON object with article and translation fields.
func BuildPrompt(words []domain.Word, opts PromptOptions) string {
	list := strings.Join(lo.Map(words, func(w domain.Word, _ int) string { return w.Word }), ", ")

	return fmt.Sprintf(`Write a short English passage that uses all of the following words: %s

Requirements:
1. The passage is %d-%d words long.
2. Every listed word appears naturally, in the given spelling.
3. Any suitable topic is fine: daily life, study, technology and so on.
4. The passage is coherent and reads logically from start to end.

Reply with a JSON object in exactly this shape:
{
  "article": "<the English passage>",
  "translation": "<the passage translated into %s>"
}

Make sure the reply is valid JSON.`, list, opts.MinWords, opts.MaxWords, opts.TranslationLanguage)
}
