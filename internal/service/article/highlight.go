package article

import (
	"regexp"
	"strings"

	"github.com/heartmarshall/wordsprint/internal/domain"
)

var separator = regexp.MustCompile(`\s+|[.,!?;:]`)

// TextSegment is one piece of a passage. Word is set when the piece is one of
// the selected vocabulary words.
type TextSegment struct {
	Text string
	Word *domain.Word
}

// Segment splits text into words and separators (whitespace runs and
// . , ! ? ; :), keeping every separator so the pieces concatenate back to text.
// A piece equal to a selected word, ignoring case, carries that word.
// The result is plain data; rendering decides how to mark hits.
func Segment(text string, words []domain.Word) []TextSegment {
	index := make(map[string]domain.Word, len(words))
	for _, w := range words {
		key := strings.ToLower(w.Word)
		if _, ok := index[key]; !ok {
			index[key] = w
		}
	}

	segments := make([]TextSegment, 0)
	appendPiece := func(piece string) {
		if piece == "" {
			return
		}
		seg := TextSegment{Text: piece}
		if w, ok := index[strings.ToLower(piece)]; ok {
			seg.Word = &w
		}
		segments = append(segments, seg)
	}

	last := 0
	for _, loc := range separator.FindAllStringIndex(text, -1) {
		appendPiece(text[last:loc[0]])
		segments = append(segments, TextSegment{Text: text[loc[0]:loc[1]]})
		last = loc[1]
	}
	appendPiece(text[last:])

	return segments
}
