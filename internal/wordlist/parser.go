// Package wordlist turns uploaded plain-text word lists into domain words.
// Parsing is best-effort: a line that matches no layout is dropped, never fatal.
package wordlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/heartmarshall/wordsprint/internal/domain"
)

var (
	lettersOnly = regexp.MustCompile(`^[A-Za-z]+$`)

	// word, optional part-of-speech marker such as "n." or "v.t.", meaning.
	withPartOfSpeech = regexp.MustCompile(`^([A-Za-z]+)(?:\s+[A-Za-z]+\.[A-Za-z.]*)?\s+(.+)$`)

	leadingLetters = regexp.MustCompile(`^[A-Za-z]+`)
)

// Parser converts raw word-list text into words.
type Parser struct {
	log *slog.Logger
}

// NewParser creates a Parser that reports dropped lines to logger at debug level.
func NewParser(logger *slog.Logger) *Parser {
	return &Parser{log: logger.With("component", "wordlist")}
}

// Parse converts raw text with one entry per line into words, preserving line order.
// It never fails; an input with no recognizable line yields an empty slice.
func Parse(raw string) []domain.Word {
	return NewParser(slog.Default()).Parse(raw)
}

// Parse converts raw text with one entry per line into words, preserving line order.
func (p *Parser) Parse(raw string) []domain.Word {
	raw = strings.TrimPrefix(raw, "\ufeff")

	words := make([]domain.Word, 0)
	for i, line := range strings.Split(raw, "\n") {
		if w, ok := p.parseLine(i+1, line); ok {
			words = append(words, w)
		}
	}

	p.log.Debug("word list parsed", slog.Int("words", len(words)))
	return words
}

// ParseReader reads a whole word list from r and parses it line by line.
// Lines have no length limit; only read failures are returned as errors.
func (p *Parser) ParseReader(r io.Reader) ([]domain.Word, error) {
	br := bufio.NewReader(r)

	words := make([]domain.Word, 0)
	lineNo := 0
	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read word list: %w", err)
		}
		if line != "" {
			lineNo++
			if lineNo == 1 {
				line = strings.TrimPrefix(line, "\ufeff")
			}
			if w, ok := p.parseLine(lineNo, line); ok {
				words = append(words, w)
			}
		}
		if err != nil {
			break
		}
	}

	p.log.Debug("word list parsed", slog.Int("lines", lineNo), slog.Int("words", len(words)))
	return words, nil
}

// parseLine applies the layouts in order; the first match wins.
func (p *Parser) parseLine(lineNo int, line string) (domain.Word, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return domain.Word{}, false
	}

	// word<space>meaning
	if idx := strings.IndexByte(line, ' '); idx > 0 {
		word := line[:idx]
		if lettersOnly.MatchString(word) {
			if meaning := strings.TrimSpace(line[idx+1:]); meaning != "" {
				return domain.Word{Word: word, Meaning: meaning}, true
			}
		}
	}

	// word [pos.] meaning, any whitespace
	if m := withPartOfSpeech.FindStringSubmatch(line); m != nil {
		if meaning := strings.TrimSpace(m[2]); meaning != "" {
			return domain.Word{Word: m[1], Meaning: meaning}, true
		}
	}

	// leading letters, then whatever follows
	if word := leadingLetters.FindString(line); word != "" {
		if meaning := strings.TrimSpace(line[len(word):]); meaning != "" {
			return domain.Word{Word: word, Meaning: meaning}, true
		}
	}

	p.log.Debug("word list line skipped", slog.Int("line", lineNo), slog.String("content", line))
	return domain.Word{}, false
}
