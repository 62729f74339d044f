package article

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/heartmarshall/wordsprint/internal/domain"
)

var (
	articleField     = regexp.MustCompile(`(?is)article["\s]*:["\s]*(.*?)(?:["\s,]*translation["\s]*:|\z)`)
	translationField = regexp.MustCompile(`(?is)translation["\s]*:["\s]*(.*)\z`)
)

// fieldCutset is stripped from both ends of a pattern-extracted field.
const fieldCutset = "\" \t\r\n,{}"

type payload struct {
	Article     string `json:"article"`
	Translation string `json:"translation"`
}

// extractors are tried in order until one yields both fields.
var extractors = []func(string) (payload, bool){
	parseFirstObject,
	parseWholeText,
	matchFields,
}

// Extract coerces a freeform reply into an article and its translation.
// It tries, in order: the first balanced {...} in the text, the whole text as
// JSON, then the text after literal "article:" / "translation:" markers.
// A strategy that leaves a field empty hands over to the next one.
func Extract(content string) (domain.ArticleResult, error) {
	var best payload
	for _, extract := range extractors {
		p, ok := extract(content)
		if !ok {
			continue
		}
		p.Article = strings.TrimSpace(p.Article)
		p.Translation = strings.TrimSpace(p.Translation)
		if p.Article != "" && p.Translation != "" {
			return domain.ArticleResult{Article: p.Article, Translation: p.Translation}, nil
		}
		if p.filled() > best.filled() {
			best = p
		}
	}

	var missing []string
	if best.Article == "" {
		missing = append(missing, "article")
	}
	if best.Translation == "" {
		missing = append(missing, "translation")
	}
	return domain.ArticleResult{}, &domain.FormatError{
		Reason:  "missing " + strings.Join(missing, " and "),
		Content: content,
	}
}

func (p payload) filled() int {
	n := 0
	if p.Article != "" {
		n++
	}
	if p.Translation != "" {
		n++
	}
	return n
}

func parseFirstObject(s string) (payload, bool) {
	obj, ok := firstBalancedObject(s)
	if !ok {
		return payload{}, false
	}
	return parseJSON(obj)
}

func parseWholeText(s string) (payload, bool) {
	return parseJSON(strings.TrimSpace(s))
}

func parseJSON(s string) (payload, bool) {
	var p payload
	if err := json.Unmarshal([]byte(s), &p); err != nil {
		return payload{}, false
	}
	return p, true
}

// firstBalancedObject returns the substring from the first '{' to its matching
// '}'. Braces inside JSON strings are ignored.
func firstBalancedObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString, escaped := false, false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

func matchFields(s string) (payload, bool) {
	var p payload
	if m := articleField.FindStringSubmatch(s); m != nil {
		p.Article = cleanField(m[1])
	}
	if m := translationField.FindStringSubmatch(s); m != nil {
		p.Translation = cleanField(m[1])
	}
	return p, true
}

// cleanField trims quoting debris and decodes JSON escapes when possible.
func cleanField(s string) string {
	s = strings.Trim(s, fieldCutset)
	if unquoted, err := strconv.Unquote(`"` + s + `"`); err == nil {
		return unquoted
	}
	return s
}
