package normalize

import (
	"encoding/json"
	"strings"

	"github.com/rankpilot/rankpilot/internal/domain"
)

// MaxNewsItems caps the digest regardless of how many items the model emits.
const MaxNewsItems = 5

// NewsItems parses the news-digest reply into validated items. Stage one
// strict-parses the whole body as a JSON array; stage two salvages the first
// [...] span out of surrounding prose; failing both yields an empty slice so
// the caller can substitute its static fallback.
func NewsItems(raw string) []domain.NewsItem {
	items, ok := parseNewsArray(strings.TrimSpace(raw))
	if !ok {
		span, found := firstArraySpan(raw)
		if !found {
			return []domain.NewsItem{}
		}
		items, ok = parseNewsArray(span)
		if !ok {
			return []domain.NewsItem{}
		}
	}

	out := make([]domain.NewsItem, 0, MaxNewsItems)
	for _, it := range items {
		if it.Title == "" || it.URL == "" {
			continue
		}
		out = append(out, it)
		if len(out) == MaxNewsItems {
			break
		}
	}
	return out
}

func parseNewsArray(s string) ([]domain.NewsItem, bool) {
	var items []domain.NewsItem
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return nil, false
	}
	return items, true
}

// firstArraySpan returns the first balanced [...] span in s. Bracket
// balancing ignores brackets inside JSON strings.
func firstArraySpan(s string) (string, bool) {
	start := strings.IndexByte(s, '[')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
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
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
