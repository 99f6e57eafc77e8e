// Package normalize shapes loosely-structured model replies into values the
// rest of the application can trust. Extraction never fails: malformed input
// degrades to "no structured data", not an error.
package normalize

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/rankpilot/rankpilot/internal/domain"
)

// FallbackText is returned when a reply carries no text at all.
const FallbackText = "No response generated."

var fencedJSON = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

// Text concatenates all text parts of a reply in order, skipping image
// parts. A textless reply yields FallbackText.
func Text(reply *domain.ModelReply) string {
	if reply == nil {
		return FallbackText
	}

	var b strings.Builder
	for _, p := range reply.Parts {
		if p.Kind == domain.PartText {
			b.WriteString(p.Text)
		}
	}

	if b.Len() == 0 {
		return FallbackText
	}
	return b.String()
}

// JSONBlock extracts and parses the first ```json fenced block embedded in
// text. Stage one finds the block, stage two strict-parses it; either stage
// failing reports absent. Prose before or after the block is fine.
func JSONBlock(text string) (map[string]string, bool) {
	m := fencedJSON.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}

	var out map[string]string
	if err := json.Unmarshal([]byte(m[1]), &out); err != nil {
		return nil, false
	}
	return out, true
}

// Image returns the first inline-image part of a reply. Absent means the
// model chose not to produce an image, which callers must not confuse with a
// transport failure.
func Image(reply *domain.ModelReply) ([]byte, string, bool) {
	if reply == nil {
		return nil, "", false
	}
	for _, p := range reply.Parts {
		if p.Kind == domain.PartImage && len(p.Data) > 0 {
			return p.Data, p.MIMEType, true
		}
	}
	return nil, "", false
}

// Citations returns the reply's grounding sources in order. Pure function of
// its input; a reply without grounding yields an empty slice.
func Citations(reply *domain.ModelReply) []domain.Citation {
	if reply == nil || len(reply.Citations) == 0 {
		return []domain.Citation{}
	}
	out := make([]domain.Citation, len(reply.Citations))
	copy(out, reply.Citations)
	return out
}
