package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/rankpilot/rankpilot/internal/domain"
)

// Mock is a canned ModelGateway for local development and tests.
type Mock struct{}

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) GenerateText(ctx context.Context, prompt string, opts domain.TextOptions) (*domain.ModelReply, error) {
	reply := &domain.ModelReply{
		Parts: []domain.Part{
			domain.TextPart(mockTextFor(prompt)),
		},
	}
	if opts.UseGrounding {
		reply.Citations = []domain.Citation{
			{URI: "https://developers.google.com/search/blog", Title: "Google Search Central Blog"},
		}
	}
	return reply, nil
}

func (m *Mock) GenerateImage(ctx context.Context, prompt string, previousImage []byte) (*domain.ModelReply, error) {
	return &domain.ModelReply{
		Parts: []domain.Part{
			domain.ImagePart([]byte("mock-png-bytes"), "image/png"),
			domain.TextPart("Here is your marketing visual."),
		},
	}, nil
}

func (m *Mock) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	return `[{"title":"Mock SEO Update","summary":"A placeholder digest item.","url":"https://example.com/mock","source":"Mock Source","date":"Jan 1, 2026"}]`, nil
}

func mockTextFor(prompt string) string {
	// The meta-tag flow expects a fenced JSON block it can preview.
	if strings.Contains(prompt, "Meta Titles") {
		return "Here are 3 options.\n\n```json\n{\"title\":\"Mock Meta Title\",\"description\":\"Mock meta description.\"}\n```"
	}
	return fmt.Sprintf("Mock analysis for: %.60s", prompt)
}
