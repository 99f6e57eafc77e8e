package assistant_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rankpilot/rankpilot/internal/adapters/gemini"
	"github.com/rankpilot/rankpilot/internal/app/assistant"
	"github.com/rankpilot/rankpilot/internal/domain"
)

// stubGateway returns canned values and records what it was asked.
type stubGateway struct {
	textReply  *domain.ModelReply
	jsonReply  string
	imageReply *domain.ModelReply

	lastPrompt    string
	lastOpts      domain.TextOptions
	lastPrevImage []byte
}

func (g *stubGateway) GenerateText(ctx context.Context, prompt string, opts domain.TextOptions) (*domain.ModelReply, error) {
	g.lastPrompt = prompt
	g.lastOpts = opts
	return g.textReply, nil
}

func (g *stubGateway) GenerateImage(ctx context.Context, prompt string, previousImage []byte) (*domain.ModelReply, error) {
	g.lastPrompt = prompt
	g.lastPrevImage = previousImage
	return g.imageReply, nil
}

func (g *stubGateway) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	g.lastPrompt = prompt
	return g.jsonReply, nil
}

func textReply(text string) *domain.ModelReply {
	return &domain.ModelReply{Parts: []domain.Part{domain.TextPart(text)}}
}

func TestKeywordsPassesGroundingThrough(t *testing.T) {
	gw := &stubGateway{textReply: textReply("| Keyword | Intent | Why |")}
	gw.textReply.Citations = []domain.Citation{{URI: "https://src.example", Title: "Src"}}
	svc := assistant.NewService(gw)

	report, err := svc.Keywords(context.Background(), "yoga mats", true)
	if err != nil {
		t.Fatalf("Keywords failed: %v", err)
	}
	if !gw.lastOpts.UseGrounding {
		t.Error("grounding flag not forwarded to the gateway")
	}
	if len(report.Citations) != 1 || report.Citations[0].Title != "Src" {
		t.Errorf("citations not carried through: %+v", report.Citations)
	}
}

func TestKeywordsRejectsEmptyTopic(t *testing.T) {
	svc := assistant.NewService(gemini.NewMock())

	_, err := svc.Keywords(context.Background(), "  ", false)
	if !errors.Is(err, domain.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestMetaTagsExtractsPreview(t *testing.T) {
	gw := &stubGateway{textReply: textReply(
		"Option 1... Option 2...\n```json\n{\"title\":\"Best Yoga Mats\",\"description\":\"Compare top mats.\"}\n```",
	)}
	svc := assistant.NewService(gw)

	out, err := svc.MetaTags(context.Background(), "yoga mat landing page")
	if err != nil {
		t.Fatalf("MetaTags failed: %v", err)
	}
	if out.Preview == nil {
		t.Fatal("expected a SERP preview")
	}
	if out.Preview.Title != "Best Yoga Mats" || out.Preview.Description != "Compare top mats." {
		t.Errorf("unexpected preview: %+v", out.Preview)
	}
}

func TestMetaTagsDegradesWithoutBlock(t *testing.T) {
	gw := &stubGateway{textReply: textReply("Only prose, the model forgot the block.")}
	svc := assistant.NewService(gw)

	out, err := svc.MetaTags(context.Background(), "some content")
	if err != nil {
		t.Fatalf("parse failure must be non-fatal, got %v", err)
	}
	if out.Preview != nil {
		t.Errorf("expected absent preview, got %+v", out.Preview)
	}
	if out.Markdown == "" {
		t.Error("raw text must still be returned")
	}
}

func TestRefineImageForwardsPreviousBytes(t *testing.T) {
	prev := []byte("previous-png")
	gw := &stubGateway{imageReply: &domain.ModelReply{Parts: []domain.Part{
		domain.ImagePart([]byte("refined-png"), "image/png"),
	}}}
	svc := assistant.NewService(gw)

	out, err := svc.RefineImage(context.Background(), "make it warmer", prev)
	if err != nil {
		t.Fatalf("RefineImage failed: %v", err)
	}
	if string(gw.lastPrevImage) != "previous-png" {
		t.Error("previous image bytes not forwarded")
	}
	if !strings.Contains(gw.lastPrompt, "make it warmer") {
		t.Errorf("feedback missing from prompt: %q", gw.lastPrompt)
	}
	if string(out.Data) != "refined-png" {
		t.Errorf("unexpected image data: %q", out.Data)
	}
}

func TestImageTextOnlyReplyIsEmptyError(t *testing.T) {
	gw := &stubGateway{imageReply: textReply("I cannot draw that.")}
	svc := assistant.NewService(gw)

	_, err := svc.CreateImage(context.Background(), "a coffee shop")
	ge, ok := domain.AsGatewayError(err)
	if !ok {
		t.Fatalf("expected a GatewayError, got %v", err)
	}
	if ge.Kind != domain.GatewayEmpty {
		t.Errorf("expected GatewayEmpty, got kind %d", ge.Kind)
	}
}

func TestNewsDigestFallsBackOnGarbage(t *testing.T) {
	gw := &stubGateway{jsonReply: "the model rambled instead of emitting JSON"}
	svc := assistant.NewService(gw)

	items, err := svc.NewsDigest(context.Background())
	if err != nil {
		t.Fatalf("NewsDigest failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected the single fallback item, got %d", len(items))
	}
	if items[0].URL == "" || items[0].Title == "" {
		t.Errorf("fallback item incomplete: %+v", items[0])
	}
}

func TestNewsDigestParsesMockShape(t *testing.T) {
	svc := assistant.NewService(gemini.NewMock())

	items, err := svc.NewsDigest(context.Background())
	if err != nil {
		t.Fatalf("NewsDigest failed: %v", err)
	}
	if len(items) != 1 || items[0].Title != "Mock SEO Update" {
		t.Errorf("unexpected digest: %+v", items)
	}
}

func TestReadArticleIsGrounded(t *testing.T) {
	gw := &stubGateway{textReply: textReply("## Summary")}
	svc := assistant.NewService(gw)

	if _, err := svc.ReadArticle(context.Background(), "https://example.com/post", "A Post"); err != nil {
		t.Fatalf("ReadArticle failed: %v", err)
	}
	if !gw.lastOpts.UseGrounding {
		t.Error("reader mode must request grounding")
	}
	if !strings.Contains(gw.lastPrompt, "https://example.com/post") {
		t.Errorf("url missing from prompt: %q", gw.lastPrompt)
	}
}
