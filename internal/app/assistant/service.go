// Package assistant orchestrates the one-shot SEO tasks: prompt building,
// the gateway call, and response normalization.
package assistant

import (
	"context"
	"strings"

	"github.com/rankpilot/rankpilot/internal/domain"
	"github.com/rankpilot/rankpilot/internal/normalize"
	"github.com/rankpilot/rankpilot/internal/observability"
	"github.com/rankpilot/rankpilot/internal/prompt"
)

const msgNoImage = "The model didn't return an image. It might have refused the request or returned only text."

// fallbackNewsItem is shown when the digest call yields nothing parseable.
var fallbackNewsItem = domain.NewsItem{
	Title:   "SEO insights are refreshing",
	Summary: "The daily digest could not be curated right now. Check Google Search Central for the latest announcements.",
	URL:     "https://developers.google.com/search/blog",
	Source:  "RankPilot",
	Date:    "Today",
}

type Service struct {
	gateway domain.ModelGateway
}

func NewService(gateway domain.ModelGateway) *Service {
	return &Service{gateway: gateway}
}

type Report struct {
	Markdown  string
	Citations []domain.Citation
}

// Keywords runs keyword research for a topic, optionally grounded.
func (s *Service) Keywords(ctx context.Context, topic string, useGrounding bool) (*Report, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, domain.ErrEmptyInput
	}

	log := observability.LoggerFromContext(ctx).With("task", "keywords", "grounding", useGrounding)
	log.Info("running keyword research")

	reply, err := s.gateway.GenerateText(ctx, prompt.Keywords(topic, useGrounding), domain.TextOptions{
		UseGrounding: useGrounding,
	})
	if err != nil {
		log.Error("gateway call failed", "error", err)
		return nil, err
	}

	return &Report{
		Markdown:  normalize.Text(reply),
		Citations: normalize.Citations(reply),
	}, nil
}

// Optimize rewrites draft content for SEO.
func (s *Service) Optimize(ctx context.Context, draft string) (*Report, error) {
	draft = strings.TrimSpace(draft)
	if draft == "" {
		return nil, domain.ErrEmptyInput
	}

	log := observability.LoggerFromContext(ctx).With("task", "optimize")
	log.Info("optimizing content")

	reply, err := s.gateway.GenerateText(ctx, prompt.Optimize(draft), domain.TextOptions{})
	if err != nil {
		log.Error("gateway call failed", "error", err)
		return nil, err
	}

	return &Report{Markdown: normalize.Text(reply)}, nil
}

type MetaTagsOutput struct {
	Markdown string

	// Preview is the best option extracted from the reply's fenced JSON
	// block; nil when extraction fails, which is not an error.
	Preview *domain.MetaPreview
}

// MetaTags generates meta title/description options plus a SERP preview.
func (s *Service) MetaTags(ctx context.Context, content string) (*MetaTagsOutput, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.ErrEmptyInput
	}

	log := observability.LoggerFromContext(ctx).With("task", "meta_tags")
	log.Info("generating meta tags")

	reply, err := s.gateway.GenerateText(ctx, prompt.MetaTags(content), domain.TextOptions{})
	if err != nil {
		log.Error("gateway call failed", "error", err)
		return nil, err
	}

	text := normalize.Text(reply)

	out := &MetaTagsOutput{Markdown: text}
	if block, ok := normalize.JSONBlock(text); ok {
		if block["title"] != "" || block["description"] != "" {
			out.Preview = &domain.MetaPreview{
				Title:       block["title"],
				Description: block["description"],
			}
		}
	}
	if out.Preview == nil {
		log.Info("no structured preview in reply")
	}

	return out, nil
}

type ImageOutput struct {
	Data     []byte
	MIMEType string

	// Text is whatever commentary the model emitted alongside the image.
	Text string
}

// CreateImage generates a marketing image from scratch.
func (s *Service) CreateImage(ctx context.Context, content string) (*ImageOutput, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.ErrEmptyInput
	}
	return s.generateImage(ctx, prompt.CreateImage(content), nil)
}

// RefineImage edits a previously generated image in context.
func (s *Service) RefineImage(ctx context.Context, feedback string, previousImage []byte) (*ImageOutput, error) {
	feedback = strings.TrimSpace(feedback)
	if feedback == "" {
		return nil, domain.ErrEmptyInput
	}
	if len(previousImage) == 0 {
		return nil, domain.ErrEmptyInput
	}
	return s.generateImage(ctx, prompt.RefineImage(feedback), previousImage)
}

func (s *Service) generateImage(ctx context.Context, fullPrompt string, previousImage []byte) (*ImageOutput, error) {
	log := observability.LoggerFromContext(ctx).With("task", "image", "refining", len(previousImage) > 0)
	log.Info("generating image")

	reply, err := s.gateway.GenerateImage(ctx, fullPrompt, previousImage)
	if err != nil {
		log.Error("gateway call failed", "error", err)
		return nil, err
	}

	data, mimeType, ok := normalize.Image(reply)
	if !ok {
		// The call worked; the model just declined to draw. Distinct from
		// a transport failure.
		log.Info("reply contained no image part")
		return nil, domain.NewGatewayError(domain.GatewayEmpty, msgNoImage, nil)
	}

	out := &ImageOutput{Data: data, MIMEType: mimeType}
	for _, p := range reply.Parts {
		if p.Kind == domain.PartText {
			out.Text += p.Text
		}
	}
	return out, nil
}

// NewsDigest fetches the curated daily news. Parse failures degrade to the
// static fallback item rather than an error.
func (s *Service) NewsDigest(ctx context.Context) ([]domain.NewsItem, error) {
	log := observability.LoggerFromContext(ctx).With("task", "news_digest")
	log.Info("fetching news digest")

	raw, err := s.gateway.GenerateJSON(ctx, prompt.NewsDigest(normalize.MaxNewsItems))
	if err != nil {
		log.Error("gateway call failed", "error", err)
		return nil, err
	}

	items := normalize.NewsItems(raw)
	if len(items) == 0 {
		log.Info("digest reply not parseable, using fallback item")
		return []domain.NewsItem{fallbackNewsItem}, nil
	}
	return items, nil
}

// ReadArticle produces a grounded reader-mode summary of a news item.
func (s *Service) ReadArticle(ctx context.Context, url, title string) (*Report, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, domain.ErrEmptyInput
	}

	log := observability.LoggerFromContext(ctx).With("task", "read_article")
	log.Info("summarizing article")

	reply, err := s.gateway.GenerateText(ctx, prompt.ReadArticle(url, title), domain.TextOptions{
		UseGrounding: true,
	})
	if err != nil {
		log.Error("gateway call failed", "error", err)
		return nil, err
	}

	return &Report{
		Markdown:  normalize.Text(reply),
		Citations: normalize.Citations(reply),
	}, nil
}
