// Package gemini implements domain.ModelGateway on top of the Gemini API
// (google.golang.org/genai).
package gemini

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/rankpilot/rankpilot/internal/domain"
)

const (
	msgTransportText  = "Failed to generate content. Please try again."
	msgTransportImage = "Failed to generate image. Please try again."
)

const defaultTemperature = float32(0.7)

// Config carries everything the client needs; the credential is checked for
// presence here and nowhere else.
type Config struct {
	APIKey     string
	TextModel  string
	ImageModel string

	// SystemInstruction is the default persona for text calls; per-call
	// options can override it.
	SystemInstruction string

	// Timeout bounds each outbound call. Zero means 45s.
	Timeout time.Duration
}

// Client is an explicitly constructed gateway handle; its lifecycle is owned
// by the caller, there is no package-level instance.
type Client struct {
	client *genai.Client

	textModel     string
	imageModel    string
	defaultSystem string
	timeout       time.Duration
}

// NewClient creates a ModelGateway backed by the Gemini API.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if cfg.TextModel == "" || cfg.ImageModel == "" {
		return nil, fmt.Errorf("text and image model names are required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 45 * time.Second
	}

	return &Client{
		client:        client,
		textModel:     cfg.TextModel,
		imageModel:    cfg.ImageModel,
		defaultSystem: cfg.SystemInstruction,
		timeout:       timeout,
	}, nil
}

// GenerateText implements domain.ModelGateway. A reply without text parts is
// returned as-is; the normalizer supplies the fallback string.
func (c *Client) GenerateText(ctx context.Context, prompt string, opts domain.TextOptions) (*domain.ModelReply, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	system := opts.SystemInstruction
	if system == "" {
		system = c.defaultSystem
	}

	temp := defaultTemperature
	if opts.Temperature != nil {
		temp = *opts.Temperature
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       &temp,
	}
	if opts.UseGrounding {
		cfg.Tools = []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		}
	}

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	res, err := c.client.Models.GenerateContent(ctx, c.textModel, contents, cfg)
	if err != nil {
		return nil, domain.NewGatewayError(domain.GatewayTransport, msgTransportText,
			fmt.Errorf("gemini generate content: %w", err))
	}

	return toReply(res), nil
}

// GenerateImage implements domain.ModelGateway. When previousImage is set it
// is attached before the instruction text so the model edits in context.
// The image model has no system-instruction channel, so the persona travels
// inside the prompt. PNG encoding is assumed for the refinement input; the
// true MIME type is not tracked end to end.
func (c *Client) GenerateImage(ctx context.Context, prompt string, previousImage []byte) (*domain.ModelReply, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var parts []*genai.Part
	if len(previousImage) > 0 {
		parts = append(parts, genai.NewPartFromBytes(previousImage, "image/png"))
	}
	parts = append(parts, genai.NewPartFromText(prompt))

	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	res, err := c.client.Models.GenerateContent(ctx, c.imageModel, contents, nil)
	if err != nil {
		return nil, domain.NewGatewayError(domain.GatewayTransport, msgTransportImage,
			fmt.Errorf("gemini generate image: %w", err))
	}

	return toReply(res), nil
}

// GenerateJSON implements domain.ModelGateway. JSON mode cannot be combined
// with the search tool, so these calls are never grounded.
func (c *Client) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	temp := defaultTemperature
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(c.defaultSystem, genai.RoleUser),
		Temperature:       &temp,
		ResponseMIMEType:  "application/json",
	}

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	res, err := c.client.Models.GenerateContent(ctx, c.textModel, contents, cfg)
	if err != nil {
		return "", domain.NewGatewayError(domain.GatewayTransport, msgTransportText,
			fmt.Errorf("gemini generate json: %w", err))
	}

	return res.Text(), nil
}

// toReply flattens the first candidate into a domain.ModelReply, preserving
// part order.
func toReply(res *genai.GenerateContentResponse) *domain.ModelReply {
	reply := &domain.ModelReply{}
	if res == nil || len(res.Candidates) == 0 {
		return reply
	}

	cand := res.Candidates[0]
	if cand.Content != nil {
		for _, p := range cand.Content.Parts {
			if p == nil {
				continue
			}
			switch {
			case p.InlineData != nil:
				reply.Parts = append(reply.Parts, domain.ImagePart(p.InlineData.Data, p.InlineData.MIMEType))
			case p.Text != "":
				reply.Parts = append(reply.Parts, domain.TextPart(p.Text))
			}
		}
	}

	if cand.GroundingMetadata != nil {
		for _, chunk := range cand.GroundingMetadata.GroundingChunks {
			if chunk == nil || chunk.Web == nil {
				continue
			}
			reply.Citations = append(reply.Citations, domain.Citation{
				URI:   chunk.Web.URI,
				Title: chunk.Web.Title,
			})
		}
	}

	return reply
}
