package domain

import "context"

// TextOptions tune a single text generation call.
type TextOptions struct {
	// UseGrounding enables web-search augmentation; cited sources come back
	// on the reply.
	UseGrounding bool

	// SystemInstruction overrides the default persona. Empty means "use the
	// gateway's default".
	SystemInstruction string

	// Temperature overrides the default sampling temperature when non-nil.
	Temperature *float32
}

// ModelGateway defines how the core application talks to the generative
// model service. Each method performs exactly one outbound call; retries are
// the caller's responsibility.
type ModelGateway interface {
	// GenerateText sends a prompt to the text model.
	GenerateText(ctx context.Context, prompt string, opts TextOptions) (*ModelReply, error)

	// GenerateImage sends a prompt to the image model. previousImage, when
	// non-nil, is attached before the prompt so the model edits in context
	// instead of regenerating from scratch.
	GenerateImage(ctx context.Context, prompt string, previousImage []byte) (*ModelReply, error)

	// GenerateJSON sends a prompt with strict-JSON output requested and
	// returns the raw body; the caller parses it.
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// ConversationStore defines conversation persistence.
type ConversationStore interface {
	CreateConversation(conv *Conversation) error
	UpdateConversation(conv *Conversation) error
	GetConversation(id ConversationID) (*Conversation, error)
}

// TurnStore defines turn persistence. Turns are append-only and returned in
// insertion order.
type TurnStore interface {
	AppendTurn(turn *Turn) error
	GetTurnsByConversation(id ConversationID, limit int) ([]*Turn, error)
}
