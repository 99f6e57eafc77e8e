package chat

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rankpilot/rankpilot/internal/domain"
	"github.com/rankpilot/rankpilot/internal/normalize"
	"github.com/rankpilot/rankpilot/internal/observability"
	"github.com/rankpilot/rankpilot/internal/prompt"
)

const greetingText = "Hello! I'm your expert SEO Consultant. I can help with strategy, technical SEO questions, or content ideas. What's on your mind?"

const errorTurnText = "I encountered an error connecting to the SEO database. Please try again."

type Service struct {
	gateway   domain.ModelGateway
	convStore domain.ConversationStore
	turnStore domain.TurnStore
	now       func() time.Time
}

func NewService(
	gateway domain.ModelGateway,
	convStore domain.ConversationStore,
	turnStore domain.TurnStore,
) *Service {
	return &Service{
		gateway:   gateway,
		convStore: convStore,
		turnStore: turnStore,
		now:       time.Now,
	}
}

type StartConversationOutput struct {
	Conversation *domain.Conversation
	Greeting     *domain.Turn
}

// StartConversation creates a conversation seeded with the consultant's
// greeting turn.
func (s *Service) StartConversation(ctx context.Context, title string) (*StartConversationOutput, error) {
	now := s.now()

	log := observability.LoggerFromContext(ctx)
	log.Info("starting new conversation")

	conv := &domain.Conversation{
		ID:        domain.ConversationID(uuid.NewString()),
		CreatedAt: now,
		UpdatedAt: now,
		Title:     title,
	}

	if err := s.convStore.CreateConversation(conv); err != nil {
		log.Error("failed to create conversation", "error", err)
		return nil, err
	}

	greeting := &domain.Turn{
		ID:             domain.TurnID(uuid.NewString()),
		ConversationID: conv.ID,
		Author:         domain.RoleAgent,
		Text:           greetingText,
		CreatedAt:      now,
	}

	if err := s.turnStore.AppendTurn(greeting); err != nil {
		log.Error("failed to append greeting turn", "error", err)
		return nil, err
	}

	log.Info("conversation started", "conversation_id", conv.ID)

	return &StartConversationOutput{
		Conversation: conv,
		Greeting:     greeting,
	}, nil
}

type SendMessageInput struct {
	ConversationID domain.ConversationID
	Text           string
}

type SendMessageOutput struct {
	UserTurn  *domain.Turn
	AgentTurn *domain.Turn
	Citations []domain.Citation
}

// SendMessage appends the user turn, sends the windowed context to the
// model, and appends the agent's reply. A gateway failure is not returned as
// an error: it becomes a flagged error turn, like any other reply.
func (s *Service) SendMessage(ctx context.Context, in SendMessageInput) (*SendMessageOutput, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, domain.ErrEmptyInput
	}

	conv, err := s.convStore.GetConversation(in.ConversationID)
	if err != nil {
		return nil, err
	}

	log := observability.LoggerFromContext(ctx).With(
		"conversation_id", conv.ID,
	)
	log.Info("sending message")

	// Window over the history as it was before this message; the new text
	// rides in the prompt itself.
	history, err := s.turnStore.GetTurnsByConversation(conv.ID, 0)
	if err != nil {
		log.Error("failed to load history", "error", err)
		return nil, err
	}
	window := Window(history, WindowSize)

	now := s.now()
	userTurn := &domain.Turn{
		ID:             domain.TurnID(uuid.NewString()),
		ConversationID: conv.ID,
		Author:         domain.RoleUser,
		Text:           in.Text,
		CreatedAt:      now,
	}
	if err := s.turnStore.AppendTurn(userTurn); err != nil {
		log.Error("failed to append user turn", "error", err)
		return nil, err
	}

	// The consultant always has search access.
	reply, err := s.gateway.GenerateText(ctx, prompt.Chat(window, in.Text), domain.TextOptions{
		UseGrounding: true,
	})

	agentTurn := &domain.Turn{
		ID:             domain.TurnID(uuid.NewString()),
		ConversationID: conv.ID,
		Author:         domain.RoleAgent,
		CreatedAt:      s.now(),
	}
	var citations []domain.Citation
	if err != nil {
		log.Error("gateway call failed", "error", err)
		agentTurn.Text = errorTurnText
		agentTurn.IsError = true
	} else {
		agentTurn.Text = normalize.Text(reply)
		citations = reply.Citations
	}

	if err := s.turnStore.AppendTurn(agentTurn); err != nil {
		log.Error("failed to append agent turn", "error", err)
		return nil, err
	}

	conv.UpdatedAt = s.now()
	if err := s.convStore.UpdateConversation(conv); err != nil {
		log.Error("failed to update conversation", "error", err)
		return nil, err
	}

	log.Info("send message completed", "is_error", agentTurn.IsError)

	return &SendMessageOutput{
		UserTurn:  userTurn,
		AgentTurn: agentTurn,
		Citations: citations,
	}, nil
}

// Timeline returns the conversation and its turns, oldest first.
func (s *Service) Timeline(
	ctx context.Context,
	id domain.ConversationID,
	limit int,
) (*domain.Conversation, []*domain.Turn, error) {

	log := observability.LoggerFromContext(ctx).With(
		"conversation_id", id,
	)

	conv, err := s.convStore.GetConversation(id)
	if err != nil {
		log.Error("failed to get conversation", "error", err)
		return nil, nil, err
	}

	turns, err := s.turnStore.GetTurnsByConversation(id, limit)
	if err != nil {
		log.Error("failed to get turns", "error", err)
		return nil, nil, err
	}

	log.Info("fetched conversation timeline", "turn_count", len(turns))

	return conv, turns, nil
}
