package memory

import (
	"sync"

	"github.com/rankpilot/rankpilot/internal/domain"
)

// ConversationStore is a simple in-memory implementation of
// domain.ConversationStore. Not persistent; conversations live for the
// lifetime of the process.
type ConversationStore struct {
	mu            sync.RWMutex
	conversations map[domain.ConversationID]*domain.Conversation
}

func NewConversationStore() *ConversationStore {
	return &ConversationStore{
		conversations: make(map[domain.ConversationID]*domain.Conversation),
	}
}

func (s *ConversationStore) CreateConversation(conv *domain.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conversations[conv.ID] = conv
	return nil
}

func (s *ConversationStore) UpdateConversation(conv *domain.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.conversations[conv.ID]; !exists {
		return domain.ErrConversationNotFound
	}

	s.conversations[conv.ID] = conv
	return nil
}

func (s *ConversationStore) GetConversation(id domain.ConversationID) (*domain.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.conversations[id]
	if !ok {
		return nil, domain.ErrConversationNotFound
	}

	return conv, nil
}
