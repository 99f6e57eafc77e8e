package memory

import (
	"sync"

	"github.com/rankpilot/rankpilot/internal/domain"
)

// TurnStore keeps turns per conversation in insertion order.
type TurnStore struct {
	mu    sync.RWMutex
	turns map[domain.ConversationID][]*domain.Turn
}

func NewTurnStore() *TurnStore {
	return &TurnStore{
		turns: make(map[domain.ConversationID][]*domain.Turn),
	}
}

func (s *TurnStore) AppendTurn(turn *domain.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.turns[turn.ConversationID] = append(s.turns[turn.ConversationID], turn)
	return nil
}

// GetTurnsByConversation returns the last `limit` turns in insertion order.
// limit <= 0 returns all.
func (s *TurnStore) GetTurnsByConversation(id domain.ConversationID, limit int) ([]*domain.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := s.turns[id]
	if limit > 0 && len(turns) > limit {
		return turns[len(turns)-limit:], nil
	}
	return turns, nil
}
