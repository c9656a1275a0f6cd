package service

import (
	"context"
	"sync"

	"wallet-copilot/internal/domain"
)

// WalletStateStore is the in-process wallet/session context provider. The
// presentation layer reports the latest wallet snapshot per session; the
// orchestrator reads it when assembling a RequestContext.
type WalletStateStore struct {
	mu     sync.RWMutex
	states map[string]domain.RequestContext
}

func NewWalletStateStore() *WalletStateStore {
	return &WalletStateStore{states: make(map[string]domain.RequestContext)}
}

// Update replaces the snapshot for a session.
func (s *WalletStateStore) Update(sessionID string, state domain.RequestContext) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[sessionID] = state
}

// WalletState returns a copy of the stored snapshot; unknown sessions get a
// disconnected context rather than an error.
func (s *WalletStateStore) WalletState(ctx context.Context, sessionID string) (*domain.RequestContext, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[sessionID]
	if !ok {
		return &domain.RequestContext{}, nil
	}
	copied := state
	copied.TokenBalances = append([]domain.TokenBalance(nil), state.TokenBalances...)
	return &copied, nil
}

// Forget removes a session's snapshot.
func (s *WalletStateStore) Forget(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, sessionID)
}
