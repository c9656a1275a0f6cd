package memory

import (
	"math/rand"
	"sync"
)

// Store hands out per-session Memory instances. Each session's state is its
// own critical section; the store lock only guards the map itself.
type Store struct {
	mu             sync.Mutex
	sessions       map[string]*Memory
	seed           func() *rand.Rand
	tipProbability float64
}

func NewStore() *Store {
	return &Store{
		sessions:       make(map[string]*Memory),
		seed:           func() *rand.Rand { return nil },
		tipProbability: defaultTipProbability,
	}
}

// NewSeededStore builds every session memory from the given source factory,
// used by tests for deterministic tip draws.
func NewSeededStore(seed func() *rand.Rand) *Store {
	return &Store{
		sessions:       make(map[string]*Memory),
		seed:           seed,
		tipProbability: defaultTipProbability,
	}
}

// SetTipProbability sets the tip gate applied to each new session memory.
// Sessions created before the call keep their current gate.
func (s *Store) SetTipProbability(p float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tipProbability = p
}

// Session returns the memory for sessionID, creating it on first use.
func (s *Store) Session(sessionID string) *Memory {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.sessions[sessionID]; ok {
		return m
	}
	m := NewMemory(s.seed())
	m.SetTipProbability(s.tipProbability)
	s.sessions[sessionID] = m
	return m
}

// Drop tears down a session's state.
func (s *Store) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
