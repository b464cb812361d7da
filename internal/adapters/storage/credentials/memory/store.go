package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// Store es un credential store en memoria. No sobrevive reinicios: solo tests y modo dev.
type Store struct {
	mu    sync.RWMutex
	byKey map[string]string
}

func NewStore() *Store {
	return &Store{byKey: make(map[string]string)}
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.byKey[key]
	return v, ok, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("credential key required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byKey[key] = value
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.byKey, key)
	return nil
}

// Len se usa en tests para verificar que el store quedó vacío.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byKey)
}
