// Package memory provides in-memory stores mirroring the postgres
// semantics. Used by tests and for running without a database.
package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"petadopt-backend/internal/models"
	"petadopt-backend/internal/store"
)

type userStore struct {
	mu      sync.RWMutex
	byID    map[string]models.User
	byEmail map[string]string
}

func NewUserStore() store.UserStore {
	return &userStore{
		byID:    make(map[string]models.User),
		byEmail: make(map[string]string),
	}
}

func (s *userStore) Create(ctx context.Context, u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(u.ID) == "" {
		return errors.New("user id required")
	}
	if _, exists := s.byEmail[u.Email]; exists {
		return errors.New("email already exists")
	}
	s.byID[u.ID] = u
	s.byEmail[u.Email] = u.ID
	return nil
}

func (s *userStore) GetByID(ctx context.Context, id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return u, nil
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return s.byID[id], nil
}
