package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"petadopt-backend/internal/models"
	"petadopt-backend/internal/store"
)

type petStore struct {
	mu    sync.RWMutex
	byID  map[string]models.Pet
	users store.UserStore
}

// NewPetStore mirrors the postgres pet store; users is consulted to
// populate owner fields on joined reads.
func NewPetStore(users store.UserStore) store.PetStore {
	return &petStore{
		byID:  make(map[string]models.Pet),
		users: users,
	}
}

func (s *petStore) Create(ctx context.Context, p models.Pet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := s.byID[p.ID]; exists {
		return errors.New("pet already exists")
	}
	p.Owner = nil
	s.byID[p.ID] = p
	return nil
}

func (s *petStore) GetByID(ctx context.Context, id string) (models.Pet, error) {
	s.mu.RLock()
	p, ok := s.byID[id]
	s.mu.RUnlock()
	if !ok {
		return models.Pet{}, store.ErrNotFound
	}
	return s.withOwner(ctx, p), nil
}

func (s *petStore) List(ctx context.Context) ([]models.Pet, error) {
	s.mu.RLock()
	out := make([]models.Pet, 0, len(s.byID))
	for _, p := range s.byID {
		out = append(out, p)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	for i := range out {
		out[i] = s.withOwner(ctx, out[i])
	}
	return out, nil
}

func (s *petStore) ListByOwner(ctx context.Context, ownerID string) ([]models.Pet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Pet, 0)
	for _, p := range s.byID {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *petStore) Update(ctx context.Context, p models.Pet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[p.ID]; !exists {
		return store.ErrNotFound
	}
	p.Owner = nil
	s.byID[p.ID] = p
	return nil
}

func (s *petStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[id]; !exists {
		return store.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

func (s *petStore) withOwner(ctx context.Context, p models.Pet) models.Pet {
	if s.users == nil {
		return p
	}
	u, err := s.users.GetByID(ctx, p.OwnerID)
	if err != nil {
		return p
	}
	pub := u.Public()
	p.Owner = &pub
	return p
}
