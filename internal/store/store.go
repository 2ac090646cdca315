package store

import (
	"context"
	"errors"

	"petadopt-backend/internal/models"
)

// ErrNotFound is returned for ids or emails that do not resolve.
// Malformed ids are normalized to ErrNotFound at the store boundary.
var ErrNotFound = errors.New("not found")

type UserStore interface {
	Create(ctx context.Context, u models.User) error
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
}

type PetStore interface {
	Create(ctx context.Context, p models.Pet) error
	// GetByID returns the pet with its owner's public fields populated.
	GetByID(ctx context.Context, id string) (models.Pet, error)
	// List returns all pets, owners populated, oldest first.
	List(ctx context.Context) ([]models.Pet, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Pet, error)
	Update(ctx context.Context, p models.Pet) error
	Delete(ctx context.Context, id string) error
}
