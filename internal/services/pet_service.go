package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"petadopt-backend/internal/models"
	"petadopt-backend/internal/storage"
	"petadopt-backend/internal/store"
)

var (
	ErrPetNotFound = errors.New("pet not found")
	ErrNotOwner    = errors.New("not authorized")
)

type PetService struct {
	pets    store.PetStore
	users   store.UserStore
	uploads *storage.Uploads
}

func NewPetService(pets store.PetStore, users store.UserStore, uploads *storage.Uploads) *PetService {
	return &PetService{pets: pets, users: users, uploads: uploads}
}

type PetInput struct {
	Name        string
	Type        string
	Breed       string
	Age         *int
	Location    string
	Description string
	// ImagePath is the served path of an already-stored upload, empty
	// when no file came with the request.
	ImagePath string
}

// List returns every listing with owner fields populated.
func (s *PetService) List(ctx context.Context) ([]models.Pet, error) {
	return s.pets.List(ctx)
}

// ListMine returns the caller's listings. A token id that no longer
// resolves to a user is a data-integrity failure, reported as
// ErrUserNotFound rather than an empty result.
func (s *PetService) ListMine(ctx context.Context, userID string) ([]models.Pet, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.pets.ListByOwner(ctx, userID)
}

func (s *PetService) Get(ctx context.Context, id string) (models.Pet, error) {
	pet, err := s.pets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Pet{}, ErrPetNotFound
		}
		return models.Pet{}, err
	}
	return pet, nil
}

// Create stores a new listing. The owner is always the authenticated
// caller; nothing in the input can override it.
func (s *PetService) Create(ctx context.Context, ownerID string, in PetInput) (models.Pet, error) {
	now := time.Now()
	pet := models.Pet{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Type:        in.Type,
		Breed:       in.Breed,
		Location:    in.Location,
		Description: in.Description,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Age != nil {
		pet.Age = *in.Age
	}
	if in.ImagePath != "" {
		pet.Image = &in.ImagePath
	}

	if err := s.pets.Create(ctx, pet); err != nil {
		return models.Pet{}, err
	}
	return pet, nil
}

// Update applies a partial update: a stored field is overwritten only
// when the input supplies a non-empty value for it. Fails with
// ErrNotOwner when callerID is not the listing's owner.
func (s *PetService) Update(ctx context.Context, id, callerID string, in PetInput) (models.Pet, error) {
	pet, err := s.Get(ctx, id)
	if err != nil {
		return models.Pet{}, err
	}
	if pet.OwnerID != callerID {
		return models.Pet{}, ErrNotOwner
	}

	if in.Name != "" {
		pet.Name = in.Name
	}
	if in.Type != "" {
		pet.Type = in.Type
	}
	if in.Breed != "" {
		pet.Breed = in.Breed
	}
	if in.Age != nil {
		pet.Age = *in.Age
	}
	if in.Location != "" {
		pet.Location = in.Location
	}
	if in.Description != "" {
		pet.Description = in.Description
	}
	if in.ImagePath != "" {
		if pet.Image != nil {
			s.removeFile(*pet.Image)
		}
		path := in.ImagePath
		pet.Image = &path
	}
	pet.UpdatedAt = time.Now()

	if err := s.pets.Update(ctx, pet); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Pet{}, ErrPetNotFound
		}
		return models.Pet{}, err
	}
	return pet, nil
}

// Delete removes a listing after the same ownership check as Update.
// The stored image file is removed best-effort.
func (s *PetService) Delete(ctx context.Context, id, callerID string) error {
	pet, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if pet.OwnerID != callerID {
		return ErrNotOwner
	}

	if err := s.pets.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrPetNotFound
		}
		return err
	}
	if pet.Image != nil {
		s.removeFile(*pet.Image)
	}
	return nil
}

func (s *PetService) removeFile(urlPath string) {
	if s.uploads == nil {
		return
	}
	if err := s.uploads.Remove(urlPath); err != nil {
		log.Printf("failed to remove upload %s: %v", urlPath, err)
	}
}
