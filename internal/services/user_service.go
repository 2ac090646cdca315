package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"petadopt-backend/internal/auth"
	"petadopt-backend/internal/models"
	"petadopt-backend/internal/store"
)

var (
	ErrEmailTaken         = errors.New("email already in use")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type UserService struct {
	users  store.UserStore
	tokens *auth.JWTManager
}

func NewUserService(users store.UserStore, tokens *auth.JWTManager) *UserService {
	return &UserService{users: users, tokens: tokens}
}

// Register persists a new account and returns an issued token.
// Fails with ErrEmailTaken when the email is already registered.
func (s *UserService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:           uuid.NewString(),
		Username:     req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, _, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user.Public()}, nil
}

// Login verifies credentials and returns an issued token.
// Unknown email is ErrUserNotFound, a bad password ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, _, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user.Public()}, nil
}

// Get returns the public projection of a user.
func (s *UserService) Get(ctx context.Context, id string) (models.PublicUser, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.PublicUser{}, ErrUserNotFound
		}
		return models.PublicUser{}, err
	}
	return user.Public(), nil
}
