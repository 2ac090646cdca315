// Package postgres implements the stores over a pgx connection pool.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"petadopt-backend/internal/models"
	"petadopt-backend/internal/store"
)

type userStore struct {
	pool *pgxpool.Pool
}

func NewUserStore(pool *pgxpool.Pool) store.UserStore {
	return &userStore{pool: pool}
}

func (s *userStore) Create(ctx context.Context, u models.User) error {
	query := `INSERT INTO users (id, username, email, password_hash, created_at)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := s.pool.Exec(ctx, query, u.ID, u.Username, u.Email, u.PasswordHash, u.CreatedAt)
	return err
}

func (s *userStore) GetByID(ctx context.Context, id string) (models.User, error) {
	if !validID(id) {
		return models.User{}, store.ErrNotFound
	}

	var u models.User
	query := `SELECT id, username, email, password_hash, created_at FROM users WHERE id = $1`
	err := s.pool.QueryRow(ctx, query, id).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, store.ErrNotFound
		}
		return models.User{}, err
	}
	return u, nil
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	query := `SELECT id, username, email, password_hash, created_at FROM users WHERE email = $1`
	err := s.pool.QueryRow(ctx, query, email).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, store.ErrNotFound
		}
		return models.User{}, err
	}
	return u, nil
}
