package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"petadopt-backend/internal/models"
	"petadopt-backend/internal/store"
)

type petStore struct {
	pool *pgxpool.Pool
}

func NewPetStore(pool *pgxpool.Pool) store.PetStore {
	return &petStore{pool: pool}
}

const petWithOwnerQuery = `
	SELECT p.id, p.name, p.type, p.breed, p.age, p.location, p.description,
	       p.image, p.owner_id, p.created_at, p.updated_at,
	       u.id, u.username, u.email
	FROM pets p
	JOIN users u ON u.id = p.owner_id`

func (s *petStore) Create(ctx context.Context, p models.Pet) error {
	query := `INSERT INTO pets (id, name, type, breed, age, location, description,
	                            image, owner_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := s.pool.Exec(ctx, query,
		p.ID, p.Name, p.Type, p.Breed, p.Age, p.Location, p.Description,
		p.Image, p.OwnerID, p.CreatedAt, p.UpdatedAt)
	return err
}

func (s *petStore) GetByID(ctx context.Context, id string) (models.Pet, error) {
	if !validID(id) {
		return models.Pet{}, store.ErrNotFound
	}

	row := s.pool.QueryRow(ctx, petWithOwnerQuery+` WHERE p.id = $1`, id)
	p, err := scanPetWithOwner(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Pet{}, store.ErrNotFound
		}
		return models.Pet{}, err
	}
	return p, nil
}

func (s *petStore) List(ctx context.Context) ([]models.Pet, error) {
	rows, err := s.pool.Query(ctx, petWithOwnerQuery+` ORDER BY p.created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Pet, 0)
	for rows.Next() {
		p, err := scanPetWithOwner(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *petStore) ListByOwner(ctx context.Context, ownerID string) ([]models.Pet, error) {
	if !validID(ownerID) {
		return []models.Pet{}, nil
	}

	query := `SELECT id, name, type, breed, age, location, description,
	                 image, owner_id, created_at, updated_at
	          FROM pets WHERE owner_id = $1 ORDER BY created_at ASC`
	rows, err := s.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Pet, 0)
	for rows.Next() {
		var p models.Pet
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Type, &p.Breed, &p.Age, &p.Location, &p.Description,
			&p.Image, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *petStore) Update(ctx context.Context, p models.Pet) error {
	if !validID(p.ID) {
		return store.ErrNotFound
	}

	query := `UPDATE pets
	          SET name = $2, type = $3, breed = $4, age = $5, location = $6,
	              description = $7, image = $8, updated_at = $9
	          WHERE id = $1`
	tag, err := s.pool.Exec(ctx, query,
		p.ID, p.Name, p.Type, p.Breed, p.Age, p.Location, p.Description,
		p.Image, p.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *petStore) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return store.ErrNotFound
	}

	tag, err := s.pool.Exec(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func scanPetWithOwner(row pgx.Row) (models.Pet, error) {
	var p models.Pet
	var owner models.PublicUser
	err := row.Scan(
		&p.ID, &p.Name, &p.Type, &p.Breed, &p.Age, &p.Location, &p.Description,
		&p.Image, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt,
		&owner.ID, &owner.Name, &owner.Email,
	)
	if err != nil {
		return models.Pet{}, err
	}
	p.Owner = &owner
	return p, nil
}

// validID rejects ids that cannot be uuids so a malformed path parameter
// reads as not-found rather than a database error.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
