package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"artmarket/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrArtistNotFound = errors.New("artist not found")
)

// ArtistRepository defines the interface for artist profile data access
type ArtistRepository interface {
	Create(ctx context.Context, artist *domain.Artist) error
	List(ctx context.Context) ([]domain.Artist, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Artist, error)
}

type artistRepository struct {
	db *sql.DB
}

// NewArtistRepository creates a new instance of ArtistRepository
func NewArtistRepository(db *sql.DB) ArtistRepository {
	return &artistRepository{db: db}
}

// Create inserts a new artist profile using parameterized queries
func (r *artistRepository) Create(ctx context.Context, artist *domain.Artist) error {
	query := `
		INSERT INTO artists (id, name, bio, location, profile_image, specialties, featured, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	specialties, err := json.Marshal(artist.Specialties)
	if err != nil {
		return fmt.Errorf("failed to encode specialties: %w", err)
	}

	_, err = r.db.ExecContext(
		ctx,
		query,
		artist.ID,
		artist.Name,
		artist.Bio,
		artist.Location,
		artist.ProfileImage,
		specialties,
		artist.Featured,
		artist.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create artist: %w", err)
	}

	return nil
}

// List retrieves all artists ordered by name
func (r *artistRepository) List(ctx context.Context) ([]domain.Artist, error) {
	query := `
		SELECT id, name, bio, location, profile_image, specialties, featured, created_at
		FROM artists
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list artists: %w", err)
	}
	defer rows.Close()

	artists := []domain.Artist{}
	for rows.Next() {
		artist := domain.Artist{}
		var specialties []byte
		err := rows.Scan(
			&artist.ID,
			&artist.Name,
			&artist.Bio,
			&artist.Location,
			&artist.ProfileImage,
			&specialties,
			&artist.Featured,
			&artist.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan artist: %w", err)
		}

		if len(specialties) > 0 {
			if err := json.Unmarshal(specialties, &artist.Specialties); err != nil {
				return nil, fmt.Errorf("failed to decode specialties: %w", err)
			}
		}

		artists = append(artists, artist)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating artists: %w", err)
	}

	return artists, nil
}

// FindByID retrieves an artist by ID
func (r *artistRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Artist, error) {
	query := `
		SELECT id, name, bio, location, profile_image, specialties, featured, created_at
		FROM artists
		WHERE id = $1
	`

	artist := &domain.Artist{}
	var specialties []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&artist.ID,
		&artist.Name,
		&artist.Bio,
		&artist.Location,
		&artist.ProfileImage,
		&specialties,
		&artist.Featured,
		&artist.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrArtistNotFound
		}
		return nil, fmt.Errorf("failed to find artist by ID: %w", err)
	}

	if len(specialties) > 0 {
		if err := json.Unmarshal(specialties, &artist.Specialties); err != nil {
			return nil, fmt.Errorf("failed to decode specialties: %w", err)
		}
	}

	return artist, nil
}
