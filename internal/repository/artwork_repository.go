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
	ErrArtworkNotFound = errors.New("artwork not found")
)

const artworkColumns = `id, title, description, artist_id, artist_name, category_id, tags,
	price_cents, image_url, year_created, featured, views, likes, status, owner_id,
	created_at, updated_at`

// ArtworkRepository defines the interface for artwork data access
type ArtworkRepository interface {
	Create(ctx context.Context, artwork *domain.Artwork) error
	Update(ctx context.Context, artwork *domain.Artwork) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Artwork, error)
	ListPublished(ctx context.Context) ([]domain.Artwork, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Artwork, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
	IncrementLikes(ctx context.Context, id uuid.UUID) error
}

type artworkRepository struct {
	db *sql.DB
}

// NewArtworkRepository creates a new instance of ArtworkRepository
func NewArtworkRepository(db *sql.DB) ArtworkRepository {
	return &artworkRepository{db: db}
}

// Create inserts a new artwork using parameterized queries
func (r *artworkRepository) Create(ctx context.Context, artwork *domain.Artwork) error {
	query := `
		INSERT INTO artworks (` + artworkColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	tags, err := encodeTags(artwork.Tags)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(
		ctx,
		query,
		artwork.ID,
		artwork.Title,
		artwork.Description,
		artwork.ArtistID,
		artwork.ArtistName,
		artwork.CategoryID,
		tags,
		artwork.PriceCents,
		artwork.ImageURL,
		artwork.YearCreated,
		artwork.Featured,
		artwork.Views,
		artwork.Likes,
		artwork.Status,
		artwork.OwnerID,
		artwork.CreatedAt,
		artwork.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create artwork: %w", err)
	}

	return nil
}

// Update updates an existing artwork using parameterized queries
func (r *artworkRepository) Update(ctx context.Context, artwork *domain.Artwork) error {
	query := `
		UPDATE artworks
		SET title = $2, description = $3, artist_id = $4, artist_name = $5,
		    category_id = $6, tags = $7, price_cents = $8, image_url = $9,
		    year_created = $10, featured = $11, status = $12, updated_at = $13
		WHERE id = $1
	`

	tags, err := encodeTags(artwork.Tags)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(
		ctx,
		query,
		artwork.ID,
		artwork.Title,
		artwork.Description,
		artwork.ArtistID,
		artwork.ArtistName,
		artwork.CategoryID,
		tags,
		artwork.PriceCents,
		artwork.ImageURL,
		artwork.YearCreated,
		artwork.Featured,
		artwork.Status,
		artwork.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update artwork: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrArtworkNotFound
	}

	return nil
}

// Delete removes an artwork
func (r *artworkRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM artworks WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete artwork: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrArtworkNotFound
	}

	return nil
}

// FindByID retrieves an artwork by ID
func (r *artworkRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Artwork, error) {
	query := `SELECT ` + artworkColumns + ` FROM artworks WHERE id = $1`

	artwork, err := scanArtwork(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrArtworkNotFound
		}
		return nil, fmt.Errorf("failed to find artwork by ID: %w", err)
	}

	return artwork, nil
}

// ListPublished retrieves all published artworks, newest first. This is
// the snapshot feed for the in-memory catalog; filtering and sorting for
// display happen in the catalog package, not in SQL.
func (r *artworkRepository) ListPublished(ctx context.Context) ([]domain.Artwork, error) {
	query := `
		SELECT ` + artworkColumns + `
		FROM artworks
		WHERE status = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, domain.ArtworkStatusPublished)
	if err != nil {
		return nil, fmt.Errorf("failed to list published artworks: %w", err)
	}
	defer rows.Close()

	return collectArtworks(rows)
}

// ListByOwner retrieves all artworks uploaded by ownerID, including drafts
func (r *artworkRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Artwork, error) {
	query := `
		SELECT ` + artworkColumns + `
		FROM artworks
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list artworks by owner: %w", err)
	}
	defer rows.Close()

	return collectArtworks(rows)
}

// IncrementViews bumps the view counter for an artwork
func (r *artworkRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.incrementCounter(ctx, id, "views")
}

// IncrementLikes bumps the like counter for an artwork
func (r *artworkRepository) IncrementLikes(ctx context.Context, id uuid.UUID) error {
	return r.incrementCounter(ctx, id, "likes")
}

func (r *artworkRepository) incrementCounter(ctx context.Context, id uuid.UUID, column string) error {
	// column is one of two fixed identifiers, never user input
	query := fmt.Sprintf(`UPDATE artworks SET %s = %s + 1 WHERE id = $1`, column, column)

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to increment %s: %w", column, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrArtworkNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanArtwork(row rowScanner) (*domain.Artwork, error) {
	artwork := &domain.Artwork{}
	var tags []byte

	err := row.Scan(
		&artwork.ID,
		&artwork.Title,
		&artwork.Description,
		&artwork.ArtistID,
		&artwork.ArtistName,
		&artwork.CategoryID,
		&tags,
		&artwork.PriceCents,
		&artwork.ImageURL,
		&artwork.YearCreated,
		&artwork.Featured,
		&artwork.Views,
		&artwork.Likes,
		&artwork.Status,
		&artwork.OwnerID,
		&artwork.CreatedAt,
		&artwork.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := decodeTags(tags, &artwork.Tags); err != nil {
		return nil, err
	}

	return artwork, nil
}

func collectArtworks(rows *sql.Rows) ([]domain.Artwork, error) {
	artworks := []domain.Artwork{}
	for rows.Next() {
		artwork, err := scanArtwork(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan artwork: %w", err)
		}
		artworks = append(artworks, *artwork)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating artworks: %w", err)
	}

	return artworks, nil
}

// Tags live in a JSONB column so a list scans cleanly through database/sql.
func encodeTags(tags []string) ([]byte, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tags: %w", err)
	}
	return data, nil
}

func decodeTags(data []byte, tags *[]string) error {
	if len(data) == 0 {
		*tags = []string{}
		return nil
	}
	if err := json.Unmarshal(data, tags); err != nil {
		return fmt.Errorf("failed to decode tags: %w", err)
	}
	return nil
}
