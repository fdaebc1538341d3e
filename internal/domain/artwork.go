package domain

import (
	"time"

	"github.com/google/uuid"
)

// Artwork statuses. Only published artworks are visible in the public catalog.
const (
	ArtworkStatusPublished = "published"
	ArtworkStatusDraft     = "draft"
)

// CategoryAll is the sentinel category id meaning "no category filter".
const CategoryAll = "all"

// Artwork represents one sellable piece in the catalog.
// ArtistName is denormalized from the artist record so catalog rows are
// self-contained for search and display.
type Artwork struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	ArtistID    uuid.UUID `json:"artist_id" db:"artist_id"`
	ArtistName  string    `json:"artist_name" db:"artist_name"`
	CategoryID  string    `json:"category_id" db:"category_id"`
	Tags        []string  `json:"tags" db:"tags"`
	PriceCents  int64     `json:"price_cents" db:"price_cents"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	YearCreated int       `json:"year_created" db:"year_created"`
	Featured    bool      `json:"featured" db:"featured"`
	Views       int64     `json:"views" db:"views"`
	Likes       int64     `json:"likes" db:"likes"`
	Status      string    `json:"status" db:"status"`
	OwnerID     uuid.UUID `json:"owner_id" db:"owner_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// RecencyKey returns the instant used for newest/oldest ordering.
// Falls back to January 1st of the creation year when the row predates
// timestamp tracking.
func (a Artwork) RecencyKey() time.Time {
	if !a.CreatedAt.IsZero() {
		return a.CreatedAt
	}
	return time.Date(a.YearCreated, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// Category represents a catalog grouping, identified by a short slug
// such as "paintings" or "pottery".
type Category struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Artist represents a seller profile.
type Artist struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Bio          string    `json:"bio" db:"bio"`
	Location     string    `json:"location" db:"location"`
	ProfileImage string    `json:"profile_image" db:"profile_image"`
	Specialties  []string  `json:"specialties" db:"specialties"`
	Featured     bool      `json:"featured" db:"featured"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
