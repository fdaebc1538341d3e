package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"artmarket/internal/domain"
	"artmarket/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrUnknownCategory  = errors.New("unknown category")
	ErrArtworkNotOwned  = errors.New("artwork does not belong to this user")
	ErrNegativePrice    = errors.New("price must not be negative")
	ErrMissingArtworkID = errors.New("artwork id is required")
)

// Refresher lets the artwork service push a fresh catalog snapshot after
// a write, instead of waiting for the background refresh tick.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// NewArtworkInput carries the fields a seller submits when uploading
type NewArtworkInput struct {
	Title       string
	Description string
	ArtistID    uuid.UUID
	ArtistName  string
	CategoryID  string
	Tags        []string
	PriceCents  int64
	ImageURL    string
	YearCreated int
	Status      string
}

// ArtworkService covers the seller-facing artwork management flow
type ArtworkService interface {
	Create(ctx context.Context, ownerID uuid.UUID, input NewArtworkInput) (*domain.Artwork, error)
	Update(ctx context.Context, actor *domain.User, id uuid.UUID, input NewArtworkInput) (*domain.Artwork, error)
	Delete(ctx context.Context, actor *domain.User, id uuid.UUID) error
	ListMine(ctx context.Context, ownerID uuid.UUID) ([]domain.Artwork, error)
}

type artworkService struct {
	artworkRepo  repository.ArtworkRepository
	categoryRepo repository.CategoryRepository
	refresher    Refresher
	logger       *zap.Logger
}

// NewArtworkService creates a new instance of ArtworkService
func NewArtworkService(
	artworkRepo repository.ArtworkRepository,
	categoryRepo repository.CategoryRepository,
	refresher Refresher,
	logger *zap.Logger,
) ArtworkService {
	return &artworkService{
		artworkRepo:  artworkRepo,
		categoryRepo: categoryRepo,
		refresher:    refresher,
		logger:       logger,
	}
}

// Create validates the input and stores a new artwork owned by ownerID
func (s *artworkService) Create(ctx context.Context, ownerID uuid.UUID, input NewArtworkInput) (*domain.Artwork, error) {
	if err := s.validate(ctx, &input); err != nil {
		return nil, err
	}

	artwork := &domain.Artwork{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		ArtistID:    input.ArtistID,
		ArtistName:  input.ArtistName,
		CategoryID:  input.CategoryID,
		Tags:        input.Tags,
		PriceCents:  input.PriceCents,
		ImageURL:    input.ImageURL,
		YearCreated: input.YearCreated,
		Status:      input.Status,
		OwnerID:     ownerID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.artworkRepo.Create(ctx, artwork); err != nil {
		return nil, fmt.Errorf("failed to create artwork: %w", err)
	}

	s.refreshSnapshot(ctx)
	return artwork, nil
}

// Update modifies an artwork; only the owner or an admin may do so
func (s *artworkService) Update(ctx context.Context, actor *domain.User, id uuid.UUID, input NewArtworkInput) (*domain.Artwork, error) {
	artwork, err := s.artworkRepo.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrArtworkNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load artwork: %w", err)
	}

	if !canManage(actor, artwork) {
		return nil, ErrArtworkNotOwned
	}

	if err := s.validate(ctx, &input); err != nil {
		return nil, err
	}

	artwork.Title = input.Title
	artwork.Description = input.Description
	artwork.ArtistID = input.ArtistID
	artwork.ArtistName = input.ArtistName
	artwork.CategoryID = input.CategoryID
	artwork.Tags = input.Tags
	artwork.PriceCents = input.PriceCents
	artwork.ImageURL = input.ImageURL
	artwork.YearCreated = input.YearCreated
	artwork.Status = input.Status
	artwork.UpdatedAt = time.Now()

	if err := s.artworkRepo.Update(ctx, artwork); err != nil {
		return nil, fmt.Errorf("failed to update artwork: %w", err)
	}

	s.refreshSnapshot(ctx)
	return artwork, nil
}

// Delete removes an artwork; only the owner or an admin may do so
func (s *artworkService) Delete(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	artwork, err := s.artworkRepo.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrArtworkNotFound {
			return err
		}
		return fmt.Errorf("failed to load artwork: %w", err)
	}

	if !canManage(actor, artwork) {
		return ErrArtworkNotOwned
	}

	if err := s.artworkRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete artwork: %w", err)
	}

	s.refreshSnapshot(ctx)
	return nil
}

// ListMine returns all artworks uploaded by ownerID, drafts included
func (s *artworkService) ListMine(ctx context.Context, ownerID uuid.UUID) ([]domain.Artwork, error) {
	artworks, err := s.artworkRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list artworks: %w", err)
	}
	return artworks, nil
}

func (s *artworkService) validate(ctx context.Context, input *NewArtworkInput) error {
	if input.PriceCents < 0 {
		return ErrNegativePrice
	}

	if input.Status == "" {
		input.Status = domain.ArtworkStatusPublished
	}

	// The permissive unknown-category policy applies to browsing only;
	// writes must reference a real category.
	if _, err := s.categoryRepo.FindByID(ctx, input.CategoryID); err != nil {
		if err == repository.ErrCategoryNotFound {
			return ErrUnknownCategory
		}
		return fmt.Errorf("failed to check category: %w", err)
	}

	return nil
}

func (s *artworkService) refreshSnapshot(ctx context.Context) {
	if err := s.refresher.Refresh(ctx); err != nil {
		s.logger.Warn("Catalog snapshot refresh after write failed", zap.Error(err))
	}
}

func canManage(actor *domain.User, artwork *domain.Artwork) bool {
	if actor == nil {
		return false
	}
	return actor.Role == domain.RoleAdmin || artwork.OwnerID == actor.ID
}
