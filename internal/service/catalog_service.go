package service

import (
	"context"
	"errors"
	"fmt"

	"artmarket/internal/catalog"
	"artmarket/internal/domain"
	"artmarket/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrCatalogUnavailable means no snapshot has been loaded yet, so
	// there is nothing to browse. Once a snapshot exists, browsing never
	// fails: a failed refresh keeps serving the previous snapshot.
	ErrCatalogUnavailable = errors.New("catalog is not available yet")
)

// CatalogService exposes the browsing surface: snapshot queries plus the
// per-artwork detail and counter operations.
type CatalogService interface {
	Browse(criteria catalog.Criteria) ([]domain.Artwork, error)
	Categories() ([]domain.Category, error)
	Featured(limit int) ([]domain.Artwork, error)
	GetArtwork(ctx context.Context, id uuid.UUID) (*domain.Artwork, error)
	Like(ctx context.Context, id uuid.UUID) error
}

type catalogService struct {
	provider    *catalog.Provider
	artworkRepo repository.ArtworkRepository
	logger      *zap.Logger
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(provider *catalog.Provider, artworkRepo repository.ArtworkRepository, logger *zap.Logger) CatalogService {
	return &catalogService{
		provider:    provider,
		artworkRepo: artworkRepo,
		logger:      logger,
	}
}

// Browse runs the query engine over the current snapshot. Malformed
// criteria degrade inside the engine (empty result or fallback sort)
// rather than erroring; the only failure mode here is having no snapshot
// at all.
func (s *catalogService) Browse(criteria catalog.Criteria) ([]domain.Artwork, error) {
	snapshot, ok := s.provider.Snapshot()
	if !ok {
		return nil, ErrCatalogUnavailable
	}
	return catalog.Query(snapshot.Artworks, criteria), nil
}

// Categories returns the category set from the current snapshot
func (s *catalogService) Categories() ([]domain.Category, error) {
	snapshot, ok := s.provider.Snapshot()
	if !ok {
		return nil, ErrCatalogUnavailable
	}
	return snapshot.Categories, nil
}

// Featured returns up to limit featured artworks from the snapshot
func (s *catalogService) Featured(limit int) ([]domain.Artwork, error) {
	snapshot, ok := s.provider.Snapshot()
	if !ok {
		return nil, ErrCatalogUnavailable
	}

	featured := []domain.Artwork{}
	for _, artwork := range snapshot.Artworks {
		if !artwork.Featured {
			continue
		}
		featured = append(featured, artwork)
		if limit > 0 && len(featured) == limit {
			break
		}
	}
	return featured, nil
}

// GetArtwork fetches one artwork by id and bumps its view counter. The
// counter write is best-effort: a failure is logged, never surfaced, and
// the snapshot picks the new count up on its next refresh.
func (s *catalogService) GetArtwork(ctx context.Context, id uuid.UUID) (*domain.Artwork, error) {
	artwork, err := s.artworkRepo.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrArtworkNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get artwork: %w", err)
	}

	if err := s.artworkRepo.IncrementViews(ctx, id); err != nil {
		s.logger.Warn("Failed to increment artwork views",
			zap.Error(err),
			zap.String("artwork_id", id.String()),
		)
	} else {
		artwork.Views++
	}

	return artwork, nil
}

// Like bumps the like counter for an artwork
func (s *catalogService) Like(ctx context.Context, id uuid.UUID) error {
	if err := s.artworkRepo.IncrementLikes(ctx, id); err != nil {
		if err == repository.ErrArtworkNotFound {
			return err
		}
		return fmt.Errorf("failed to like artwork: %w", err)
	}
	return nil
}
