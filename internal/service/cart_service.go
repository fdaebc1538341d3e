package service

import (
	"context"
	"errors"
	"fmt"

	"artmarket/internal/cart"
	"artmarket/internal/domain"
	"artmarket/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrArtworkNotPurchasable = errors.New("artwork is not available for purchase")
)

// CartService manages per-user carts. Cart values themselves are
// immutable; each mutation derives a new cart and persists it, so a
// failed save leaves the stored cart untouched.
type CartService interface {
	Get(ctx context.Context, userID uuid.UUID) cart.Cart
	AddItem(ctx context.Context, userID, artworkID uuid.UUID, quantity int) (cart.Cart, error)
	SetQuantity(ctx context.Context, userID, artworkID uuid.UUID, quantity int) (cart.Cart, error)
	RemoveItem(ctx context.Context, userID, artworkID uuid.UUID) (cart.Cart, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type cartService struct {
	store       cart.Store
	artworkRepo repository.ArtworkRepository
	logger      *zap.Logger
}

// NewCartService creates a new instance of CartService
func NewCartService(store cart.Store, artworkRepo repository.ArtworkRepository, logger *zap.Logger) CartService {
	return &cartService{
		store:       store,
		artworkRepo: artworkRepo,
		logger:      logger,
	}
}

// Get returns the user's cart. Store failures degrade to an empty cart
// inside the store, so this never errors.
func (s *cartService) Get(ctx context.Context, userID uuid.UUID) cart.Cart {
	return s.store.Get(ctx, userID.String())
}

// AddItem adds an artwork to the cart, capturing its display fields at
// add time. The stored snapshot is intentionally not refreshed on later
// catalog edits.
func (s *cartService) AddItem(ctx context.Context, userID, artworkID uuid.UUID, quantity int) (cart.Cart, error) {
	artwork, err := s.artworkRepo.FindByID(ctx, artworkID)
	if err != nil {
		if err == repository.ErrArtworkNotFound {
			return cart.Cart{}, err
		}
		return cart.Cart{}, fmt.Errorf("failed to load artwork: %w", err)
	}

	if artwork.Status != domain.ArtworkStatusPublished {
		return cart.Cart{}, ErrArtworkNotPurchasable
	}

	current := s.store.Get(ctx, userID.String())
	next := current.Add(cart.Item{
		ArtworkID:  artwork.ID.String(),
		Title:      artwork.Title,
		ArtistName: artwork.ArtistName,
		CategoryID: artwork.CategoryID,
		ImageURL:   artwork.ImageURL,
		PriceCents: artwork.PriceCents,
	}, quantity)

	if err := s.save(ctx, userID, next); err != nil {
		return cart.Cart{}, err
	}

	return next, nil
}

// SetQuantity replaces a line's quantity; zero or less removes the line
func (s *cartService) SetQuantity(ctx context.Context, userID, artworkID uuid.UUID, quantity int) (cart.Cart, error) {
	current := s.store.Get(ctx, userID.String())
	next := current.SetQuantity(artworkID.String(), quantity)

	if err := s.save(ctx, userID, next); err != nil {
		return cart.Cart{}, err
	}

	return next, nil
}

// RemoveItem removes a line; removing an absent line is a no-op
func (s *cartService) RemoveItem(ctx context.Context, userID, artworkID uuid.UUID) (cart.Cart, error) {
	current := s.store.Get(ctx, userID.String())
	next := current.Remove(artworkID.String())

	if err := s.save(ctx, userID, next); err != nil {
		return cart.Cart{}, err
	}

	return next, nil
}

// Clear empties the user's cart
func (s *cartService) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.store.Clear(ctx, userID.String()); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (s *cartService) save(ctx context.Context, userID uuid.UUID, c cart.Cart) error {
	if err := s.store.Save(ctx, userID.String(), c); err != nil {
		s.logger.Error("Failed to persist cart",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}
