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
	ErrEmptyCart     = errors.New("cart is empty")
	ErrOrderNotOwned = errors.New("order does not belong to this user")
)

// OrderService turns carts into orders and lists order history
type OrderService interface {
	Checkout(ctx context.Context, userID uuid.UUID) (*domain.Order, error)
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*domain.Order, error)
	ListOrders(ctx context.Context, userID uuid.UUID) ([]domain.Order, error)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	cartService CartService
	logger      *zap.Logger
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(orderRepo repository.OrderRepository, cartService CartService, logger *zap.Logger) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		cartService: cartService,
		logger:      logger,
	}
}

// Checkout creates an order from the user's current cart and clears the
// cart. Order items copy the cart line snapshots, so the order records
// the prices the buyer actually saw.
func (s *orderService) Checkout(ctx context.Context, userID uuid.UUID) (*domain.Order, error) {
	c := s.cartService.Get(ctx, userID)
	if len(c.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	order := &domain.Order{
		ID:         uuid.New(),
		UserID:     userID,
		Status:     domain.OrderStatusPending,
		TotalCents: c.Total(),
		CreatedAt:  time.Now(),
	}

	for _, line := range c.Lines {
		artworkID, err := uuid.Parse(line.ArtworkID)
		if err != nil {
			return nil, fmt.Errorf("invalid artwork id in cart: %w", err)
		}

		order.Items = append(order.Items, domain.OrderItem{
			ID:         uuid.New(),
			OrderID:    order.ID,
			ArtworkID:  artworkID,
			Title:      line.Title,
			ArtistName: line.ArtistName,
			ImageURL:   line.ImageURL,
			PriceCents: line.PriceCents,
			Quantity:   line.Quantity,
		})
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// The order is committed; a failed cart clear only risks a stale cart
	if err := s.cartService.Clear(ctx, userID); err != nil {
		s.logger.Warn("Failed to clear cart after checkout",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("order_id", order.ID.String()),
		)
	}

	return order, nil
}

// GetOrder retrieves one of the user's orders
func (s *orderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*domain.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if err == repository.ErrOrderNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order.UserID != userID {
		return nil, ErrOrderNotOwned
	}

	return order, nil
}

// ListOrders retrieves the user's order history, newest first
func (s *orderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
