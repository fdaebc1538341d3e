package transport

import (
	"net/http"

	"artmarket/internal/cart"
	"artmarket/internal/middleware"
	"artmarket/internal/repository"
	"artmarket/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AddCartItemRequest represents the add-to-cart payload
type AddCartItemRequest struct {
	ArtworkID string `json:"artwork_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"omitempty,gte=1"`
}

// SetQuantityRequest represents the quantity-change payload. A quantity
// of zero removes the line.
type SetQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// CartResponse wraps a cart with its derived totals
type CartResponse struct {
	Lines      []cart.Line `json:"lines"`
	TotalCents int64       `json:"total_cents"`
	ItemCount  int         `json:"item_count"`
}

func toCartResponse(c cart.Cart) CartResponse {
	lines := c.Lines
	if lines == nil {
		lines = []cart.Line{}
	}
	return CartResponse{
		Lines:      lines,
		TotalCents: c.Total(),
		ItemCount:  c.ItemCount(),
	}
}

// CartHandler handles HTTP requests for the shopping cart
type CartHandler struct {
	cartService service.CartService
	logger      *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		logger:      logger,
	}
}

// RegisterRoutes registers cart routes; all require authentication
func (h *CartHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.GetCart)
		r.Delete("/", h.ClearCart)
		r.Post("/items", h.AddItem)
		r.Put("/items/{artworkID}", h.SetQuantity)
		r.Delete("/items/{artworkID}", h.RemoveItem)
	})
}

// GetCart returns the authenticated user's cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	c := h.cartService.Get(r.Context(), userID)
	middleware.RespondWithJSON(w, http.StatusOK, toCartResponse(c))
}

// AddItem adds an artwork to the cart
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req AddCartItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	artworkID, err := uuid.Parse(req.ArtworkID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid artwork id")
		return
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	c, err := h.cartService.AddItem(r.Context(), userID, artworkID, quantity)
	if err != nil {
		if err == repository.ErrArtworkNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "artwork not found")
			return
		}
		if err == service.ErrArtworkNotPurchasable {
			middleware.RespondWithError(w, http.StatusConflict, "artwork is not available for purchase")
			return
		}

		h.logger.Error("Failed to add cart item", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add item to cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toCartResponse(c))
}

// SetQuantity replaces a line's quantity; zero removes the line
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	artworkID, err := uuid.Parse(chi.URLParam(r, "artworkID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid artwork id")
		return
	}

	var req SetQuantityRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.cartService.SetQuantity(r.Context(), userID, artworkID, req.Quantity)
	if err != nil {
		h.logger.Error("Failed to set cart quantity", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toCartResponse(c))
}

// RemoveItem removes a line from the cart
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	artworkID, err := uuid.Parse(chi.URLParam(r, "artworkID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid artwork id")
		return
	}

	c, err := h.cartService.RemoveItem(r.Context(), userID, artworkID)
	if err != nil {
		h.logger.Error("Failed to remove cart item", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toCartResponse(c))
}

// ClearCart empties the cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.cartService.Clear(r.Context(), userID); err != nil {
		h.logger.Error("Failed to clear cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to clear cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toCartResponse(cart.Cart{}))
}
