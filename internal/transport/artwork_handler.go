package transport

import (
	"net/http"

	"artmarket/internal/domain"
	"artmarket/internal/middleware"
	"artmarket/internal/repository"
	"artmarket/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ArtworkRequest represents the upload/update payload for an artwork
type ArtworkRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	ArtistID    string   `json:"artist_id" validate:"required,uuid"`
	ArtistName  string   `json:"artist_name" validate:"required"`
	CategoryID  string   `json:"category_id" validate:"required"`
	Tags        []string `json:"tags"`
	PriceCents  int64    `json:"price_cents" validate:"gte=0"`
	ImageURL    string   `json:"image_url"`
	YearCreated int      `json:"year_created"`
	Status      string   `json:"status" validate:"omitempty,oneof=published draft"`
}

// ArtworkHandler handles the seller-facing artwork management flow
type ArtworkHandler struct {
	artworkService service.ArtworkService
	userService    service.UserService
	logger         *zap.Logger
}

// NewArtworkHandler creates a new ArtworkHandler
func NewArtworkHandler(artworkService service.ArtworkService, userService service.UserService, logger *zap.Logger) *ArtworkHandler {
	return &ArtworkHandler{
		artworkService: artworkService,
		userService:    userService,
		logger:         logger,
	}
}

// RegisterRoutes registers artwork management routes; all require auth
func (h *ArtworkHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/artworks", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.Create)
		r.Get("/mine", h.ListMine)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// Create uploads a new artwork owned by the authenticated user
func (h *ArtworkHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	input, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	artwork, err := h.artworkService.Create(r.Context(), userID, input)
	if err != nil {
		h.respondServiceError(w, err, "failed to create artwork")
		return
	}

	h.logger.Info("Artwork created",
		zap.String("artwork_id", artwork.ID.String()),
		zap.String("owner_id", userID.String()),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, artwork)
}

// ListMine returns the authenticated user's artworks, drafts included
func (h *ArtworkHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	artworks, err := h.artworkService.ListMine(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list own artworks", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list artworks")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, artworks)
}

// Update modifies an artwork owned by the user (or any, for admins)
func (h *ArtworkHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid artwork id")
		return
	}

	input, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	artwork, err := h.artworkService.Update(r.Context(), actor, id, input)
	if err != nil {
		h.respondServiceError(w, err, "failed to update artwork")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, artwork)
}

// Delete removes an artwork owned by the user (or any, for admins)
func (h *ArtworkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid artwork id")
		return
	}

	if err := h.artworkService.Delete(r.Context(), actor, id); err != nil {
		h.respondServiceError(w, err, "failed to delete artwork")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "artwork deleted"})
}

func (h *ArtworkHandler) decodeInput(w http.ResponseWriter, r *http.Request) (service.NewArtworkInput, bool) {
	var req ArtworkRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return service.NewArtworkInput{}, false
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return service.NewArtworkInput{}, false
	}

	artistID, err := uuid.Parse(req.ArtistID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid artist id")
		return service.NewArtworkInput{}, false
	}

	return service.NewArtworkInput{
		Title:       req.Title,
		Description: req.Description,
		ArtistID:    artistID,
		ArtistName:  req.ArtistName,
		CategoryID:  req.CategoryID,
		Tags:        req.Tags,
		PriceCents:  req.PriceCents,
		ImageURL:    req.ImageURL,
		YearCreated: req.YearCreated,
		Status:      req.Status,
	}, true
}

// actor loads the full user record for ownership checks
func (h *ArtworkHandler) actor(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	userID, ok := authenticatedUserID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}

	user, err := h.userService.GetUserByID(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to load acting user", zap.Error(err))
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}

	return user, true
}

func (h *ArtworkHandler) respondServiceError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case repository.ErrArtworkNotFound:
		middleware.RespondWithError(w, http.StatusNotFound, "artwork not found")
	case service.ErrArtworkNotOwned:
		middleware.RespondWithError(w, http.StatusForbidden, "artwork does not belong to this user")
	case service.ErrUnknownCategory:
		middleware.RespondWithError(w, http.StatusBadRequest, "unknown category")
	case service.ErrNegativePrice:
		middleware.RespondWithError(w, http.StatusBadRequest, "price must not be negative")
	default:
		h.logger.Error("Artwork operation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, fallback)
	}
}
