package transport

import (
	"net/http"
	"strconv"
	"time"

	"artmarket/internal/catalog"
	"artmarket/internal/domain"
	"artmarket/internal/middleware"
	"artmarket/internal/repository"
	"artmarket/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateCategoryRequest represents the admin category creation payload
type CreateCategoryRequest struct {
	ID          string `json:"id" validate:"required,min=2,max=50"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// BrowseResponse wraps a catalog query result with its count so clients
// can show "N results" without counting
type BrowseResponse struct {
	Artworks []domain.Artwork `json:"artworks"`
	Total    int              `json:"total"`
}

// CatalogHandler handles HTTP requests for catalog browsing
type CatalogHandler struct {
	catalogService service.CatalogService
	categoryRepo   repository.CategoryRepository
	logger         *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService service.CatalogService, categoryRepo repository.CategoryRepository, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		categoryRepo:   categoryRepo,
		logger:         logger,
	}
}

// RegisterRoutes registers catalog routes. Browsing is public; liking
// requires auth; category creation requires admin.
func (h *CatalogHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/catalog", func(r chi.Router) {
		r.Get("/artworks", h.Browse)
		r.Get("/artworks/{id}", h.GetArtwork)
		r.Get("/categories", h.ListCategories)
		r.Get("/featured", h.Featured)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/artworks/{id}/like", h.Like)
		})

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(adminMiddleware)
			r.Post("/categories", h.CreateCategory)
		})
	})
}

// Browse runs a catalog query from the request's query parameters.
// Unknown categories and sort modes degrade inside the engine, so this
// endpoint never rejects criteria.
func (h *CatalogHandler) Browse(w http.ResponseWriter, r *http.Request) {
	criteria := catalog.Criteria{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("q"),
		Sort:     r.URL.Query().Get("sort"),
	}

	artworks, err := h.catalogService.Browse(criteria)
	if err != nil {
		if err == service.ErrCatalogUnavailable {
			middleware.RespondWithError(w, http.StatusServiceUnavailable, "catalog is not available yet")
			return
		}

		h.logger.Error("Catalog browse failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to browse catalog")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, BrowseResponse{
		Artworks: artworks,
		Total:    len(artworks),
	})
}

// GetArtwork returns one artwork and records the view
func (h *CatalogHandler) GetArtwork(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid artwork id")
		return
	}

	artwork, err := h.catalogService.GetArtwork(r.Context(), id)
	if err != nil {
		if err == repository.ErrArtworkNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "artwork not found")
			return
		}

		h.logger.Error("Failed to get artwork", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get artwork")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, artwork)
}

// ListCategories returns the category set
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.Categories()
	if err != nil {
		if err == service.ErrCatalogUnavailable {
			middleware.RespondWithError(w, http.StatusServiceUnavailable, "catalog is not available yet")
			return
		}

		h.logger.Error("Failed to list categories", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, categories)
}

// Featured returns up to ?limit= featured artworks (default 4)
func (h *CatalogHandler) Featured(w http.ResponseWriter, r *http.Request) {
	limit := 4
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err == nil && parsed > 0 {
			limit = parsed
		}
	}

	artworks, err := h.catalogService.Featured(limit)
	if err != nil {
		if err == service.ErrCatalogUnavailable {
			middleware.RespondWithError(w, http.StatusServiceUnavailable, "catalog is not available yet")
			return
		}

		h.logger.Error("Failed to list featured artworks", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list featured artworks")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, artworks)
}

// Like records a like on an artwork
func (h *CatalogHandler) Like(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid artwork id")
		return
	}

	if err := h.catalogService.Like(r.Context(), id); err != nil {
		if err == repository.ErrArtworkNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "artwork not found")
			return
		}

		h.logger.Error("Failed to like artwork", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to like artwork")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "liked"})
}

// CreateCategory adds a new category (admin only)
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category := &domain.Category{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		CreatedAt:   time.Now(),
	}

	if err := h.categoryRepo.Create(r.Context(), category); err != nil {
		if err == repository.ErrCategoryAlreadyExists {
			middleware.RespondWithError(w, http.StatusConflict, "category with this id already exists")
			return
		}

		h.logger.Error("Failed to create category", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create category")
		return
	}

	h.logger.Info("Category created", zap.String("category_id", category.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, category)
}
