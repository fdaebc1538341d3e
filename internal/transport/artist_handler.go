package transport

import (
	"net/http"
	"strings"

	"artmarket/internal/domain"
	"artmarket/internal/middleware"
	"artmarket/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ArtistHandler handles HTTP requests for artist profiles
type ArtistHandler struct {
	artistRepo repository.ArtistRepository
	logger     *zap.Logger
}

// NewArtistHandler creates a new ArtistHandler
func NewArtistHandler(artistRepo repository.ArtistRepository, logger *zap.Logger) *ArtistHandler {
	return &ArtistHandler{
		artistRepo: artistRepo,
		logger:     logger,
	}
}

// RegisterRoutes registers public artist routes
func (h *ArtistHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/artists", func(r chi.Router) {
		r.Get("/", h.ListArtists)
		r.Get("/{id}", h.GetArtist)
	})
}

// ListArtists returns all artists, optionally filtered by ?q= against
// name, bio, location, and specialties. The same case-insensitive
// substring policy as catalog search; a blank query returns everyone.
func (h *ArtistHandler) ListArtists(w http.ResponseWriter, r *http.Request) {
	artists, err := h.artistRepo.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list artists", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list artists")
		return
	}

	query := strings.TrimSpace(strings.ToLower(r.URL.Query().Get("q")))
	if query != "" {
		filtered := []domain.Artist{}
		for _, artist := range artists {
			if matchesArtist(artist, query) {
				filtered = append(filtered, artist)
			}
		}
		artists = filtered
	}

	middleware.RespondWithJSON(w, http.StatusOK, artists)
}

// GetArtist returns one artist profile
func (h *ArtistHandler) GetArtist(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid artist id")
		return
	}

	artist, err := h.artistRepo.FindByID(r.Context(), id)
	if err != nil {
		if err == repository.ErrArtistNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "artist not found")
			return
		}

		h.logger.Error("Failed to get artist", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get artist")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, artist)
}

func matchesArtist(artist domain.Artist, lowered string) bool {
	if strings.Contains(strings.ToLower(artist.Name), lowered) {
		return true
	}
	if strings.Contains(strings.ToLower(artist.Bio), lowered) {
		return true
	}
	if strings.Contains(strings.ToLower(artist.Location), lowered) {
		return true
	}
	for _, specialty := range artist.Specialties {
		if strings.Contains(strings.ToLower(specialty), lowered) {
			return true
		}
	}
	return false
}
