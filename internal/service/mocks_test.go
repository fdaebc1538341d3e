package service

import (
	"context"
	"errors"
	"sync"

	"artmarket/internal/cart"
	"artmarket/internal/domain"
	"artmarket/internal/repository"

	"github.com/google/uuid"
)

type mockUserRepository struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*domain.User
	byEmail map[string]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		byID:    make(map[uuid.UUID]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[user.Email]; ok {
		return repository.ErrUserAlreadyExists
	}
	m.byID[user.ID] = user
	m.byEmail[user.Email] = user
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

type mockRefreshTokenRepository struct {
	mu     sync.Mutex
	tokens map[string]*domain.RefreshToken
}

func newMockRefreshTokenRepository() *mockRefreshTokenRepository {
	return &mockRefreshTokenRepository{tokens: make(map[string]*domain.RefreshToken)}
}

func (m *mockRefreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[token.Token] = token
	return nil
}

func (m *mockRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.tokens[token]
	if !ok {
		return nil, repository.ErrRefreshTokenNotFound
	}
	if stored.Revoked {
		return nil, repository.ErrRefreshTokenRevoked
	}
	return stored, nil
}

func (m *mockRefreshTokenRepository) Revoke(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.tokens[token]
	if !ok {
		return repository.ErrRefreshTokenNotFound
	}
	stored.Revoked = true
	return nil
}

type mockArtworkRepository struct {
	mu       sync.Mutex
	artworks map[uuid.UUID]*domain.Artwork

	viewsErr error
	likesErr error
}

func newMockArtworkRepository() *mockArtworkRepository {
	return &mockArtworkRepository{artworks: make(map[uuid.UUID]*domain.Artwork)}
}

func (m *mockArtworkRepository) Create(ctx context.Context, artwork *domain.Artwork) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *artwork
	m.artworks[artwork.ID] = &stored
	return nil
}

func (m *mockArtworkRepository) Update(ctx context.Context, artwork *domain.Artwork) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.artworks[artwork.ID]; !ok {
		return repository.ErrArtworkNotFound
	}
	stored := *artwork
	m.artworks[artwork.ID] = &stored
	return nil
}

func (m *mockArtworkRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.artworks[id]; !ok {
		return repository.ErrArtworkNotFound
	}
	delete(m.artworks, id)
	return nil
}

func (m *mockArtworkRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Artwork, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	artwork, ok := m.artworks[id]
	if !ok {
		return nil, repository.ErrArtworkNotFound
	}
	found := *artwork
	return &found, nil
}

func (m *mockArtworkRepository) ListPublished(ctx context.Context) ([]domain.Artwork, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	artworks := []domain.Artwork{}
	for _, artwork := range m.artworks {
		if artwork.Status == domain.ArtworkStatusPublished {
			artworks = append(artworks, *artwork)
		}
	}
	return artworks, nil
}

func (m *mockArtworkRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Artwork, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	artworks := []domain.Artwork{}
	for _, artwork := range m.artworks {
		if artwork.OwnerID == ownerID {
			artworks = append(artworks, *artwork)
		}
	}
	return artworks, nil
}

func (m *mockArtworkRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.viewsErr != nil {
		return m.viewsErr
	}
	artwork, ok := m.artworks[id]
	if !ok {
		return repository.ErrArtworkNotFound
	}
	artwork.Views++
	return nil
}

func (m *mockArtworkRepository) IncrementLikes(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.likesErr != nil {
		return m.likesErr
	}
	artwork, ok := m.artworks[id]
	if !ok {
		return repository.ErrArtworkNotFound
	}
	artwork.Likes++
	return nil
}

type mockCategoryRepository struct {
	mu         sync.Mutex
	categories map[string]*domain.Category
}

func newMockCategoryRepository(ids ...string) *mockCategoryRepository {
	m := &mockCategoryRepository{categories: make(map[string]*domain.Category)}
	for _, id := range ids {
		m.categories[id] = &domain.Category{ID: id, Name: id}
	}
	return m
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[category.ID]; ok {
		return repository.ErrCategoryAlreadyExists
	}
	m.categories[category.ID] = category
	return nil
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	categories := []domain.Category{}
	for _, category := range m.categories {
		categories = append(categories, *category)
	}
	return categories, nil
}

func (m *mockCategoryRepository) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	category, ok := m.categories[id]
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}
	return category, nil
}

type mockOrderRepository struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*domain.Order

	createErr error
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{orders: make(map[uuid.UUID]*domain.Order)}
}

func (m *mockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.orders[order.ID] = order
	return nil
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	return order, nil
}

func (m *mockOrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	orders := []domain.Order{}
	for _, order := range m.orders {
		if order.UserID == userID {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

// memoryCartStore is an in-memory cart.Store with the same degrade-to-
// empty read behavior as the Redis implementation.
type memoryCartStore struct {
	mu    sync.Mutex
	carts map[string]cart.Cart

	saveErr  error
	clearErr error
}

func newMemoryCartStore() *memoryCartStore {
	return &memoryCartStore{carts: make(map[string]cart.Cart)}
}

func (m *memoryCartStore) Get(ctx context.Context, userID string) cart.Cart {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.carts[userID]
}

func (m *memoryCartStore) Save(ctx context.Context, userID string, c cart.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.carts[userID] = c
	return nil
}

func (m *memoryCartStore) Clear(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.clearErr != nil {
		return m.clearErr
	}
	delete(m.carts, userID)
	return nil
}

type stubRefresher struct {
	calls int
	err   error
}

func (s *stubRefresher) Refresh(ctx context.Context) error {
	s.calls++
	return s.err
}

var errBackend = errors.New("backend unavailable")
