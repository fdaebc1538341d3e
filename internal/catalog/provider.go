package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"artmarket/internal/domain"

	"go.uber.org/zap"
)

// ArtworkSource supplies the published artworks for a snapshot.
type ArtworkSource interface {
	ListPublished(ctx context.Context) ([]domain.Artwork, error)
}

// CategorySource supplies the category set for a snapshot.
type CategorySource interface {
	List(ctx context.Context) ([]domain.Category, error)
}

// Snapshot is one immutable view of the catalog. Queries always run
// against an explicit snapshot rather than hidden shared state, so
// results are reproducible and the engine stays trivially testable.
type Snapshot struct {
	Artworks   []domain.Artwork
	Categories []domain.Category
	LoadedAt   time.Time
}

// Provider keeps the current catalog snapshot in memory and refreshes it
// from the backing sources. Subscribers are handed each fresh snapshot
// after a successful refresh.
type Provider struct {
	artworks   ArtworkSource
	categories CategorySource
	logger     *zap.Logger

	mu          sync.RWMutex
	snapshot    Snapshot
	loaded      bool
	nextSubID   int
	subscribers map[int]func(Snapshot)
}

// NewProvider creates a Provider. Call Refresh (or Run) before serving
// queries.
func NewProvider(artworks ArtworkSource, categories CategorySource, logger *zap.Logger) *Provider {
	return &Provider{
		artworks:    artworks,
		categories:  categories,
		logger:      logger,
		subscribers: make(map[int]func(Snapshot)),
	}
}

// Refresh reloads the snapshot from the backing sources. On failure the
// previous snapshot keeps serving.
func (p *Provider) Refresh(ctx context.Context) error {
	artworks, err := p.artworks.ListPublished(ctx)
	if err != nil {
		return fmt.Errorf("failed to load artworks: %w", err)
	}

	categories, err := p.categories.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}

	snapshot := Snapshot{
		Artworks:   artworks,
		Categories: categories,
		LoadedAt:   time.Now(),
	}

	p.mu.Lock()
	p.snapshot = snapshot
	p.loaded = true
	subscribers := make([]func(Snapshot), 0, len(p.subscribers))
	for _, fn := range p.subscribers {
		subscribers = append(subscribers, fn)
	}
	p.mu.Unlock()

	for _, fn := range subscribers {
		fn(snapshot)
	}

	p.logger.Debug("Catalog snapshot refreshed",
		zap.Int("artworks", len(artworks)),
		zap.Int("categories", len(categories)),
	)

	return nil
}

// Run refreshes the snapshot on a fixed interval until ctx is cancelled.
// Intended to be launched as a goroutine from the server.
func (p *Provider) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.Refresh(ctx); err != nil {
				p.logger.Error("Catalog snapshot refresh failed", zap.Error(err))
			}
		}
	}
}

// Snapshot returns the current snapshot and whether one has been loaded.
func (p *Provider) Snapshot() (Snapshot, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot, p.loaded
}

// Subscribe registers fn to receive every snapshot produced after this
// call. The returned function removes the subscription.
func (p *Provider) Subscribe(fn func(Snapshot)) func() {
	p.mu.Lock()
	id := p.nextSubID
	p.nextSubID++
	p.subscribers[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.subscribers, id)
		p.mu.Unlock()
	}
}
