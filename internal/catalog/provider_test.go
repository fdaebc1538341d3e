package catalog

import (
	"context"
	"errors"
	"testing"

	"artmarket/internal/domain"

	"go.uber.org/zap"
)

type stubArtworkSource struct {
	artworks []domain.Artwork
	err      error
	calls    int
}

func (s *stubArtworkSource) ListPublished(ctx context.Context) ([]domain.Artwork, error) {
	s.calls++
	return s.artworks, s.err
}

type stubCategorySource struct {
	categories []domain.Category
	err        error
}

func (s *stubCategorySource) List(ctx context.Context) ([]domain.Category, error) {
	return s.categories, s.err
}

func TestProviderSnapshotBeforeRefresh(t *testing.T) {
	provider := NewProvider(&stubArtworkSource{}, &stubCategorySource{}, zap.NewNop())

	if _, ok := provider.Snapshot(); ok {
		t.Error("expected no snapshot before the first refresh")
	}
}

func TestProviderRefreshLoadsSnapshot(t *testing.T) {
	artworks := &stubArtworkSource{artworks: []domain.Artwork{
		{Title: "Sunset Over the Mesa", CategoryID: "paintings"},
	}}
	categories := &stubCategorySource{categories: []domain.Category{
		{ID: "paintings", Name: "Paintings"},
	}}

	provider := NewProvider(artworks, categories, zap.NewNop())
	if err := provider.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	snapshot, ok := provider.Snapshot()
	if !ok {
		t.Fatal("expected a loaded snapshot after refresh")
	}
	if len(snapshot.Artworks) != 1 || len(snapshot.Categories) != 1 {
		t.Errorf("unexpected snapshot contents: %d artworks, %d categories",
			len(snapshot.Artworks), len(snapshot.Categories))
	}
	if snapshot.LoadedAt.IsZero() {
		t.Error("snapshot LoadedAt was not set")
	}
}

func TestProviderFailedRefreshKeepsOldSnapshot(t *testing.T) {
	artworks := &stubArtworkSource{artworks: []domain.Artwork{{Title: "a"}}}
	categories := &stubCategorySource{}

	provider := NewProvider(artworks, categories, zap.NewNop())
	if err := provider.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	artworks.err = errors.New("connection refused")
	if err := provider.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}

	snapshot, ok := provider.Snapshot()
	if !ok || len(snapshot.Artworks) != 1 {
		t.Errorf("failed refresh replaced the old snapshot: ok=%v artworks=%d", ok, len(snapshot.Artworks))
	}
}

func TestProviderSubscribe(t *testing.T) {
	artworks := &stubArtworkSource{artworks: []domain.Artwork{{Title: "a"}}}
	provider := NewProvider(artworks, &stubCategorySource{}, zap.NewNop())

	var received []Snapshot
	unsubscribe := provider.Subscribe(func(s Snapshot) {
		received = append(received, s)
	})

	if err := provider.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if len(received) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(received))
	}
	if len(received[0].Artworks) != 1 {
		t.Errorf("notification carried wrong snapshot: %d artworks", len(received[0].Artworks))
	}

	unsubscribe()
	if err := provider.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if len(received) != 1 {
		t.Errorf("expected no notifications after unsubscribe, got %d", len(received))
	}
}
