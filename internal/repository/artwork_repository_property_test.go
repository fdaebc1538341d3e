package repository

import (
	"context"
	"testing"
	"time"

	"artmarket/internal/domain"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func seedOwner(t *testing.T) uuid.UUID {
	t.Helper()

	ownerID := uuid.New()
	_, err := testDB.Exec(`
		INSERT INTO users (id, email, password_hash, first_name, last_name, role, created_at, updated_at)
		VALUES ($1, $2, 'x', 'Test', 'Owner', 'user', NOW(), NOW())
	`, ownerID, ownerID.String()+"@example.com")
	if err != nil {
		t.Fatalf("Failed to seed owner: %v", err)
	}
	t.Cleanup(func() {
		_, _ = testDB.Exec("DELETE FROM users WHERE id = $1", ownerID)
	})
	return ownerID
}

func seedCategory(t *testing.T) string {
	t.Helper()

	id := "cat-" + uuid.New().String()[:8]
	_, err := testDB.Exec(`
		INSERT INTO categories (id, name, description, image_url, created_at)
		VALUES ($1, $2, '', '', NOW())
	`, id, "Category "+id)
	if err != nil {
		t.Fatalf("Failed to seed category: %v", err)
	}
	t.Cleanup(func() {
		_, _ = testDB.Exec("DELETE FROM categories WHERE id = $1", id)
	})
	return id
}

func TestProperty_ArtworkCreationPreservesAttributes(t *testing.T) {
	repo := NewArtworkRepository(testDB)
	ownerID := seedOwner(t)
	categoryID := seedCategory(t)

	properties := gopter.NewProperties(nil)

	properties.Property("creating and retrieving an artwork preserves all attributes", prop.ForAll(
		func(title string, description string, artistName string, priceCents int64, yearCreated int, featured bool, tags []string) bool {
			ctx := context.Background()

			artwork := &domain.Artwork{
				ID:          uuid.New(),
				Title:       title,
				Description: description,
				ArtistID:    uuid.New(),
				ArtistName:  artistName,
				CategoryID:  categoryID,
				Tags:        tags,
				PriceCents:  priceCents,
				ImageURL:    "http://example.com/image.jpg",
				YearCreated: yearCreated,
				Featured:    featured,
				Status:      domain.ArtworkStatusPublished,
				OwnerID:     ownerID,
				CreatedAt:   time.Now(),
				UpdatedAt:   time.Now(),
			}

			err := repo.Create(ctx, artwork)
			if err != nil {
				t.Logf("FAIL: Failed to create artwork: %v", err)
				return false
			}

			retrieved, err := repo.FindByID(ctx, artwork.ID)
			if err != nil {
				t.Logf("FAIL: Failed to retrieve artwork: %v", err)
				return false
			}

			if retrieved.Title != title || retrieved.Description != description || retrieved.ArtistName != artistName {
				t.Logf("FAIL: Text fields mismatch: %+v", retrieved)
				return false
			}
			if retrieved.PriceCents != priceCents {
				t.Logf("FAIL: PriceCents mismatch. Expected %d, got %d", priceCents, retrieved.PriceCents)
				return false
			}
			if retrieved.YearCreated != yearCreated || retrieved.Featured != featured {
				t.Logf("FAIL: YearCreated/Featured mismatch: %+v", retrieved)
				return false
			}
			if retrieved.CategoryID != categoryID || retrieved.OwnerID != ownerID {
				t.Logf("FAIL: Reference fields mismatch: %+v", retrieved)
				return false
			}
			if len(retrieved.Tags) != len(tags) {
				t.Logf("FAIL: Tags length mismatch. Expected %v, got %v", tags, retrieved.Tags)
				return false
			}
			for i := range tags {
				if retrieved.Tags[i] != tags[i] {
					t.Logf("FAIL: Tags mismatch. Expected %v, got %v", tags, retrieved.Tags)
					return false
				}
			}

			_ = repo.Delete(ctx, artwork.ID)

			return true
		},
		gen.RegexMatch(`[A-Za-z0-9 ]{3,50}`),
		gen.RegexMatch(`[A-Za-z0-9 .,!?]{10,200}`),
		gen.RegexMatch(`[A-Z][a-z]{2,15} [A-Z][a-z]{2,15}`),
		gen.Int64Range(0, 100_000_000),
		gen.IntRange(1900, 2026),
		gen.Bool(),
		gen.SliceOfN(3, gen.RegexMatch(`[a-z]{3,12}`)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestArtworkListPublishedExcludesDrafts(t *testing.T) {
	repo := NewArtworkRepository(testDB)
	ownerID := seedOwner(t)
	categoryID := seedCategory(t)
	ctx := context.Background()

	newArtwork := func(status string) *domain.Artwork {
		return &domain.Artwork{
			ID:         uuid.New(),
			Title:      "Listing test " + status,
			ArtistID:   uuid.New(),
			ArtistName: "Elena Rodriguez",
			CategoryID: categoryID,
			PriceCents: 125000,
			Status:     status,
			OwnerID:    ownerID,
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}
	}

	published := newArtwork(domain.ArtworkStatusPublished)
	draft := newArtwork(domain.ArtworkStatusDraft)

	for _, artwork := range []*domain.Artwork{published, draft} {
		if err := repo.Create(ctx, artwork); err != nil {
			t.Fatalf("Failed to create artwork: %v", err)
		}
		defer repo.Delete(ctx, artwork.ID)
	}

	listed, err := repo.ListPublished(ctx)
	if err != nil {
		t.Fatalf("ListPublished failed: %v", err)
	}

	for _, artwork := range listed {
		if artwork.ID == draft.ID {
			t.Error("draft artwork appeared in published listing")
		}
		if artwork.Status != domain.ArtworkStatusPublished {
			t.Errorf("non-published artwork in listing: %+v", artwork)
		}
	}

	byOwner, err := repo.ListByOwner(ctx, ownerID)
	if err != nil {
		t.Fatalf("ListByOwner failed: %v", err)
	}
	if len(byOwner) != 2 {
		t.Errorf("expected owner listing to include the draft, got %d artworks", len(byOwner))
	}
}

func TestArtworkCounters(t *testing.T) {
	repo := NewArtworkRepository(testDB)
	ownerID := seedOwner(t)
	categoryID := seedCategory(t)
	ctx := context.Background()

	artwork := &domain.Artwork{
		ID:         uuid.New(),
		Title:      "Counter test",
		ArtistID:   uuid.New(),
		ArtistName: "Elena Rodriguez",
		CategoryID: categoryID,
		PriceCents: 125000,
		Status:     domain.ArtworkStatusPublished,
		OwnerID:    ownerID,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := repo.Create(ctx, artwork); err != nil {
		t.Fatalf("Failed to create artwork: %v", err)
	}
	defer repo.Delete(ctx, artwork.ID)

	for i := 0; i < 3; i++ {
		if err := repo.IncrementViews(ctx, artwork.ID); err != nil {
			t.Fatalf("IncrementViews failed: %v", err)
		}
	}
	if err := repo.IncrementLikes(ctx, artwork.ID); err != nil {
		t.Fatalf("IncrementLikes failed: %v", err)
	}

	retrieved, err := repo.FindByID(ctx, artwork.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if retrieved.Views != 3 {
		t.Errorf("views = %d, want 3", retrieved.Views)
	}
	if retrieved.Likes != 1 {
		t.Errorf("likes = %d, want 1", retrieved.Likes)
	}

	if err := repo.IncrementViews(ctx, uuid.New()); err != ErrArtworkNotFound {
		t.Errorf("expected ErrArtworkNotFound for unknown artwork, got %v", err)
	}
}

func TestArtworkDeleteRemovesFromCatalog(t *testing.T) {
	repo := NewArtworkRepository(testDB)
	ownerID := seedOwner(t)
	categoryID := seedCategory(t)
	ctx := context.Background()

	artwork := &domain.Artwork{
		ID:         uuid.New(),
		Title:      "Delete test",
		ArtistID:   uuid.New(),
		ArtistName: "Elena Rodriguez",
		CategoryID: categoryID,
		PriceCents: 125000,
		Status:     domain.ArtworkStatusPublished,
		OwnerID:    ownerID,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := repo.Create(ctx, artwork); err != nil {
		t.Fatalf("Failed to create artwork: %v", err)
	}

	if err := repo.Delete(ctx, artwork.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.FindByID(ctx, artwork.ID); err != ErrArtworkNotFound {
		t.Errorf("expected ErrArtworkNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, artwork.ID); err != ErrArtworkNotFound {
		t.Errorf("expected ErrArtworkNotFound on double delete, got %v", err)
	}
}
