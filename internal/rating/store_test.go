package rating

import (
	"testing"

	"github.com/yourusername/court-edge/internal/models"
)

func TestStoreDefaultsToInitialRating(t *testing.T) {
	store := NewMemoryStore()
	if got := store.Get("r. nadal", models.SurfaceClay); got != InitialRating {
		t.Fatalf("unset key: got %f, want %f", got, InitialRating)
	}
	if store.Len() != 0 {
		t.Fatalf("Get must not materialize entries")
	}
}

func TestStoreReadYourWrites(t *testing.T) {
	store := NewMemoryStore()
	store.Set("r. nadal", models.SurfaceClay, 1873.5)
	if got := store.Get("r. nadal", models.SurfaceClay); got != 1873.5 {
		t.Fatalf("got %f, want 1873.5", got)
	}

	// Same player, different surface keeps its own history
	if got := store.Get("r. nadal", models.SurfaceGrass); got != InitialRating {
		t.Fatalf("grass rating leaked from clay: %f", got)
	}

	// Updates are total overwrites
	store.Set("r. nadal", models.SurfaceClay, 1880.0)
	if got := store.Get("r. nadal", models.SurfaceClay); got != 1880.0 {
		t.Fatalf("overwrite failed: %f", got)
	}
	if store.Len() != 1 {
		t.Fatalf("overwrite must not duplicate the entry")
	}
}

func TestStoreEntriesRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	store.Set("r. nadal", models.SurfaceClay, 1873.5)
	store.Set("n. djokovic", models.SurfaceHard, 1910.0)
	store.Set("n. djokovic", models.SurfaceGrass, 1850.0)

	entries := store.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	// Restartable: a second snapshot is identical
	again := store.Entries()
	for i := range entries {
		if entries[i] != again[i] {
			t.Fatalf("snapshot not restartable at %d: %+v vs %+v", i, entries[i], again[i])
		}
	}

	reloaded := NewMemoryStoreFromEntries(entries)
	for _, e := range entries {
		if got := reloaded.Get(e.Player, e.Surface); got != e.Rating {
			t.Fatalf("round trip lost %v: got %f", e, got)
		}
	}
}
