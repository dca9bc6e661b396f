// Package rating maintains per-player, per-surface Elo-style skill ratings
// and revises them as match results arrive.
package rating

import (
	"sort"

	"github.com/yourusername/court-edge/internal/models"
)

// InitialRating is assigned to every (player, surface) pair on first reference
const InitialRating = 1500.0

// Key identifies one rating entry
type Key struct {
	Player  models.PlayerKey
	Surface models.Surface
}

// Entry is one (player, surface, rating) row, as produced for persistence
type Entry struct {
	Player  models.PlayerKey
	Surface models.Surface
	Rating  float64
}

// Store maps (player, surface) to a rating. Lookups on unseen keys return the
// initial rating and never fail; writes are total overwrites. The store
// assumes a single writer per run (see the updater); it holds no locks.
type Store interface {
	Get(player models.PlayerKey, surface models.Surface) float64
	Set(player models.PlayerKey, surface models.Surface, rating float64)
	Entries() []Entry
	Len() int
}

// MemoryStore is the in-memory Store used by every run. It is loaded from the
// repository at process start and written back at process end.
type MemoryStore struct {
	ratings map[Key]float64
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{ratings: make(map[Key]float64)}
}

// NewMemoryStoreFromEntries creates a store preloaded with persisted entries
func NewMemoryStoreFromEntries(entries []Entry) *MemoryStore {
	s := NewMemoryStore()
	for _, e := range entries {
		s.ratings[Key{Player: e.Player, Surface: e.Surface}] = e.Rating
	}
	return s
}

// Get returns the current rating, defaulting to InitialRating for unseen keys
func (s *MemoryStore) Get(player models.PlayerKey, surface models.Surface) float64 {
	if r, ok := s.ratings[Key{Player: player, Surface: surface}]; ok {
		return r
	}
	return InitialRating
}

// Set upserts the rating for a key
func (s *MemoryStore) Set(player models.PlayerKey, surface models.Surface, rating float64) {
	s.ratings[Key{Player: player, Surface: surface}] = rating
}

// Entries returns a finite, restartable snapshot of all rows, ordered by
// player then surface so that persistence output is deterministic.
func (s *MemoryStore) Entries() []Entry {
	entries := make([]Entry, 0, len(s.ratings))
	for k, r := range s.ratings {
		entries = append(entries, Entry{Player: k.Player, Surface: k.Surface, Rating: r})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Player != entries[j].Player {
			return entries[i].Player < entries[j].Player
		}
		return entries[i].Surface < entries[j].Surface
	})
	return entries
}

// Len returns the number of tracked entries
func (s *MemoryStore) Len() int {
	return len(s.ratings)
}
