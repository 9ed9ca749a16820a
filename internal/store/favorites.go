package store

import (
	"context"
	"log/slog"
	"slices"
)

// favoritesKey is the namespaced storage key for the favorites set.
const favoritesKey = "favorites"

// Favorites is the persisted set of favorite calculator ids, stored as a
// JSON array. Insertion order is preserved for presentation but carries no
// meaning; membership is what matters.
type Favorites struct {
	adapter Adapter
	logger  *slog.Logger
}

// NewFavorites creates a favorites store on top of adapter.
func NewFavorites(adapter Adapter, logger *slog.Logger) *Favorites {
	if logger == nil {
		logger = slog.Default()
	}
	return &Favorites{adapter: adapter, logger: logger}
}

// Load returns the current favorites. A missing key, storage failure, or
// corrupt payload all degrade to the empty set.
func (f *Favorites) Load(ctx context.Context) []string {
	var ids []string
	if !getJSON(ctx, f.adapter, f.logger, favoritesKey, &ids) {
		return nil
	}
	return ids
}

// Toggle flips membership for id and persists the result: an absent id is
// appended, a present one removed. Each call performs exactly one write.
// The new set is returned even when the write fails; the next Load then
// falls back to the previously persisted state.
func (f *Favorites) Toggle(ctx context.Context, id string) []string {
	ids := f.Load(ctx)
	if i := slices.Index(ids, id); i >= 0 {
		ids = slices.Delete(ids, i, i+1)
	} else {
		ids = append(ids, id)
	}
	setJSON(ctx, f.adapter, f.logger, favoritesKey, ids)
	return ids
}

// Contains reports whether id is currently a favorite.
func (f *Favorites) Contains(ctx context.Context, id string) bool {
	return slices.Contains(f.Load(ctx), id)
}
