package port

import (
	"context"
	"errors"

	"github.com/b-it-bots/datahub/internal/core/domain"
)

var (
	// ErrNotFound means no item with the requested id exists in the store.
	ErrNotFound = errors.New("item not found")

	// ErrStoreUninitialized means the store was never seeded; every
	// operation fails with it until a seed is applied.
	ErrStoreUninitialized = errors.New("store uninitialized")
)

// InventoryStore holds the authoritative set of inventory items. Items are
// keyed by their `@id` and are never deleted; the only transitions are
// create (via upsert) and replace (via upsert or patch).
type InventoryStore interface {
	// ListItems returns all items in insertion order.
	ListItems(ctx context.Context) ([]domain.InventoryItem, error)

	// GetItem returns the item with the given id, or ErrNotFound.
	GetItem(ctx context.Context, id string) (domain.InventoryItem, error)

	// UpsertItem fully replaces the item with the given id, creating it if
	// absent. The returned bool reports whether the item was created.
	UpsertItem(ctx context.Context, id string, item domain.InventoryItem) (domain.InventoryItem, bool, error)

	// PatchItem replaces an existing item and returns ErrNotFound if no
	// item with the id exists. It never creates.
	PatchItem(ctx context.Context, id string, item domain.InventoryItem) (domain.InventoryItem, error)
}

// OrderSource serves the read-only order list.
type OrderSource interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
}
