package repository

import (
	"context"
	"time"

	"catalog-service/internal/model"
)

// ItemRepository defines the interface for catalog item data access operations.
type ItemRepository interface {
	// Search returns one page of items matching the filter together with the
	// number of matching items across all pages.
	Search(ctx context.Context, filter model.SearchFilter) ([]model.Item, int, error)

	// Create inserts a new item.
	Create(ctx context.Context, item *model.Item) error

	// GetByID retrieves a single item by its ID.
	// Returns nil without error when no item matches.
	GetByID(ctx context.Context, id string) (*model.Item, error)

	// Update applies the patch to the item and sets its updatedAt.
	// Returns model.ErrItemNotFound when no item matches.
	Update(ctx context.Context, id string, patch model.ItemPatch, updatedAt time.Time) error

	// Delete removes the item permanently.
	// Returns model.ErrItemNotFound when no item matches.
	Delete(ctx context.Context, id string) error
}
