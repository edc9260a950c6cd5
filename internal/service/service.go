package service

import (
	"context"

	"catalog-service/internal/model"
)

// ItemService defines operations for catalog item management.
type ItemService interface {
	// Search returns one page of items matching the filter.
	Search(ctx context.Context, filter model.SearchFilter) (*model.SearchResult, error)

	// Create validates and stores a new item.
	Create(ctx context.Context, req *model.ItemRequest) (*model.Item, error)

	// GetByID retrieves a single item by ID.
	GetByID(ctx context.Context, id string) (*model.Item, error)

	// Update applies a partial update to an existing item.
	Update(ctx context.Context, id string, req *model.ItemRequest) (*model.Item, error)

	// Delete removes an item permanently.
	Delete(ctx context.Context, id string) error
}
