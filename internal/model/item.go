package model

import "time"

// Item represents a single entry in the catalog.
type Item struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description" db:"description"`
	Category    string    `json:"category" db:"category"`
	Price       float64   `json:"price" db:"price"`
	InStock     bool      `json:"inStock" db:"inStock"`
	CreatedAt   time.Time `json:"createdAt" db:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updatedAt"`
}

// ItemRequest is the payload for creating or updating an item.
// A nil field was absent from the request body.
type ItemRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	InStock     *bool    `json:"inStock,omitempty"`
}

// Patch returns the fields of the request as a partial update.
func (r *ItemRequest) Patch() ItemPatch {
	return ItemPatch{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Price:       r.Price,
		InStock:     r.InStock,
	}
}

// ItemPatch holds the mutable fields of an item. Only non-nil fields are
// written by an update.
type ItemPatch struct {
	Name        *string
	Description *string
	Category    *string
	Price       *float64
	InStock     *bool
}

// IsEmpty reports whether the patch changes no field.
func (p ItemPatch) IsEmpty() bool {
	return p.Name == nil &&
		p.Description == nil &&
		p.Category == nil &&
		p.Price == nil &&
		p.InStock == nil
}

// SearchFilter holds the optional criteria of a catalog search.
type SearchFilter struct {
	Query    *string
	Category *string
	MinPrice *float64
	MaxPrice *float64
	InStock  *bool
	Page     int
	PageSize int
}

// Offset returns the number of rows skipped before the requested page.
func (f SearchFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// SearchResult is one page of search results.
type SearchResult struct {
	Items    []Item `json:"items"`
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}
