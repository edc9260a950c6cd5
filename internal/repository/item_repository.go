package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog-service/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

// itemRepository implements the ItemRepository interface using PostgreSQL.
type itemRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewItemRepository creates a new PostgreSQL-backed item repository.
func NewItemRepository(pool *pgxpool.Pool, logger zerolog.Logger) ItemRepository {
	return &itemRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "item").Str("driver", "postgres").Logger(),
	}
}

// Search returns one page of matching items and the total number of matches.
func (r *itemRepository) Search(ctx context.Context, filter model.SearchFilter) ([]model.Item, int, error) {
	q := NewSearchQuery(filter, sqlx.DOLLAR)

	countSQL, countArgs := q.Count()

	var total int
	if err := r.pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		r.logger.Error().Err(err).Msg("failed to count items")
		return nil, 0, fmt.Errorf("failed to count items: %w", err)
	}

	pageSQL, pageArgs := q.Page()

	rows, err := r.pool.Query(ctx, pageSQL, pageArgs...)
	if err != nil {
		r.logger.Error().Err(err).
			Int("page", filter.Page).
			Int("page_size", filter.PageSize).
			Msg("failed to query items")
		return nil, 0, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan item row")
			return nil, 0, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating item rows")
		return nil, 0, fmt.Errorf("error iterating items: %w", err)
	}

	return items, total, nil
}

// Create inserts a new item.
func (r *itemRepository) Create(ctx context.Context, item *model.Item) error {
	query := `
		INSERT INTO catalog_items (id, name, description, category, price, "inStock", "createdAt", "updatedAt")
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		item.ID,
		item.Name,
		item.Description,
		item.Category,
		item.Price,
		boolToInt(item.InStock),
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("item_id", item.ID).Msg("failed to create item")
		return fmt.Errorf("failed to create item: %w", err)
	}

	r.logger.Debug().Str("item_id", item.ID).Msg("item created")

	return nil
}

// GetByID retrieves a single item by its ID.
func (r *itemRepository) GetByID(ctx context.Context, id string) (*model.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM catalog_items WHERE id = $1`

	item, err := scanItem(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("item_id", id).Msg("item not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("item_id", id).Msg("failed to query item")
		return nil, fmt.Errorf("failed to query item: %w", err)
	}

	return item, nil
}

// Update applies the patch to the item and refreshes updatedAt.
func (r *itemRepository) Update(ctx context.Context, id string, patch model.ItemPatch, updatedAt time.Time) error {
	query, args := updateStatement(id, patch, updatedAt, sqlx.DOLLAR)

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Str("item_id", id).Msg("failed to update item")
		return fmt.Errorf("failed to update item: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().Str("item_id", id).Msg("item not found for update")
		return model.ErrItemNotFound
	}

	return nil
}

// Delete removes the item permanently.
func (r *itemRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM catalog_items WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("item_id", id).Msg("failed to delete item")
		return fmt.Errorf("failed to delete item: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().Str("item_id", id).Msg("item not found for delete")
		return model.ErrItemNotFound
	}

	return nil
}

// scanItem reads one row in itemColumns order. inStock is stored as 0/1.
func scanItem(row pgx.Row) (*model.Item, error) {
	var (
		item    model.Item
		inStock int16
	)

	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.Category,
		&item.Price,
		&inStock,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.InStock = inStock == 1
	item.CreatedAt = item.CreatedAt.UTC()
	item.UpdatedAt = item.UpdatedAt.UTC()

	return &item, nil
}
