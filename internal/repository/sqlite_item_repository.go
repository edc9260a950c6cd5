package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"catalog-service/internal/model"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

// sqliteTimeLayout is the text form of timestamps in the SQLite store. It is
// fixed-width so that ORDER BY on the column is chronological.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000Z07:00"

// sqliteItemRow mirrors a catalog_items row as SQLite returns it.
type sqliteItemRow struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	Category    string         `db:"category"`
	Price       float64        `db:"price"`
	InStock     int            `db:"inStock"`
	CreatedAt   string         `db:"createdAt"`
	UpdatedAt   string         `db:"updatedAt"`
}

func (row sqliteItemRow) toModel() (*model.Item, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, row.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid createdAt %q: %w", row.CreatedAt, err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, row.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid updatedAt %q: %w", row.UpdatedAt, err)
	}

	item := &model.Item{
		ID:        row.ID,
		Name:      row.Name,
		Category:  row.Category,
		Price:     row.Price,
		InStock:   row.InStock == 1,
		CreatedAt: createdAt.UTC(),
		UpdatedAt: updatedAt.UTC(),
	}
	if row.Description.Valid {
		description := row.Description.String
		item.Description = &description
	}

	return item, nil
}

// sqliteItemRepository implements the ItemRepository interface using an
// embedded SQLite database.
type sqliteItemRepository struct {
	db     *sqlx.DB
	logger zerolog.Logger
}

// NewSQLiteItemRepository creates a new SQLite-backed item repository.
func NewSQLiteItemRepository(db *sqlx.DB, logger zerolog.Logger) ItemRepository {
	return &sqliteItemRepository{
		db:     db,
		logger: logger.With().Str("repository", "item").Str("driver", "sqlite").Logger(),
	}
}

// Search returns one page of matching items and the total number of matches.
func (r *sqliteItemRepository) Search(ctx context.Context, filter model.SearchFilter) ([]model.Item, int, error) {
	q := NewSearchQuery(filter, sqlx.QUESTION)

	countSQL, countArgs := q.Count()

	var total int
	if err := r.db.GetContext(ctx, &total, countSQL, countArgs...); err != nil {
		r.logger.Error().Err(err).Msg("failed to count items")
		return nil, 0, fmt.Errorf("failed to count items: %w", err)
	}

	pageSQL, pageArgs := q.Page()

	var rows []sqliteItemRow
	if err := r.db.SelectContext(ctx, &rows, pageSQL, pageArgs...); err != nil {
		r.logger.Error().Err(err).
			Int("page", filter.Page).
			Int("page_size", filter.PageSize).
			Msg("failed to query items")
		return nil, 0, fmt.Errorf("failed to query items: %w", err)
	}

	items := make([]model.Item, 0, len(rows))
	for _, row := range rows {
		item, err := row.toModel()
		if err != nil {
			r.logger.Error().Err(err).Str("item_id", row.ID).Msg("failed to decode item row")
			return nil, 0, fmt.Errorf("failed to decode item: %w", err)
		}
		items = append(items, *item)
	}

	return items, total, nil
}

// Create inserts a new item.
func (r *sqliteItemRepository) Create(ctx context.Context, item *model.Item) error {
	query := `
		INSERT INTO catalog_items (id, name, description, category, price, "inStock", "createdAt", "updatedAt")
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.Name,
		item.Description,
		item.Category,
		item.Price,
		boolToInt(item.InStock),
		formatSQLiteTime(item.CreatedAt),
		formatSQLiteTime(item.UpdatedAt),
	)
	if err != nil {
		r.logger.Error().Err(err).Str("item_id", item.ID).Msg("failed to create item")
		return fmt.Errorf("failed to create item: %w", err)
	}

	r.logger.Debug().Str("item_id", item.ID).Msg("item created")

	return nil
}

// GetByID retrieves a single item by its ID.
func (r *sqliteItemRepository) GetByID(ctx context.Context, id string) (*model.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM catalog_items WHERE id = ?`

	var row sqliteItemRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.logger.Debug().Str("item_id", id).Msg("item not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("item_id", id).Msg("failed to query item")
		return nil, fmt.Errorf("failed to query item: %w", err)
	}

	item, err := row.toModel()
	if err != nil {
		r.logger.Error().Err(err).Str("item_id", id).Msg("failed to decode item row")
		return nil, fmt.Errorf("failed to decode item: %w", err)
	}

	return item, nil
}

// Update applies the patch to the item and refreshes updatedAt.
func (r *sqliteItemRepository) Update(ctx context.Context, id string, patch model.ItemPatch, updatedAt time.Time) error {
	query, args := updateStatement(id, patch, formatSQLiteTime(updatedAt), sqlx.QUESTION)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Str("item_id", id).Msg("failed to update item")
		return fmt.Errorf("failed to update item: %w", err)
	}

	return r.requireAffected(res, id, "update")
}

// Delete removes the item permanently.
func (r *sqliteItemRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM catalog_items WHERE id = ?`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("item_id", id).Msg("failed to delete item")
		return fmt.Errorf("failed to delete item: %w", err)
	}

	return r.requireAffected(res, id, "delete")
}

func (r *sqliteItemRepository) requireAffected(res sql.Result, id, op string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		r.logger.Error().Err(err).Str("item_id", id).Msgf("failed to read rows affected by %s", op)
		return fmt.Errorf("failed to %s item: %w", op, err)
	}

	if affected == 0 {
		r.logger.Debug().Str("item_id", id).Msgf("item not found for %s", op)
		return model.ErrItemNotFound
	}

	return nil
}

func formatSQLiteTime(t time.Time) string {
	return t.UTC().Format(sqliteTimeLayout)
}
