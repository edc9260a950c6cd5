package repository

import (
	"strings"

	"catalog-service/internal/model"

	"github.com/jmoiron/sqlx"
)

const itemColumns = `id, name, description, category, price, "inStock", "createdAt", "updatedAt"`

// likeEscaper escapes LIKE wildcards so the search text matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// predicate accumulates conditions joined with AND. Conditions are written
// with '?' markers and every value travels as a bound argument.
type predicate struct {
	conditions []string
	args       []any
}

func (p *predicate) and(condition string, args ...any) {
	p.conditions = append(p.conditions, condition)
	p.args = append(p.args, args...)
}

func (p *predicate) String() string {
	return strings.Join(append([]string{"1=1"}, p.conditions...), " AND ")
}

// SearchQuery is the pair of statements derived from a search filter. Both
// statements share the same predicate so the total always matches the page.
type SearchQuery struct {
	where    predicate
	limit    int
	offset   int
	bindType int
}

// NewSearchQuery builds the search predicate for the given filter. bindType
// is one of the sqlx bind types (sqlx.DOLLAR for Postgres, sqlx.QUESTION for
// SQLite).
func NewSearchQuery(filter model.SearchFilter, bindType int) *SearchQuery {
	q := &SearchQuery{
		limit:    filter.PageSize,
		offset:   filter.Offset(),
		bindType: bindType,
	}

	if filter.Query != nil && *filter.Query != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(*filter.Query)) + "%"
		q.where.and(
			`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(COALESCE(description, '')) LIKE ? ESCAPE '\')`,
			pattern, pattern,
		)
	}
	if filter.Category != nil && *filter.Category != "" {
		q.where.and("category = ?", *filter.Category)
	}
	if filter.MinPrice != nil {
		q.where.and("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q.where.and("price <= ?", *filter.MaxPrice)
	}
	if filter.InStock != nil {
		q.where.and(`"inStock" = ?`, boolToInt(*filter.InStock))
	}

	return q
}

// Count returns the statement counting every matching row.
func (q *SearchQuery) Count() (string, []any) {
	query := "SELECT COUNT(*) FROM catalog_items WHERE " + q.where.String()
	return sqlx.Rebind(q.bindType, query), q.where.args
}

// Page returns the statement fetching the requested page of matching rows.
func (q *SearchQuery) Page() (string, []any) {
	query := "SELECT " + itemColumns + " FROM catalog_items WHERE " + q.where.String() +
		` ORDER BY "createdAt", id LIMIT ? OFFSET ?`

	args := make([]any, 0, len(q.where.args)+2)
	args = append(args, q.where.args...)
	args = append(args, q.limit, q.offset)

	return sqlx.Rebind(q.bindType, query), args
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
