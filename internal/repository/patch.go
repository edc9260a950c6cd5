package repository

import (
	"strings"

	"catalog-service/internal/model"

	"github.com/jmoiron/sqlx"
)

// updateStatement renders the UPDATE for a patch. Present fields are set in
// a fixed order (name, description, category, price, inStock) followed by
// updatedAt; the id is always the last argument.
func updateStatement(id string, patch model.ItemPatch, updatedAt any, bindType int) (string, []any) {
	var (
		sets []string
		args []any
	)

	set := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if patch.Name != nil {
		set("name", *patch.Name)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.Category != nil {
		set("category", *patch.Category)
	}
	if patch.Price != nil {
		set("price", *patch.Price)
	}
	if patch.InStock != nil {
		set(`"inStock"`, boolToInt(*patch.InStock))
	}
	set(`"updatedAt"`, updatedAt)

	args = append(args, id)
	query := "UPDATE catalog_items SET " + strings.Join(sets, ", ") + " WHERE id = ?"

	return sqlx.Rebind(bindType, query), args
}
