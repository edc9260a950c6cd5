package database

// PostgresSchema is the catalog_items table for PostgreSQL. Column names keep
// their camelCase spelling, so they are quoted.
const PostgresSchema = `
	CREATE TABLE IF NOT EXISTS catalog_items (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT,
		category    TEXT NOT NULL,
		price       DOUBLE PRECISION NOT NULL CHECK (price >= 0),
		"inStock"   SMALLINT NOT NULL CHECK ("inStock" IN (0, 1)),
		"createdAt" TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		"updatedAt" TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_catalog_items_category ON catalog_items(category);
	CREATE INDEX IF NOT EXISTS idx_catalog_items_created_at ON catalog_items("createdAt", id);
`

// SQLiteSchema is the catalog_items table for SQLite. Timestamps are stored
// as fixed-width RFC 3339 text.
const SQLiteSchema = `
	CREATE TABLE IF NOT EXISTS catalog_items (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT,
		category    TEXT NOT NULL,
		price       REAL NOT NULL CHECK (price >= 0),
		"inStock"   INTEGER NOT NULL CHECK ("inStock" IN (0, 1)),
		"createdAt" TEXT NOT NULL,
		"updatedAt" TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_catalog_items_category ON catalog_items(category);
	CREATE INDEX IF NOT EXISTS idx_catalog_items_created_at ON catalog_items("createdAt", id);
`
