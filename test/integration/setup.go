package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"catalog-service/internal/config"
	"catalog-service/internal/database"
	"catalog-service/internal/model"
	"catalog-service/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool with
// the catalog schema in place.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	testDB, err := startTestDB(t)
	if err != nil {
		t.Fatalf("%v", err)
	}
	return testDB
}

// startTestDB is SetupTestDB without failing the test, so callers can carry on
// with other backends when no container runtime is available.
func startTestDB(t *testing.T) (*TestDB, error) {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if postgresContainer != nil {
		t.Cleanup(func() {
			if err := postgresContainer.Terminate(ctx); err != nil {
				t.Logf("failed to terminate container: %v", err)
			}
		})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	host, err := postgresContainer.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := postgresContainer.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	dbConfig := config.DatabaseConfig{
		Driver:          config.DriverPostgres,
		Host:            host,
		Port:            port.Int(),
		User:            "testuser",
		Password:        "testpass",
		Database:        "testdb",
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
	}

	pool, err := database.NewPool(ctx, dbConfig, zerolog.Nop())
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	t.Cleanup(pool.Close)

	if err := database.EnsureSchema(ctx, pool); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}, nil
}

// SetupSQLiteDB opens a private in-memory SQLite database with the catalog schema.
func SetupSQLiteDB(t *testing.T) *sqlx.DB {
	t.Helper()

	ctx := context.Background()

	db, err := database.OpenSQLite(ctx, config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: ":memory:",
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.EnsureSQLiteSchema(ctx, db); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	return db
}

// Backend is one storage implementation under test.
type Backend struct {
	Name    string
	Repo    repository.ItemRepository
	Cleanup func(t *testing.T)
}

// Backends returns every storage implementation, each backed by a fresh store.
// PostgreSQL is left out when its container cannot be started.
func Backends(t *testing.T) []Backend {
	t.Helper()

	logger := zerolog.Nop()

	sqliteDB := SetupSQLiteDB(t)
	backends := []Backend{
		{
			Name: "sqlite",
			Repo: repository.NewSQLiteItemRepository(sqliteDB, logger),
			Cleanup: func(t *testing.T) {
				if _, err := sqliteDB.Exec("DELETE FROM catalog_items"); err != nil {
					t.Logf("failed to clean catalog_items: %v", err)
				}
			},
		},
	}

	testDB, err := startTestDB(t)
	if err != nil {
		t.Logf("skipping postgres backend: %v", err)
		return backends
	}

	return append(backends, Backend{
		Name: "postgres",
		Repo: repository.NewItemRepository(testDB.Pool, logger),
		Cleanup: func(t *testing.T) {
			if _, err := testDB.Pool.Exec(context.Background(), "DELETE FROM catalog_items"); err != nil {
				t.Logf("failed to clean catalog_items: %v", err)
			}
		},
	})
}

// SampleItem describes a test item without storage-assigned fields.
type SampleItem struct {
	Name        string
	Description *string
	Category    string
	Price       float64
	InStock     bool
}

// SeedItems inserts the samples one second apart, in order, and returns the
// stored items.
func SeedItems(t *testing.T, repo repository.ItemRepository, samples []SampleItem) []model.Item {
	t.Helper()

	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	items := make([]model.Item, 0, len(samples))
	for i, s := range samples {
		ts := base.Add(time.Duration(i) * time.Second)
		item := model.Item{
			ID:          uuid.New().String(),
			Name:        s.Name,
			Description: s.Description,
			Category:    s.Category,
			Price:       s.Price,
			InStock:     s.InStock,
			CreatedAt:   ts,
			UpdatedAt:   ts,
		}
		if err := repo.Create(ctx, &item); err != nil {
			t.Fatalf("failed to seed item %s: %v", s.Name, err)
		}
		items = append(items, item)
	}

	return items
}

func strPtr(s string) *string { return &s }

// DefaultSamples is a small catalog spanning several categories and prices.
var DefaultSamples = []SampleItem{
	{Name: "Wireless Earbuds", Description: strPtr("True wireless earbuds with noise cancellation"), Category: "Electronics", Price: 199.99, InStock: false},
	{Name: "Smartphone", Description: strPtr("Flagship phone"), Category: "Electronics", Price: 699.99, InStock: true},
	{Name: "Gaming Laptop", Description: strPtr("15.6-inch gaming LAPTOP"), Category: "Electronics", Price: 999.99, InStock: true},
	{Name: "Data Science Fundamentals", Category: "Books", Price: 39.99, InStock: false},
	{Name: "100% Cotton Shirt", Description: strPtr("Shirt_with_underscores"), Category: "Clothing", Price: 29.5, InStock: true},
	{Name: "Coffee Maker", Description: strPtr("Programmable coffee maker"), Category: "Home & Kitchen", Price: 79.99, InStock: true},
}
