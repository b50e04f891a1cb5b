package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"price-scout/internal/config"
	"price-scout/internal/database"
	"price-scout/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
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

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
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
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	// Create connection pool
	dbConfig := config.DatabaseConfig{
		Host:            "localhost",
		Port:            5432,
		User:            "testuser",
		Password:        "testpass",
		Database:        "testdb",
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
	}

	logger := zerolog.Nop()
	pool, err := database.NewPool(ctx, dbConfig, logger)
	if err != nil {
		// Try with connection string directly
		poolConfig, parseErr := pgxpool.ParseConfig(connStr)
		if parseErr != nil {
			t.Fatalf("failed to parse connection string: %v", parseErr)
		}
		pool, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			t.Fatalf("failed to create connection pool: %v", err)
		}
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	// Create schema
	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS categories (
			id UUID PRIMARY KEY,
			value TEXT NOT NULL,
			label TEXT NOT NULL,
			default_unit TEXT NOT NULL,
			allowed_units TEXT[] NOT NULL,
			user_id UUID,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_global_value
			ON categories(value) WHERE user_id IS NULL;
		CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_user_value
			ON categories(user_id, value) WHERE user_id IS NOT NULL;

		CREATE TABLE IF NOT EXISTS stores (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			name TEXT NOT NULL,
			location TEXT,
			notes TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS observations (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			store_id UUID NOT NULL REFERENCES stores(id) ON DELETE CASCADE,
			category_id UUID NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
			name TEXT,
			quantity DOUBLE PRECISION NOT NULL,
			unit TEXT NOT NULL,
			pack_count INTEGER NOT NULL,
			price DOUBLE PRECISION NOT NULL,
			unit_price DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_observations_user_category
			ON observations(user_id, category_id);

		CREATE TABLE IF NOT EXISTS comparisons (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			category_id UUID NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
			current_name TEXT,
			current_quantity DOUBLE PRECISION NOT NULL,
			current_pack_count INTEGER NOT NULL,
			current_price DOUBLE PRECISION NOT NULL,
			current_unit_price DOUBLE PRECISION NOT NULL,
			cheapest_id UUID REFERENCES observations(id) ON DELETE SET NULL,
			is_current_cheaper BOOLEAN NOT NULL,
			savings_amount DOUBLE PRECISION NOT NULL,
			savings_percent DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_comparisons_user
			ON comparisons(user_id, created_at DESC);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// SeedCategory inserts a category row and returns it. A nil userID
// creates a global category.
func SeedCategory(t *testing.T, pool *pgxpool.Pool, userID *uuid.UUID, value, defaultUnit string, allowedUnits []string) *model.Category {
	t.Helper()

	category := &model.Category{
		ID:           uuid.New(),
		Value:        value,
		Label:        value,
		DefaultUnit:  defaultUnit,
		AllowedUnits: allowedUnits,
		UserID:       userID,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO categories (id, value, label, default_unit, allowed_units, user_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		category.ID, category.Value, category.Label, category.DefaultUnit,
		category.AllowedUnits, category.UserID, category.CreatedAt,
	)
	if err != nil {
		t.Fatalf("failed to seed category %s: %v", value, err)
	}

	return category
}

// SeedStore inserts a store row for the given user and returns it.
func SeedStore(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, name string) *model.Store {
	t.Helper()

	now := time.Now().UTC()
	store := &model.Store{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO stores (id, user_id, name, location, notes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		store.ID, store.UserID, store.Name, store.Location, store.Notes,
		store.CreatedAt, store.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to seed store %s: %v", name, err)
	}

	return store
}

// SeedObservation inserts an observation row and returns it. UnitPrice
// is stored as given so tests can place sentinel rows directly.
func SeedObservation(t *testing.T, pool *pgxpool.Pool, userID, storeID, categoryID uuid.UUID, quantity float64, unit string, packCount int, price, unitPrice float64) *model.Observation {
	t.Helper()

	now := time.Now().UTC()
	obs := &model.Observation{
		ID:         uuid.New(),
		UserID:     userID,
		StoreID:    storeID,
		CategoryID: categoryID,
		Quantity:   quantity,
		Unit:       unit,
		PackCount:  packCount,
		Price:      price,
		UnitPrice:  unitPrice,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO observations (id, user_id, store_id, category_id, name, quantity, unit, pack_count, price, unit_price, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		obs.ID, obs.UserID, obs.StoreID, obs.CategoryID, obs.Name,
		obs.Quantity, obs.Unit, obs.PackCount, obs.Price, obs.UnitPrice,
		obs.CreatedAt, obs.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to seed observation: %v", err)
	}

	return obs
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"comparisons", "observations", "stores", "categories"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
