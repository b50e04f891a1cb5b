package repository

import (
	"context"
	"testing"
	"time"

	"price-scout/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL testcontainer and returns a connection pool.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	ctx := context.Background()

	// Start PostgreSQL container
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	// Get connection string
	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Create connection pool
	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	// Create schema
	createSchema(t, pool)

	// Cleanup function
	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

// createSchema creates the necessary database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
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
	require.NoError(t, err)
}

func newCategory(userID *uuid.UUID, value string) *model.Category {
	return &model.Category{
		ID:           uuid.New(),
		Value:        value,
		Label:        value,
		DefaultUnit:  "m",
		AllowedUnits: []string{"m", "cm", "roll"},
		UserID:       userID,
		CreatedAt:    time.Now().UTC(),
	}
}

func newStore(userID uuid.UUID, name string) *model.Store {
	now := time.Now().UTC()
	return &model.Store{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newObservation(userID, storeID, categoryID uuid.UUID, unitPrice float64, createdAt time.Time) *model.Observation {
	return &model.Observation{
		ID:         uuid.New(),
		UserID:     userID,
		StoreID:    storeID,
		CategoryID: categoryID,
		Quantity:   1,
		Unit:       "m",
		PackCount:  1,
		Price:      unitPrice,
		UnitPrice:  unitPrice,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
}

func TestCategoryRepository(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	logger := zerolog.Nop()
	repo := NewCategoryRepository(pool, logger)

	userID := uuid.New()
	otherUserID := uuid.New()

	global := newCategory(nil, "wrap")
	custom := newCategory(&userID, "cat_litter")
	foreign := newCategory(&otherUserID, "bird_seed")

	t.Run("create and fetch by ID", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, global))
		require.NoError(t, repo.Create(ctx, custom))
		require.NoError(t, repo.Create(ctx, foreign))

		got, err := repo.GetByID(ctx, custom.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, custom.Value, got.Value)
		assert.Equal(t, custom.AllowedUnits, got.AllowedUnits)
		require.NotNil(t, got.UserID)
		assert.Equal(t, userID, *got.UserID)
	})

	t.Run("GetByID returns nil for unknown category", func(t *testing.T) {
		got, err := repo.GetByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("GetAllForUser sees global and own but not foreign", func(t *testing.T) {
		categories, err := repo.GetAllForUser(ctx, userID)
		require.NoError(t, err)
		require.Len(t, categories, 2)

		values := []string{categories[0].Value, categories[1].Value}
		assert.Contains(t, values, "wrap")
		assert.Contains(t, values, "cat_litter")
	})

	t.Run("GetByValue finds global and custom rows", func(t *testing.T) {
		got, err := repo.GetByValue(ctx, userID, "wrap")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, got.IsGlobal())

		got, err = repo.GetByValue(ctx, userID, "cat_litter")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.False(t, got.IsGlobal())

		got, err = repo.GetByValue(ctx, userID, "bird_seed")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("CreateGlobalIfMissing is idempotent", func(t *testing.T) {
		duplicate := newCategory(nil, "wrap")
		inserted, err := repo.CreateGlobalIfMissing(ctx, duplicate)
		require.NoError(t, err)
		assert.False(t, inserted)

		fresh := newCategory(nil, "tissue")
		inserted, err = repo.CreateGlobalIfMissing(ctx, fresh)
		require.NoError(t, err)
		assert.True(t, inserted)
	})

	t.Run("UpdateAllowedUnits replaces the unit set", func(t *testing.T) {
		units := []string{"m", "cm", "roll", "piece"}
		require.NoError(t, repo.UpdateAllowedUnits(ctx, custom.ID, units))

		got, err := repo.GetByID(ctx, custom.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, units, got.AllowedUnits)
	})

	t.Run("UpdateAllowedUnits on unknown category fails", func(t *testing.T) {
		err := repo.UpdateAllowedUnits(ctx, uuid.New(), []string{"m"})
		assert.Equal(t, model.ErrCategoryNotFound, err)
	})
}

func TestStoreRepository(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	logger := zerolog.Nop()
	storeRepo := NewStoreRepository(pool, logger)
	categoryRepo := NewCategoryRepository(pool, logger)
	observationRepo := NewObservationRepository(pool, logger)

	userID := uuid.New()
	store := newStore(userID, "Corner Market")

	t.Run("create and list", func(t *testing.T) {
		require.NoError(t, storeRepo.Create(ctx, store))
		require.NoError(t, storeRepo.Create(ctx, newStore(uuid.New(), "Someone Elses Shop")))

		stores, err := storeRepo.GetAllForUser(ctx, userID)
		require.NoError(t, err)
		require.Len(t, stores, 1)
		assert.Equal(t, "Corner Market", stores[0].Name)
	})

	t.Run("update", func(t *testing.T) {
		location := "Main St"
		store.Name = "Corner Market East"
		store.Location = &location
		store.UpdatedAt = time.Now().UTC()
		require.NoError(t, storeRepo.Update(ctx, store))

		got, err := storeRepo.GetByID(ctx, store.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Corner Market East", got.Name)
		require.NotNil(t, got.Location)
		assert.Equal(t, "Main St", *got.Location)
	})

	t.Run("update of unknown store fails", func(t *testing.T) {
		missing := newStore(userID, "Ghost Shop")
		assert.Equal(t, model.ErrStoreNotFound, storeRepo.Update(ctx, missing))
	})

	t.Run("delete cascades observations", func(t *testing.T) {
		category := newCategory(nil, "wrap")
		require.NoError(t, categoryRepo.Create(ctx, category))

		obs := newObservation(userID, store.ID, category.ID, 5.00, time.Now().UTC())
		require.NoError(t, observationRepo.Create(ctx, obs))

		require.NoError(t, storeRepo.Delete(ctx, store.ID))

		got, err := observationRepo.GetByID(ctx, obs.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("delete of unknown store fails", func(t *testing.T) {
		assert.Equal(t, model.ErrStoreNotFound, storeRepo.Delete(ctx, uuid.New()))
	})
}

func TestObservationRepository(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	logger := zerolog.Nop()
	storeRepo := NewStoreRepository(pool, logger)
	categoryRepo := NewCategoryRepository(pool, logger)
	repo := NewObservationRepository(pool, logger)

	userID := uuid.New()
	store := newStore(userID, "Corner Market")
	wrap := newCategory(nil, "wrap")
	tissue := newCategory(nil, "tissue")
	require.NoError(t, storeRepo.Create(ctx, store))
	require.NoError(t, categoryRepo.Create(ctx, wrap))
	require.NoError(t, categoryRepo.Create(ctx, tissue))

	base := time.Now().UTC().Add(-time.Hour)
	older := newObservation(userID, store.ID, wrap.ID, 5.00, base)
	newer := newObservation(userID, store.ID, wrap.ID, 6.00, base.Add(10*time.Minute))
	unpriced := newObservation(userID, store.ID, wrap.ID, 0, base.Add(20*time.Minute))
	otherCategory := newObservation(userID, store.ID, tissue.ID, 1.00, base.Add(30*time.Minute))

	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))
	require.NoError(t, repo.Create(ctx, unpriced))
	require.NoError(t, repo.Create(ctx, otherCategory))

	t.Run("GetAllForUser returns newest first", func(t *testing.T) {
		observations, err := repo.GetAllForUser(ctx, userID)
		require.NoError(t, err)
		require.Len(t, observations, 4)
		assert.Equal(t, otherCategory.ID, observations[0].ID)
		assert.Equal(t, older.ID, observations[3].ID)
	})

	t.Run("GetByCategory filters to one category", func(t *testing.T) {
		observations, err := repo.GetByCategory(ctx, userID, wrap.ID)
		require.NoError(t, err)
		require.Len(t, observations, 3)
		for _, o := range observations {
			assert.Equal(t, wrap.ID, o.CategoryID)
		}
	})

	t.Run("cheapest ignores rows without computable unit price", func(t *testing.T) {
		got, err := repo.GetCheapestByCategory(ctx, userID, wrap.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, older.ID, got.ID)
		assert.Equal(t, 5.00, got.UnitPrice)
	})

	t.Run("cheapest tie-breaks to the oldest row", func(t *testing.T) {
		tied := newObservation(userID, store.ID, wrap.ID, 5.00, base.Add(40*time.Minute))
		require.NoError(t, repo.Create(ctx, tied))

		got, err := repo.GetCheapestByCategory(ctx, userID, wrap.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, older.ID, got.ID)

		require.NoError(t, repo.Delete(ctx, tied.ID))
	})

	t.Run("cheapest is nil when no eligible rows exist", func(t *testing.T) {
		got, err := repo.GetCheapestByCategory(ctx, uuid.New(), wrap.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("update rewrites mutable fields", func(t *testing.T) {
		newer.Quantity = 20
		newer.Price = 90
		newer.UnitPrice = 4.50
		newer.UpdatedAt = time.Now().UTC()
		require.NoError(t, repo.Update(ctx, newer))

		got, err := repo.GetByID(ctx, newer.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 20.0, got.Quantity)
		assert.Equal(t, 4.50, got.UnitPrice)
	})

	t.Run("delete removes the row", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, unpriced.ID))
		assert.Equal(t, model.ErrObservationNotFound, repo.Delete(ctx, unpriced.ID))
	})
}

func TestComparisonRepository(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	logger := zerolog.Nop()
	categoryRepo := NewCategoryRepository(pool, logger)
	repo := NewComparisonRepository(pool, logger)

	userID := uuid.New()
	wrap := newCategory(nil, "wrap")
	require.NoError(t, categoryRepo.Create(ctx, wrap))

	record := func(cheaper bool, amount, percent float64, createdAt time.Time) *model.Comparison {
		return &model.Comparison{
			ID:               uuid.New(),
			UserID:           userID,
			CategoryID:       wrap.ID,
			CurrentQuantity:  30,
			CurrentPackCount: 1,
			CurrentPrice:     150,
			CurrentUnitPrice: 5.00,
			IsCurrentCheaper: cheaper,
			SavingsAmount:    amount,
			SavingsPercent:   percent,
			CreatedAt:        createdAt,
		}
	}

	base := time.Now().UTC().Add(-time.Hour)
	first := record(true, 0.50, 10.00, base)
	second := record(false, -1.00, 20.00, base.Add(time.Minute))
	third := record(true, 1.50, 30.00, base.Add(2*time.Minute))

	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, third))

	t.Run("GetAllForUser paginates newest first", func(t *testing.T) {
		comparisons, err := repo.GetAllForUser(ctx, userID, 2, 0)
		require.NoError(t, err)
		require.Len(t, comparisons, 2)
		assert.Equal(t, third.ID, comparisons[0].ID)
		assert.Equal(t, second.ID, comparisons[1].ID)

		comparisons, err = repo.GetAllForUser(ctx, userID, 2, 2)
		require.NoError(t, err)
		require.Len(t, comparisons, 1)
		assert.Equal(t, first.ID, comparisons[0].ID)
	})

	t.Run("GetStats aggregates good deals", func(t *testing.T) {
		stats, err := repo.GetStats(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 3, stats.TotalComparisons)
		assert.Equal(t, 2, stats.GoodDealsFound)
		require.NotNil(t, stats.AvgSavingsPercent)
		assert.InDelta(t, 20.00, *stats.AvgSavingsPercent, 0.001)
		assert.InDelta(t, 2.00, stats.TotalPotentialSavings, 0.001)
	})

	t.Run("GetStats is empty for unknown user", func(t *testing.T) {
		stats, err := repo.GetStats(ctx, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, 0, stats.TotalComparisons)
		assert.Nil(t, stats.AvgSavingsPercent)
		assert.Equal(t, 0.0, stats.TotalPotentialSavings)
	})
}
