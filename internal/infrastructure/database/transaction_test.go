package database_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Radmir675/Divisions-sub000/internal/infrastructure/database"
	"github.com/Radmir675/Divisions-sub000/pkg/apperror"
	"github.com/Radmir675/Divisions-sub000/tests/testutil"
)

func TestMain(m *testing.M) {
	code := m.Run()
	testutil.CleanupTestEnvironment()
	os.Exit(code)
}

func countLocations(t *testing.T, pool *pgxpool.Pool) int {
	t.Helper()
	var n int
	require.NoError(t, pool.QueryRow(context.Background(), `SELECT COUNT(*) FROM locations`).Scan(&n))
	return n
}

func insertLocation(ctx context.Context, q database.Querier) error {
	_, err := q.Exec(ctx, `INSERT INTO locations (id, name) VALUES ($1, 'Office')`, uuid.New())
	return err
}

func TestTxManager_WithTransaction(t *testing.T) {
	pool, _ := testutil.SetupTestEnvironment(t)
	testutil.TruncateDepartmentTables(t, pool)
	txManager := database.NewTxManager(pool)
	ctx := context.Background()

	t.Run("commit on success", func(t *testing.T) {
		err := txManager.WithTransaction(ctx, func(ctx context.Context) error {
			assert.True(t, txManager.InTransaction(ctx))
			return insertLocation(ctx, txManager.GetQuerier(ctx))
		})
		require.NoError(t, err)
		assert.Equal(t, 1, countLocations(t, pool))
	})

	t.Run("rollback on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := txManager.WithTransaction(ctx, func(ctx context.Context) error {
			if err := insertLocation(ctx, txManager.GetQuerier(ctx)); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, countLocations(t, pool))
	})

	t.Run("nested call reuses the outer transaction", func(t *testing.T) {
		boom := errors.New("boom")
		err := txManager.WithTransaction(ctx, func(outer context.Context) error {
			if err := txManager.WithTransaction(outer, func(inner context.Context) error {
				return insertLocation(inner, txManager.GetQuerier(inner))
			}); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, countLocations(t, pool))
	})
}

func TestPostgresClient_LockTimeout(t *testing.T) {
	pool, _ := testutil.SetupTestEnvironment(t)
	testutil.TruncateDepartmentTables(t, pool)
	id := testutil.SeedLocation(t, pool, "Locked")
	ctx := context.Background()

	cfg := database.DefaultDBConfig()
	cfg.LockTimeout = 200 * time.Millisecond
	client, err := database.NewPostgresClientWithConfig(ctx, testutil.DefaultTestConfig().DatabaseURL, cfg)
	require.NoError(t, err)
	defer client.Close()

	holder, err := pool.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = holder.Rollback(ctx) }()
	_, err = holder.Exec(ctx, `SELECT id FROM locations WHERE id = $1 FOR UPDATE`, id)
	require.NoError(t, err)

	txManager := database.NewTxManager(client.Pool())
	base := database.NewBaseRepository(txManager)

	start := time.Now()
	err = txManager.WithTransaction(ctx, func(ctx context.Context) error {
		_, err := base.Querier(ctx).Exec(ctx, `SELECT id FROM locations WHERE id = $1 FOR UPDATE`, id)
		return base.HandleError(err)
	})

	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.ErrorIs(t, err, database.ErrLockFailed)
	assert.Equal(t, apperror.CodeInternalError, apperror.CodeOf(err))
}
