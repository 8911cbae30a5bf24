package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/Radmir675/Divisions-sub000/internal/infrastructure/di"
	"github.com/Radmir675/Divisions-sub000/internal/interface/middleware"
	"github.com/Radmir675/Divisions-sub000/internal/interface/router"
	"github.com/Radmir675/Divisions-sub000/internal/interface/validator"
	"github.com/Radmir675/Divisions-sub000/pkg/config"
)

// TestServer holds all test server dependencies
type TestServer struct {
	Echo      *echo.Echo
	Pool      *pgxpool.Pool
	Redis     *redis.Client
	Container *di.Container
}

// NewTestServer creates a fully wired test server backed by the test database and Redis
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	pool, redisClient := SetupTestEnvironment(t)

	cfg := &config.Config{
		Cache:   config.CacheConfig{TTL: time.Minute},
		Cleanup: config.CleanupConfig{RetentionDays: 30, Interval: time.Hour},
	}

	container, err := di.NewContainerWithOptions(context.Background(), cfg, di.Options{
		PostgresPool: pool,
		RedisClient:  redisClient,
	})
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}
	container.InitDepartmentUseCases()

	e := echo.New()
	e.Validator = validator.NewCustomValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler
	e.Use(middleware.RequestID())

	router.NewRouter(e, di.NewHandlersForTest(container), di.NewMiddlewares(container)).Setup()

	return &TestServer{
		Echo:      e,
		Pool:      pool,
		Redis:     redisClient,
		Container: container,
	}
}

// Cleanup clears test data
func (ts *TestServer) Cleanup(t *testing.T) {
	t.Helper()
	TruncateDepartmentTables(t, ts.Pool)
	FlushRedis(t, ts.Redis)
}
