package di

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Radmir675/Divisions-sub000/internal/domain/service"
	"github.com/Radmir675/Divisions-sub000/internal/infrastructure/cache"
	"github.com/Radmir675/Divisions-sub000/internal/infrastructure/database"
	"github.com/Radmir675/Divisions-sub000/internal/infrastructure/metrics"
	"github.com/Radmir675/Divisions-sub000/pkg/config"
	"github.com/Radmir675/Divisions-sub000/pkg/logger"
)

// Container はアプリケーションの依存関係を保持するDIコンテナです
type Container struct {
	// Infrastructure
	PgClient    *database.PostgresClient
	RedisClient *cache.RedisClient
	Pool        *pgxpool.Pool
	TxManager   *database.TxManager

	// Services
	Clock            service.Clock
	HierarchyService service.DepartmentHierarchyService
	DepartmentCache  *cache.Cache
	Invalidator      service.DepartmentCacheInvalidator
	RateLimiter      *cache.RateLimiter

	// Department Repositories
	DepartmentRepos *DepartmentRepositories

	// Department UseCases
	Department *DepartmentUseCases

	// config
	config *config.Config
}

// NewContainer は新しいContainerを作成します
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	return NewContainerWithOptions(ctx, cfg, Options{})
}

// NewContainerWithOptions はオプションを指定してContainerを作成します
func NewContainerWithOptions(ctx context.Context, cfg *config.Config, opts Options) (*Container, error) {
	c := &Container{
		config: cfg,
	}

	// PostgreSQL
	if opts.PostgresPool != nil {
		c.Pool = opts.PostgresPool
	} else {
		logger.Info(ctx, "connecting to PostgreSQL...")
		dbConfig := database.DefaultDBConfig()
		dbConfig.LockTimeout = cfg.Database.LockTimeout
		pgClient, err := database.NewPostgresClientWithConfig(ctx, cfg.Database.URL, dbConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		c.PgClient = pgClient
		c.Pool = pgClient.Pool()
		if err := metrics.RegisterPoolStats(pgClient.Stats); err != nil {
			logger.Warn(ctx, "failed to register pool metrics", zap.Error(err))
		}
		logger.Info(ctx, "connected to PostgreSQL")
	}
	c.TxManager = database.NewTxManager(c.Pool)

	if cfg.Database.Migrate {
		if err := database.Migrate(ctx, c.Pool); err != nil {
			c.Close()
			return nil, err
		}
	}

	// Redis
	var redisClient redis.UniversalClient
	if opts.RedisClient != nil {
		redisClient = opts.RedisClient
	} else {
		logger.Info(ctx, "connecting to Redis...")
		client, err := cache.NewRedisClient(ctx, cache.DefaultConfig(cfg.Redis.URL))
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		c.RedisClient = client
		redisClient = client.Client()
		logger.Info(ctx, "connected to Redis")
	}

	// Services
	c.Clock = opts.Clock
	if c.Clock == nil {
		c.Clock = service.NewSystemClock()
	}
	c.HierarchyService = service.NewDepartmentHierarchyService()
	c.DepartmentCache = cache.NewCache(redisClient, cache.DepartmentNamespace, cfg.Cache.TTL)
	c.Invalidator = cache.NewDepartmentCacheInvalidator(c.DepartmentCache)
	c.RateLimiter = cache.NewRateLimiter(redisClient)

	// Repositories
	c.DepartmentRepos = NewDepartmentRepositories(c.TxManager)

	return c, nil
}

// InitDepartmentUseCases はDepartment UseCasesを初期化します
func (c *Container) InitDepartmentUseCases() {
	c.Department = NewDepartmentUseCases(
		c.DepartmentRepos,
		c.TxManager,
		c.HierarchyService,
		c.Clock,
		c.Invalidator,
		c.DepartmentCache,
	)
}

// Close はリソースをクリーンアップします
func (c *Container) Close() error {
	var errs []error

	if c.PgClient != nil {
		c.PgClient.Close()
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if len(errs) > 0 {
		zap.L().Warn("errors during container close", zap.Errors("errors", errs))
		return fmt.Errorf("errors during close: %v", errs)
	}
	return nil
}

// Options はContainer作成時のオプションを定義します
type Options struct {
	PostgresPool *pgxpool.Pool
	RedisClient  redis.UniversalClient
	Clock        service.Clock
}
