package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Radmir675/Divisions-sub000/internal/infrastructure/di"
	"github.com/Radmir675/Divisions-sub000/internal/infrastructure/worker"
	"github.com/Radmir675/Divisions-sub000/internal/interface/middleware"
	"github.com/Radmir675/Divisions-sub000/internal/interface/router"
	"github.com/Radmir675/Divisions-sub000/internal/interface/server"
	"github.com/Radmir675/Divisions-sub000/internal/interface/validator"
	"github.com/Radmir675/Divisions-sub000/pkg/config"
	"github.com/Radmir675/Divisions-sub000/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Logger setup（設定読み込み前はデフォルト設定で出力する）
	log, err := logger.Setup(logger.DefaultConfig())
	if err != nil {
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}

	logCfg := logger.DefaultConfig()
	logCfg.Level = cfg.Log.Level
	logCfg.Format = cfg.Log.Format
	if log, err = logger.Setup(logCfg); err != nil {
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	// Initialize DI Container
	container, err := di.NewContainer(ctx, cfg)
	if err != nil {
		log.Fatal("failed to initialize container", zap.Error(err))
	}
	defer container.Close()

	// Initialize UseCases and Handlers
	container.InitDepartmentUseCases()
	handlers := di.NewHandlers(container)

	// Setup Server
	serverConfig := server.DefaultConfig()
	serverConfig.Port = cfg.Server.Port
	serverConfig.Debug = cfg.Server.Debug
	srv := server.NewServer(serverConfig, log)
	e := srv.Echo()

	e.Validator = validator.NewCustomValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	// Global middleware
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.SecurityHeaders(middleware.SecurityHeadersConfig{EnableHSTS: cfg.Security.EnableHSTS}))
	e.Use(middleware.CORS(cfg.Security.CORSOrigins))

	router.NewRouter(e, handlers, di.NewMiddlewares(container)).Setup()

	// Background workers
	workerMgr := worker.NewManager(log)
	workerMgr.Register(worker.NewDepartmentCleanupJob(container.Department.CleanupFunc(), worker.DepartmentCleanupJobConfig{
		Interval:  cfg.Cleanup.Interval,
		Retention: cfg.Cleanup.Retention(),
	}))
	if container.PgClient != nil {
		workerMgr.Register(worker.NewHealthCheckJob("postgres", container.PgClient.Health))
	}
	workerMgr.Start()

	if err := srv.Run(ctx); err != nil {
		log.Error("server error", zap.Error(err))
	}

	workerMgr.Shutdown(10 * time.Second)
	log.Info("server stopped")
}
