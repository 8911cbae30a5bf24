package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Radmir675/Divisions-sub000/pkg/logger"
)

// readyCheckTimeout は依存サービス1件あたりのチェック上限です
const readyCheckTimeout = 2 * time.Second

// HealthChecker はヘルスチェックを実行するインターフェースです
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthHandler はライブネス・レディネスのHTTPハンドラーです
type HealthHandler struct {
	checkers map[string]HealthChecker
}

// NewHealthHandler は新しいHealthHandlerを作成します
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{checkers: make(map[string]HealthChecker)}
}

// RegisterChecker は依存サービスのチェッカーを登録します
func (h *HealthHandler) RegisterChecker(name string, checker HealthChecker) {
	h.checkers[name] = checker
}

// ReadyResponse はレディネスチェックレスポンスです
type ReadyResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services,omitempty"`
}

// Check はプロセスが応答できるかだけを返します
// GET /health
func (h *HealthHandler) Check(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Ready はPostgreSQLとRedisへの疎通を並行に確認します
// Redisは読み取りキャッシュ専用なので、失敗しても劣化扱いで200を返します
// GET /ready
func (h *HealthHandler) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readyCheckTimeout)
	defer cancel()

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		services = make(map[string]string, len(h.checkers))
		failed   []string
	)
	for name, checker := range h.checkers {
		wg.Add(1)
		go func(name string, checker HealthChecker) {
			defer wg.Done()
			err := checker.Health(ctx)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.Warn(ctx, "readiness check failed", zap.String("service", name), zap.Error(err))
				services[name] = "unhealthy"
				failed = append(failed, name)
				return
			}
			services[name] = "healthy"
		}(name, checker)
	}
	wg.Wait()

	status, code := "ready", http.StatusOK
	for _, name := range failed {
		if name != "redis" {
			status, code = "not_ready", http.StatusServiceUnavailable
			break
		}
		status = "degraded"
	}

	return c.JSON(code, ReadyResponse{Status: status, Services: services})
}
