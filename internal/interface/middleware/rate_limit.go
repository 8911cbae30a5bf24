package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Radmir675/Divisions-sub000/internal/infrastructure/cache"
	"github.com/Radmir675/Divisions-sub000/pkg/apperror"
	"github.com/Radmir675/Divisions-sub000/pkg/logger"
)

// RateLimiter はレート制限のチェックを行うインターフェースです
type RateLimiter interface {
	Allow(ctx context.Context, identifier string, config cache.RateLimitConfig) (*cache.RateLimitResult, error)
}

// DepartmentWriteLimit は部門の更新系APIのレート制限タイプです
const DepartmentWriteLimit = "department:write"

// RateLimitMiddleware はレート制限ミドルウェアを提供します
type RateLimitMiddleware struct {
	limiter RateLimiter
}

// NewRateLimitMiddleware は新しいRateLimitMiddlewareを作成します
func NewRateLimitMiddleware(limiter RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter}
}

// ByIP はIPアドレスでレート制限するミドルウェアを返します
// 制限が無効な設定の場合は何もしません
func (m *RateLimitMiddleware) ByIP(config cache.RateLimitConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if !config.Enabled() {
			return next
		}
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			result, err := m.limiter.Allow(ctx, c.RealIP(), config)
			if err != nil {
				// Redis障害時はリクエストを通す
				logger.Warn(ctx, "rate limit check failed", zap.Error(err))
				return next(c)
			}

			setRateLimitHeaders(c, result)
			if !result.Allowed {
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(time.Until(result.ResetAt).Seconds())+1))
				return apperror.NewTooManyRequestsError("rate limit exceeded")
			}
			return next(c)
		}
	}
}

func setRateLimitHeaders(c echo.Context, result *cache.RateLimitResult) {
	c.Response().Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	c.Response().Header().Set("X-RateLimit-Reset", result.ResetAt.UTC().Format(time.RFC3339))
}
