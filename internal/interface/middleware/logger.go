package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Radmir675/Divisions-sub000/internal/infrastructure/metrics"
	"github.com/Radmir675/Divisions-sub000/pkg/logger"
)

// Logger はリクエストロギングミドルウェアを返します
// レイテンシはルート単位でPrometheusにも記録します
func Logger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// ステータスを確定させるためにここでエラーハンドラーを呼ぶ
				c.Error(err)
			}

			latency := time.Since(start)
			status := c.Response().Status
			metrics.ObserveHTTPRequest(c.Request().Method, c.Path(), status, latency)

			logger.Info(c.Request().Context(), "request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", status),
				zap.Int64("latency_ms", latency.Milliseconds()),
				zap.String("ip", c.RealIP()),
				zap.String("user_agent", c.Request().UserAgent()),
				zap.Int64("bytes_out", c.Response().Size),
			)

			return nil
		}
	}
}
