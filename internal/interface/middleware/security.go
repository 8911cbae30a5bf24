package middleware

import (
	"github.com/labstack/echo/v4"
)

// SecurityHeadersConfig はセキュリティヘッダー設定を定義します
type SecurityHeadersConfig struct {
	EnableHSTS bool
}

// SecurityHeaders はJSON APIに必要なセキュリティヘッダーを設定するミドルウェアを返します
func SecurityHeaders(cfg SecurityHeadersConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
			h.Set("Referrer-Policy", "no-referrer")

			// 本番環境のみ
			if cfg.EnableHSTS {
				h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			return next(c)
		}
	}
}
