package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// CORS はCORSミドルウェアを返します
// 認証情報を扱わないAPIなのでAllowCredentialsは無効です
func CORS(allowOrigins []string) echo.MiddlewareFunc {
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"*"}
	}
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: allowOrigins,
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders:  []string{echo.HeaderContentType, HeaderRequestID},
		ExposeHeaders: []string{HeaderRequestID, "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:        86400,
	})
}
