package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Radmir675/Divisions-sub000/pkg/apperror"
	"github.com/Radmir675/Divisions-sub000/pkg/logger"
)

// Recover はパニックをリカバーするミドルウェアを返します
func Recover() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error(c.Request().Context(), "panic recovered",
						zap.String("panic", fmt.Sprintf("%v", r)),
						zap.Stack("stack"),
					)
					err = apperror.NewInternalError(fmt.Errorf("panic: %v", r))
				}
			}()

			return next(c)
		}
	}
}
