package di

import (
	"time"

	"github.com/Radmir675/Divisions-sub000/internal/infrastructure/cache"
	"github.com/Radmir675/Divisions-sub000/internal/interface/middleware"
)

// Middlewares はルート単位で適用するミドルウェアを保持します
type Middlewares struct {
	RateLimit  *middleware.RateLimitMiddleware
	WriteLimit cache.RateLimitConfig
}

// NewMiddlewares はContainerからミドルウェアを初期化します
func NewMiddlewares(c *Container) *Middlewares {
	return &Middlewares{
		RateLimit:  middleware.NewRateLimitMiddleware(c.RateLimiter),
		WriteLimit: cache.RateLimitConfig{
			Type:     middleware.DepartmentWriteLimit,
			Requests: c.config.RateLimit.WritesPerMinute,
			Window:   time.Minute,
		},
	}
}
