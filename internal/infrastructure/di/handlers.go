package di

import (
	"github.com/Radmir675/Divisions-sub000/internal/interface/handler"
)

// Handlers はアプリケーションのハンドラーを保持します
type Handlers struct {
	Health     *handler.HealthHandler
	Department *handler.DepartmentHandler
}

// NewHandlers はContainerから全てのハンドラーを初期化します
func NewHandlers(c *Container) *Handlers {
	// Health Handler
	healthHandler := handler.NewHealthHandler()
	if c.PgClient != nil {
		healthHandler.RegisterChecker("postgres", c.PgClient)
	}
	if c.RedisClient != nil {
		healthHandler.RegisterChecker("redis", c.RedisClient)
	}

	handlers := NewHandlersForTest(c)
	handlers.Health = healthHandler
	return handlers
}

// NewHandlersForTest はテスト用にハンドラーを初期化します（HealthHandlerなし）
func NewHandlersForTest(c *Container) *Handlers {
	return &Handlers{
		Department: handler.NewDepartmentHandler(
			c.Department.Create,
			c.Department.Rename,
			c.Department.Move,
			c.Department.UpdateLocations,
			c.Department.SoftDelete,
			c.Department.Get,
			c.Department.ListChildren,
		),
	}
}
