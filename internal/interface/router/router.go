package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Radmir675/Divisions-sub000/internal/infrastructure/di"
	"github.com/Radmir675/Divisions-sub000/internal/interface/presenter"
)

// Router はルート定義を管理します
type Router struct {
	echo        *echo.Echo
	handlers    *di.Handlers
	middlewares *di.Middlewares
}

// NewRouter は新しいRouterを作成します
func NewRouter(e *echo.Echo, handlers *di.Handlers, middlewares *di.Middlewares) *Router {
	return &Router{
		echo:        e,
		handlers:    handlers,
		middlewares: middlewares,
	}
}

// Setup は全てのルートを設定します
func (r *Router) Setup() {
	r.setupHealthRoutes()
	r.setupAPIRoutes()
}

// setupHealthRoutes はヘルスチェックとメトリクスのルートを設定します
func (r *Router) setupHealthRoutes() {
	r.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	if r.handlers.Health == nil {
		return
	}
	r.echo.GET("/health", r.handlers.Health.Check)
	r.echo.GET("/ready", r.handlers.Health.Ready)
}

// setupAPIRoutes はAPIルートを設定します
func (r *Router) setupAPIRoutes() {
	api := r.echo.Group("/api/v1")

	api.GET("/", func(c echo.Context) error {
		return presenter.OK(c, map[string]string{
			"message": "Divisions API v1",
		})
	})

	r.setupDepartmentRoutes(api)
}

// setupDepartmentRoutes は部門関連ルートを設定します
func (r *Router) setupDepartmentRoutes(api *echo.Group) {
	departments := api.Group("/departments")
	writeLimit := r.middlewares.RateLimit.ByIP(r.middlewares.WriteLimit)

	departments.GET("/roots", r.handlers.Department.ListRootDepartments)
	departments.GET("/:id", r.handlers.Department.GetDepartment)
	departments.GET("/:id/children", r.handlers.Department.ListChildDepartments)

	departments.POST("", r.handlers.Department.CreateDepartment, writeLimit)
	departments.PATCH("/:id", r.handlers.Department.RenameDepartment, writeLimit)
	departments.PUT("/:id/parent", r.handlers.Department.MoveDepartment, writeLimit)
	departments.PUT("/:id/locations", r.handlers.Department.UpdateDepartmentLocations, writeLimit)
	departments.DELETE("/:id", r.handlers.Department.DeleteDepartment, writeLimit)
}
