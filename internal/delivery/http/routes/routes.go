package routes

import (
	"jobseek/internal/delivery/http/handler"
	"jobseek/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Registry holds every HTTP handler and mounts them on an app.
type Registry struct {
	Health *handler.HealthHandler
	Import *handler.ImportHandler
	Search *handler.SearchHandler
	Batch  *handler.BatchHandler
	Stats  *handler.StatsHandler
	WS     *ws.Handler
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	if r.Health != nil {
		r.Health.RegisterRoutes(app)
	}
	if r.WS != nil {
		r.WS.RegisterRoutes(app)
	}
	r.registerAPI(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")

	if r.Import != nil {
		r.Import.RegisterRoutes(api.Group("/import"))
	}
	if r.Search != nil {
		r.Search.RegisterRoutes(api.Group("/jobs"))
	}
	if r.Batch != nil {
		r.Batch.RegisterRoutes(api.Group("/batch"))
	}
	if r.Stats != nil {
		r.Stats.RegisterRoutes(api.Group("/stats"))
	}
}
