package app

import (
	"fmt"
	"log"
	"strings"

	"jobseek/internal/config"
	"jobseek/internal/delivery/http/handler"
	"jobseek/internal/delivery/http/middleware"
	"jobseek/internal/delivery/http/routes"
	"jobseek/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// CSV exports run to hundreds of megabytes.
const maxUploadBytes = 512 << 20

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName:   c.Config.App.AppName,
		BodyLimit: maxUploadBytes,
	})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}
	app := New(c)
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	accessLog := middleware.NewAccessLogMiddleware(logger)
	app.Use(accessLog.Middleware())

	errMw := middleware.NewErrorMiddleware(logger)
	app.Use(errMw.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	reg := routes.Registry{
		Health: handler.NewHealthHandler(c.Stats),
		Import: handler.NewImportHandler(c.Import),
		Search: handler.NewSearchHandler(c.Search),
		Batch:  handler.NewBatchHandler(c.Sync),
		Stats:  handler.NewStatsHandler(c.Stats),
		WS:     ws.NewHandler(c.Hub, c.Logger),
	}
	reg.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
