package main

import (
	"time"

	"pastel-notes/cmd/server/handlers"
	"pastel-notes/cmd/server/handlers/httperr"
	notesHandlers "pastel-notes/cmd/server/handlers/notes"
	"pastel-notes/cmd/server/middlewares"
	"pastel-notes/internal/config"
	"pastel-notes/internal/logger"
	notesServices "pastel-notes/internal/services/notes"

	_ "pastel-notes/docs" // Load swagger docs

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/google/uuid"
)

const (
	RateLimitExpiration = 1 * time.Minute
)

// setupRouter configures and returns a Fiber app with all routes. Every
// handler reaches the store through loop.
func setupRouter(cfg config.Config, loop *notesServices.Loop, hub *notesServices.Hub, viewerID uuid.UUID) *fiber.App {
	v := validator.New()

	app := fiber.New(fiber.Config{
		ErrorHandler: httperr.Handler,
		Immutable:    true, // make Fiber copy all request-derived strings
	})

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Content-Type",
	}))

	if cfg.RouteMetricsEnabled {
		middlewares.AttachMetrics(app, middlewares.StoreCollectors(hub, loop)...)
	}

	// Health check endpoint, outside versioned API to appease scanners and to avoid logging
	app.Get("/healthz", handlers.Healthz(loop))

	app.Get("/docs/*", swagger.HandlerDefault)

	var v1 fiber.Router
	if cfg.RequestLoggingEnabled {
		v1 = app.Group("/api/v1", fiberlogger.New())
		logger.L().Info("request logging enabled")
	} else {
		v1 = app.Group("/api/v1")
		logger.L().Info("request logging disabled")
	}

	v1.Use(middlewares.BuildRateLimiter(cfg.MutationRatePerMin, RateLimitExpiration, middlewares.ReadOnly))

	notesH := notesHandlers.NewHandlers(loop, v)

	notesGrp := v1.Group("/notes")
	notesGrp.Get("/", notesH.List)
	notesGrp.Post("/", notesH.Create)
	notesGrp.Post("/import", notesH.Import)
	notesGrp.Patch("/:id", notesH.Update)
	notesGrp.Delete("/:id", notesH.Delete)
	notesGrp.Get("/:id/export", notesH.Export)
	notesGrp.Post("/:id/pin", notesH.Pin)
	notesGrp.Post("/:id/minimize", notesH.Minimize)
	notesGrp.Post("/:id/maximize", notesH.Maximize)
	notesGrp.Post("/:id/edit", notesH.Edit)
	notesGrp.Post("/:id/hide", notesH.Hide)
	notesGrp.Post("/:id/unhide", notesH.Unhide)

	v1.Put("/filter", notesH.SetFilter)
	v1.Get("/me", notesH.Me)

	// WebSocket routes
	wsHandlers := notesHandlers.NewWebSocketHandlers(hub, loop, viewerID, cfg.WSMaxSessionSec)
	app.Use("/ws", notesHandlers.LogWSConnections())
	app.Get("/ws/notes/stream", wsHandlers.WSUpgrade, websocket.New(wsHandlers.WSNotesStream))

	return app
}
