package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/ericsone1/youcra-v03-new-sub000/internal/handler"
	"github.com/ericsone1/youcra-v03-new-sub000/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Session       *handler.SessionHandler
	Certification *handler.CertificationHandler
	Playlist      *handler.PlaylistHandler
	Stats         *handler.StatsHandler
	Export        *handler.ExportHandler
	Health        *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewCORS(corsOrigins))

	// Health and metrics (before API group, no rate limit)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	sessionLimit := middleware.NewSessionRateLimiter().Handler()
	eventLimit := middleware.NewEventRateLimiter().Handler()
	certifyLimit := middleware.NewCertifyRateLimiter().Handler()
	readLimit := middleware.NewReadRateLimiter().Handler()
	exportLimit := middleware.NewExportRateLimiter().Handler()

	// API routes
	api := app.Group("/api")

	// Session routes
	api.Post("/rooms/:roomId/sessions", h.Session.Start, sessionLimit)
	api.Get("/rooms/:roomId/sessions/:sessionId", h.Session.Get, readLimit)
	api.Post("/rooms/:roomId/sessions/:sessionId/events", h.Session.PostEvent, eventLimit)
	api.Post("/rooms/:roomId/sessions/:sessionId/select", h.Session.Select, eventLimit)
	api.Delete("/rooms/:roomId/sessions/:sessionId", h.Session.Delete, sessionLimit)

	// Certification routes
	api.Post("/certifications", h.Certification.Certify, certifyLimit)
	api.Get("/certifications", h.Certification.Check, readLimit)
	api.Get("/users/:uid/certifications", h.Certification.ListByUser, readLimit)

	// Playlist routes
	api.Get("/rooms/:roomId/videos", h.Playlist.List, readLimit)

	// Export routes
	api.Get("/rooms/:roomId/certifications/export", h.Export.Export, exportLimit)

	// Stats routes
	api.Get("/stats", h.Stats.GetStats, readLimit)
}
