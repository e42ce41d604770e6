package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/prodline/tpm-service/internal/api/http/handlers"
	"github.com/prodline/tpm-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	AdminTickets   *handlers.AdminTicketsHandler
	Dashboard      *handlers.DashboardHandler
	Reference      *handlers.ReferenceHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/admin/login", cfg.Auth.LoginAdmin)

	// Public surface: submission form, tracking, and the selection lists
	// the form needs.
	app.Post("/tickets", cfg.Tickets.SubmitTicket)
	app.Get("/tickets/track", cfg.Tickets.TrackTickets)
	app.Get("/reference/departments", cfg.Reference.ListDepartments)
	app.Get("/reference/line-areas", cfg.Reference.ListLineAreas)
	app.Get("/reference/technicians", cfg.Reference.ListTechnicians)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/tickets", cfg.AdminTickets.ListTickets)
	admin.Get("/tickets/:id", cfg.AdminTickets.GetTicket)
	admin.Patch("/tickets/:id", cfg.AdminTickets.UpdateTicket)

	admin.Get("/dashboard/stats", cfg.Dashboard.GetStats)

	admin.Post("/departments", cfg.Reference.CreateDepartment)
	admin.Patch("/departments/:id", cfg.Reference.UpdateDepartment)
	admin.Post("/line-areas", cfg.Reference.CreateLineArea)
	admin.Patch("/line-areas/:id", cfg.Reference.UpdateLineArea)
	admin.Post("/technicians", cfg.Reference.CreateTechnician)
	admin.Patch("/technicians/:id", cfg.Reference.UpdateTechnician)
}
