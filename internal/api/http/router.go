package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Comments       *handlers.CommentsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Role gates here are a transport
// convenience; the services re-check authorization against the identity
// context on every call.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Users.Logout)
	authGroup.Get("/current-user", cfg.AuthMiddleware.Handle, cfg.Users.CurrentUser)

	app.Get("/users", cfg.AuthMiddleware.Handle, cfg.Users.ListUsers)

	tickets := app.Group("/api/tickets", cfg.AuthMiddleware.Handle)
	tickets.Post("", auth.RequireRole(domain.RoleEmployee), cfg.Tickets.CreateTicket)
	tickets.Get("/employee/:employeeId", auth.RequireRole(domain.RoleEmployee), cfg.Tickets.TicketsByEmployee)
	tickets.Get("/all", auth.RequireRole(domain.RoleITSupport), cfg.Tickets.AllTickets)
	tickets.Get("/filter", cfg.Tickets.FilterTickets)
	tickets.Put("/:id/status", auth.RequireRole(domain.RoleITSupport), cfg.Tickets.UpdateStatus)
	tickets.Get("/:id/audit", auth.RequireRole(domain.RoleITSupport), cfg.Tickets.AuditTrail)
	tickets.Post("/:id/comments", auth.RequireRole(domain.RoleITSupport), cfg.Comments.AddComment)
	tickets.Get("/:id/comments", cfg.Comments.ListComments)
}
