package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-kit/support-service/internal/api/http/handlers"
	"github.com/helpdesk-kit/support-service/internal/auth"
	"github.com/helpdesk-kit/support-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Comments       *handlers.CommentsHandler
	Attachments    *handlers.AttachmentsHandler
	FAQs           *handlers.FAQsHandler
	Chat           *handlers.ChatHandler
	AuthMiddleware *auth.AuthMiddleware
	RequestTimeout time.Duration
}

// RegisterRoutes wires HTTP routes. Every route except the health probes
// requires a bearer token; the comment stream skips the request timeout so
// it can stay open.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	// Streaming is registered outside the timeout group.
	app.Get("/tickets/:id/comments/stream", cfg.AuthMiddleware.Handle, cfg.Comments.StreamComments)

	api := app.Group("", RequestTimeout(cfg.RequestTimeout), cfg.AuthMiddleware.Handle)

	api.Get("/users/profile", cfg.Users.GetProfile)
	api.Get("/users", auth.RequireRole(domain.RoleAdmin), cfg.Users.ListUsers)
	api.Patch("/users/:id", auth.RequireRole(domain.RoleAdmin), cfg.Users.UpdateUser)

	api.Post("/tickets", cfg.Tickets.CreateTicket)
	api.Get("/tickets", cfg.Tickets.ListTickets)
	api.Get("/tickets/:id", cfg.Tickets.GetTicket)
	api.Patch("/tickets/:id", cfg.Tickets.UpdateTicket)
	api.Delete("/tickets/:id", auth.RequireRole(domain.RoleAdmin), cfg.Tickets.DeleteTicket)

	api.Post("/tickets/:id/comments", cfg.Comments.CreateComment)
	api.Get("/tickets/:id/comments", cfg.Comments.ListComments)

	api.Post("/tickets/:id/attachments", cfg.Attachments.UploadAttachment)
	api.Get("/tickets/:id/attachments", cfg.Attachments.ListAttachments)
	api.Delete("/tickets/attachments/:id", cfg.Attachments.DeleteAttachment)

	api.Get("/faqs", cfg.FAQs.ListFAQs)
	api.Get("/faqs/:id", cfg.FAQs.GetFAQ)
	api.Post("/faqs", auth.RequireRole(domain.RoleAdmin), cfg.FAQs.CreateFAQ)
	api.Patch("/faqs/:id", auth.RequireRole(domain.RoleAdmin), cfg.FAQs.UpdateFAQ)
	api.Delete("/faqs/:id", auth.RequireRole(domain.RoleAdmin), cfg.FAQs.DeleteFAQ)

	api.Post("/chat", cfg.Chat.Converse)
}
