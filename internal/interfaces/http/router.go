package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ecotreat/portal-api/internal/application/access"
	"github.com/ecotreat/portal-api/internal/application/contact"
	"github.com/ecotreat/portal-api/internal/application/dashboard"
	"github.com/ecotreat/portal-api/internal/application/report"
	"github.com/ecotreat/portal-api/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AccessUC    *access.UseCase
	ExportUC    *report.ExportUseCase
	DashboardUC *dashboard.UseCase
	ContactUC   *contact.UseCase
	JWTSecret   string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authHandler := NewAuthHandler(deps.AccessUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Contact inquiries (public)
	contactHandler := NewContactHandler(deps.ContactUC)
	api.Post("/contact", contactHandler.Submit)

	// Calculator report exports (authenticated + subscription-gated)
	reportHandler := NewReportHandler(deps.ExportUC)
	reports := api.Group("/reports",
		AuthMiddleware(deps.JWTSecret),
		RequireSubscription(deps.AccessUC),
	)
	reports.Post("/:kind/export", reportHandler.Export)

	// Admin (authenticated + admin role)
	adminHandler := NewAdminHandler(deps.AccessUC, deps.DashboardUC)
	admin := api.Group("/admin",
		AuthMiddleware(deps.JWTSecret),
		RequireRole(entity.RoleAdmin),
	)
	admin.Get("/accounts", adminHandler.ListAccounts)
	admin.Get("/dashboard", adminHandler.Dashboard)
	admin.Post("/accounts/:id/approve", adminHandler.Approve)
	admin.Post("/accounts/:id/reject", adminHandler.Reject)
	admin.Post("/accounts/:id/disable", adminHandler.Disable)
}
