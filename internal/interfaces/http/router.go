package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/manufactura-admin/internal/application/auth"
	"github.com/jhoicas/manufactura-admin/internal/application/usecase"
	"github.com/jhoicas/manufactura-admin/internal/domain/session"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	ListUC       *usecase.ListUseCase
	MutationUC   *usecase.MutationUseCase
	DeleteUC     *usecase.DeleteUseCase
	ExportUC     *usecase.ExportUseCase
	ExtractionUC *usecase.InvoiceExtractionUseCase
	Audit        *usecase.AuditRecorder
	JWTSecret    string
	SecureCookie bool
	ServiceName  string
}

// Router registra las rutas de la API y de los fragmentos HTML.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.SecureCookie)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token o cookie de sesión)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)

	resources := NewResourceHandler(deps.ListUC, deps.MutationUC, deps.DeleteUC, deps.ExportUC, deps.Audit)
	protected.Get("/resources", resources.Resources)

	res := protected.Group("/resources/:resource", RequireResource(deps.ListUC))
	res.Get("/", resources.List)
	res.Post("/", resources.Create)
	res.Get("/export.pdf", resources.Export)
	res.Delete("/delete-preview", resources.CancelPreview)
	res.Get("/:id", resources.Get)
	res.Put("/:id", resources.Update)
	res.Delete("/:id", resources.Delete)
	res.Get("/:id/delete-preview", resources.DeletePreview)
	res.Get("/:id/history", RequireRole(session.RoleAdmin, session.RoleSupervisor), resources.History)

	// Facturas: extracción asistida
	extraction := NewExtractionHandler(deps.ExtractionUC)
	protected.Post("/facturas/extract", extraction.Extract)

	// Fragmentos HTML
	ui := NewUIHandler(deps.ListUC, deps.DeleteUC)
	uiGroup := app.Group("/ui", AuthMiddleware(deps.JWTSecret))
	uiRes := uiGroup.Group("/resources/:resource", RequireResource(deps.ListUC))
	uiRes.Get("/", ui.Table)
	uiRes.Post("/delete-preview/cancel", ui.CancelPreview)
	uiRes.Get("/:id/delete-preview", ui.DeletePreview)
}
