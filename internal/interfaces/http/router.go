package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/vendas-api/internal/application/billing"
	"github.com/jhoicas/vendas-api/internal/application/sales"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Registry   *sales.Registry
	CustomerUC *billing.CustomerUseCase
	JWTSecret  string
	Log        zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret), RequireRole(RoleSeller, RoleAdmin))

	// Clientes (alta rápida desde el paso de cliente)
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.Log)
	api.Post("/customers", customerHandler.Create)

	// Asistente de venta
	wh := NewWizardHandler(deps.Registry, deps.Log)
	wizard := api.Group("/sales/wizard")
	wizard.Get("/", wh.Get)
	wizard.Post("/next", wh.Next)
	wizard.Post("/previous", wh.Previous)
	wizard.Post("/reset", wh.Reset)

	wizard.Put("/customer", wh.SelectCustomer)
	wizard.Delete("/customer", wh.ClearCustomer)

	wizard.Post("/lines", wh.AddLine)
	wizard.Patch("/lines/:kind/:id", wh.UpdateLine)
	wizard.Delete("/lines/:kind/:id", wh.RemoveLine)

	wizard.Put("/payment", wh.SetPayment)
	wizard.Put("/notes", wh.SetNotes)

	wizard.Get("/draft", wh.DraftInfo)
	wizard.Post("/draft/restore", wh.RestoreDraft)
	wizard.Post("/draft/discard", wh.DiscardDraft)

	wizard.Post("/finalize", wh.Finalize)
	wizard.Get("/report", wh.Report)

	wizard.Get("/notification", wh.Notification)
	wizard.Post("/notification/hide", wh.HideNotification)
}
