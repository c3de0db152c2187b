package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wirebiz/internal/application/analytics"
	"github.com/jhoicas/wirebiz/internal/application/billing"
	"github.com/jhoicas/wirebiz/internal/application/ledger"
	"github.com/jhoicas/wirebiz/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CustomerUC *billing.CustomerUseCase
	ProductUC  *usecase.ProductUseCase
	InvoiceUC  *billing.InvoiceUseCase
	LedgerUC   *ledger.UseCase
	SummaryUC  *analytics.SummaryUseCase
	Location   *time.Location
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Customers
	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/search", customerHandler.Search)
	customers.Get("/:id", customerHandler.GetByID)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/search", productHandler.Search)
	products.Get("/:id", productHandler.GetByID)

	// Invoices
	invoices := api.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/search", invoiceHandler.Search)
	invoices.Get("/:id", invoiceHandler.GetByID)

	// Ledger (registros de ingresos/egresos)
	ledgerGroup := api.Group("/ledger")
	ledgerHandler := NewLedgerHandler(deps.LedgerUC)
	ledgerGroup.Post("/", ledgerHandler.Create)
	ledgerGroup.Get("/", ledgerHandler.List)
	ledgerGroup.Get("/search", ledgerHandler.Search)

	// Summaries
	summary := api.Group("/summary")
	summaryHandler := NewSummaryHandler(deps.SummaryUC, deps.Location)
	summary.Get("/monthly", summaryHandler.Monthly)
	summary.Get("/daily", summaryHandler.Daily)
}
