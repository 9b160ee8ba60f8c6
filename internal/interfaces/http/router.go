package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	Transactions *TransactionHandler
	Inventory    *InventoryHandler
	Products     *ProductHandler
	Reports      *ReportHandler
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Livro-razão
	txGroup := api.Group("/transactions")
	txGroup.Post("/", deps.Transactions.Create)
	txGroup.Get("/", deps.Transactions.List)
	txGroup.Delete("/:id", deps.Transactions.Delete)
	txGroup.Delete("/", deps.Transactions.Clear)

	// Estoque e vendas de catálogo
	api.Post("/purchases", deps.Inventory.RegisterPurchase)
	api.Post("/sales", deps.Inventory.RegisterSale)
	api.Get("/inventory/positions", deps.Inventory.Positions)

	// Catálogo
	products := api.Group("/products")
	products.Post("/", deps.Products.Create)
	products.Get("/", deps.Products.List)
	products.Get("/:id/availability", deps.Products.Availability)
	products.Delete("/:id", deps.Products.Delete)

	// Painel, comparação, fecho e relatório
	api.Get("/dashboard", deps.Reports.Dashboard)
	api.Get("/comparison", deps.Reports.Comparison)
	api.Post("/fecho", deps.Reports.Fecho)
	api.Get("/report", deps.Reports.Export)
}
