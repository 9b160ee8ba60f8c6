package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Iraldo49/financeiro/internal/application/dto"
	"github.com/Iraldo49/financeiro/internal/application/inventory"
	"github.com/Iraldo49/financeiro/internal/application/sales"
	"github.com/Iraldo49/financeiro/internal/domain/entity"
)

// InventoryHandler atende compras de insumo, vendas de catálogo e a consulta
// das posições de estoque.
type InventoryHandler struct {
	inventory *inventory.UseCase
	sales     *sales.UseCase
}

// NewInventoryHandler constrói o handler.
func NewInventoryHandler(inventory *inventory.UseCase, sales *sales.UseCase) *InventoryHandler {
	return &InventoryHandler{inventory: inventory, sales: sales}
}

// RegisterPurchase registra uma compra de insumo: atualiza o custo médio
// ponderado da posição e lança a compra no livro-razão.
func (h *InventoryHandler) RegisterPurchase(c *fiber.Ctx) error {
	var in dto.PurchaseRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}

	tx, err := h.inventory.RecordPurchase(
		entity.Sector(in.Sector), in.Ingredient, in.Quantity, in.TotalPrice, in.Supplier, time.Now(),
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tx)
}

// RegisterSale vende unidades de um produto do catálogo: baixa o estoque da
// receita e lança a venda com lucro congelado.
func (h *InventoryHandler) RegisterSale(c *fiber.Ctx) error {
	var in dto.SaleRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}

	tx, err := h.sales.RegisterSale(in.ProductID, in.Quantity, time.Now())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tx)
}

// Positions lista as posições de estoque por setor e insumo.
func (h *InventoryHandler) Positions(c *fiber.Ctx) error {
	positions := h.inventory.Positions()
	return c.JSON(fiber.Map{
		"total":     len(positions),
		"positions": positions,
	})
}
