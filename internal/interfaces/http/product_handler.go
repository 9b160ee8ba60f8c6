package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Iraldo49/financeiro/internal/application/catalog"
	"github.com/Iraldo49/financeiro/internal/application/dto"
	"github.com/Iraldo49/financeiro/internal/domain/entity"
)

// ProductHandler atende o catálogo de produtos.
type ProductHandler struct {
	catalog *catalog.UseCase
}

// NewProductHandler constrói o handler.
func NewProductHandler(catalog *catalog.UseCase) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// Create registra um produto com receita e preço de venda; o custo total é um
// retrato do custo médio vigente.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}

	recipe := make([]entity.RecipeLine, 0, len(in.Recipe))
	for _, line := range in.Recipe {
		recipe = append(recipe, entity.RecipeLine{
			Ingredient:      line.Ingredient,
			QuantityPerUnit: line.QuantityPerUnit,
		})
	}

	product, err := h.catalog.Create(entity.Sector(in.Sector), in.Name, in.SalePrice, recipe, time.Now())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// List devolve os produtos por nome crescente, com filtro opcional ?sector=.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	products := h.catalog.List(entity.Sector(c.Query("sector")))
	return c.JSON(fiber.Map{
		"total":    len(products),
		"products": products,
	})
}

// Availability informa se o estoque cobre uma unidade do produto.
func (h *ProductHandler) Availability(c *fiber.Ctx) error {
	product, err := h.catalog.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"product_id": product.ID,
		"available":  h.catalog.IsAvailable(product),
	})
}

// Delete remove um produto do catálogo; vendas já lançadas não mudam.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.catalog.Remove(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "produto removido"})
}
