package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecipeLine é um par insumo/quantidade consumida por unidade vendida.
type RecipeLine struct {
	Ingredient      string          `json:"ingredient"`
	QuantityPerUnit decimal.Decimal `json:"quantity_per_unit"`
}

// Product é um item vendável do catálogo: receita fixa mais preço de venda.
// TotalCost e ProfitPerUnit são retratos tirados quando o produto foi criado
// (custo médio da época); compras posteriores não os recalculam. A venda, por
// sua vez, calcula o lucro com o custo médio vigente no momento dela.
type Product struct {
	ID            string          `json:"id"`
	Sector        Sector          `json:"sector"`
	Name          string          `json:"name"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	Recipe        []RecipeLine    `json:"recipe"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	ProfitPerUnit decimal.Decimal `json:"profit_per_unit"`
	CreatedAt     time.Time       `json:"created_at"`
}
