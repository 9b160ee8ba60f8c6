package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryPosition é o saldo de estoque de um insumo em um setor, com custo
// médio ponderado recalculado a cada compra. QuantityOnHand nunca fica
// negativa; consumos que violariam isso são rejeitados por inteiro.
type InventoryPosition struct {
	Sector          Sector          `json:"sector"`
	Ingredient      string          `json:"ingredient"`
	QuantityOnHand  decimal.Decimal `json:"quantity_on_hand"`
	AverageUnitCost decimal.Decimal `json:"average_unit_cost"`
	LastPurchaseAt  time.Time       `json:"last_purchase_at"`
}

// PositionKey identifica uma posição de estoque.
type PositionKey struct {
	Sector     Sector
	Ingredient string
}

// Key devolve a chave (setor, insumo) da posição.
func (p InventoryPosition) Key() PositionKey {
	return PositionKey{Sector: p.Sector, Ingredient: p.Ingredient}
}
