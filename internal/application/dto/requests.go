package dto

import "github.com/shopspring/decimal"

// TransactionRequest body para POST /api/transactions: lançamentos simples do
// livro-razão (saldo inicial, venda avulsa, compra avulsa, movimento de
// carteira). Vendas de catálogo e compras de estoque têm endpoints próprios.
type TransactionRequest struct {
	Type        string          `json:"type" validate:"required,oneof=saldo_inicial venda compra carteira"`
	Sector      string          `json:"sector" validate:"omitempty,oneof=bar fastfood"`
	Wallet      string          `json:"wallet" validate:"omitempty,oneof=mpesa emola"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentType string          `json:"payment_type" validate:"omitempty,oneof=fisico eletronico"`
	Description string          `json:"description"`
	Supplier    string          `json:"supplier"`
}

// PurchaseRequest body para POST /api/purchases: compra de insumo que
// alimenta o estoque além do livro-razão.
type PurchaseRequest struct {
	Sector     string          `json:"sector" validate:"required,oneof=bar fastfood"`
	Ingredient string          `json:"ingredient" validate:"required"`
	Quantity   decimal.Decimal `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Supplier   string          `json:"supplier"`
}

// SaleRequest body para POST /api/sales: venda de um produto do catálogo.
type SaleRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// RecipeLineRequest linha de receita de um produto.
type RecipeLineRequest struct {
	Ingredient      string          `json:"ingredient" validate:"required"`
	QuantityPerUnit decimal.Decimal `json:"quantity_per_unit"`
}

// ProductRequest body para POST /api/products.
type ProductRequest struct {
	Sector    string              `json:"sector" validate:"required,oneof=bar fastfood"`
	Name      string              `json:"name" validate:"required"`
	SalePrice decimal.Decimal     `json:"sale_price"`
	Recipe    []RecipeLineRequest `json:"recipe" validate:"required,min=1,dive"`
}

// FechoRequest body para POST /api/fecho: fecho diário de uma carteira.
type FechoRequest struct {
	Wallet          string          `json:"wallet" validate:"required,oneof=mpesa emola"`
	DeclaredBalance decimal.Decimal `json:"declared_balance"`
}

// ErrorResponse resposta de erro padronizada da API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
