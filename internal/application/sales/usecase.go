package sales

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Iraldo49/financeiro/internal/domain"
	"github.com/Iraldo49/financeiro/internal/domain/entity"
)

// Catalog é a visão do catálogo que a venda precisa.
type Catalog interface {
	Get(id string) (entity.Product, error)
}

// Inventory é a visão do estoque que a venda precisa: baixa, restauração em
// caso de falha e custo vigente da receita.
type Inventory interface {
	Consume(sector entity.Sector, recipe []entity.RecipeLine, multiplier decimal.Decimal) error
	Restore(sector entity.Sector, recipe []entity.RecipeLine, multiplier decimal.Decimal) error
	RecipeCost(sector entity.Sector, recipe []entity.RecipeLine) decimal.Decimal
}

// Ledger é a visão do livro-razão que a venda precisa.
type Ledger interface {
	Append(tx entity.Transaction) (entity.Transaction, error)
}

// UseCase orquestra a venda de um produto do catálogo: baixa de estoque e
// lançamento da venda são uma unidade de trabalho só.
type UseCase struct {
	catalog   Catalog
	inventory Inventory
	ledger    Ledger
}

// NewUseCase constrói o caso de uso de vendas.
func NewUseCase(catalog Catalog, inventory Inventory, ledger Ledger) *UseCase {
	return &UseCase{catalog: catalog, inventory: inventory, ledger: ledger}
}

// RegisterSale vende quantity unidades do produto. A baixa de estoque vem
// primeiro; se ela falha, a venda não é lançada. Se a baixa passa mas o
// lançamento no livro-razão falha, o estoque é restaurado.
// O lucro usa o custo médio vigente no momento da venda e fica congelado na
// transação.
func (uc *UseCase) RegisterSale(productID string, quantity decimal.Decimal, at time.Time) (entity.Transaction, error) {
	if !quantity.IsPositive() {
		return entity.Transaction{}, domain.ErrInvalidInput
	}
	product, err := uc.catalog.Get(productID)
	if err != nil {
		return entity.Transaction{}, err
	}

	unitCost := uc.inventory.RecipeCost(product.Sector, product.Recipe)
	if err := uc.inventory.Consume(product.Sector, product.Recipe, quantity); err != nil {
		return entity.Transaction{}, err
	}

	tx, err := entity.NewProductSale(product.Sector, entity.SaleSnapshot{
		ProductID:   product.ID,
		ProductName: product.Name,
		UnitCost:    unitCost,
		UnitPrice:   product.SalePrice,
	}, quantity, at)
	if err == nil {
		tx, err = uc.ledger.Append(tx)
	}
	if err != nil {
		// Desfaz a baixa para não perder estoque numa venda que não entrou.
		if restoreErr := uc.inventory.Restore(product.Sector, product.Recipe, quantity); restoreErr != nil {
			return entity.Transaction{}, fmt.Errorf("%w; falha ao restaurar o estoque: %v", err, restoreErr)
		}
		return entity.Transaction{}, err
	}
	return tx, nil
}
