package catalog

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Iraldo49/financeiro/internal/domain"
	"github.com/Iraldo49/financeiro/internal/domain/entity"
	"github.com/Iraldo49/financeiro/internal/domain/repository"
)

// Inventory é a visão do estoque que o catálogo precisa: custo de receita na
// criação do produto e disponibilidade na consulta. O catálogo lê o estoque,
// nunca o muta.
type Inventory interface {
	RecipeCost(sector entity.Sector, recipe []entity.RecipeLine) decimal.Decimal
	CheckAvailability(sector entity.Sector, recipe []entity.RecipeLine, multiplier decimal.Decimal) bool
}

// UseCase mantém o catálogo de produtos vendáveis.
type UseCase struct {
	mu        sync.Mutex
	store     repository.SnapshotStore
	inventory Inventory
	products  []entity.Product
}

// NewUseCase constrói o caso de uso do catálogo.
func NewUseCase(store repository.SnapshotStore, inventory Inventory) *UseCase {
	return &UseCase{store: store, inventory: inventory}
}

// Load reidrata o catálogo a partir do snapshot persistido.
func (uc *UseCase) Load() error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	data, err := uc.store.Load(repository.NamespaceProducts)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	uc.products = nil
	if data == nil {
		return nil
	}
	if err := json.Unmarshal(data, &uc.products); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}

// Create registra um produto: preço de venda positivo e receita não vazia.
// TotalCost é um retrato do custo médio vigente na criação; compras
// posteriores não o recalculam (a venda usa o custo da hora dela).
func (uc *UseCase) Create(sector entity.Sector, name string, salePrice decimal.Decimal, recipe []entity.RecipeLine, at time.Time) (entity.Product, error) {
	if !sector.Valid() || name == "" || !salePrice.IsPositive() || len(recipe) == 0 {
		return entity.Product{}, domain.ErrInvalidInput
	}
	for _, line := range recipe {
		if line.Ingredient == "" || !line.QuantityPerUnit.IsPositive() {
			return entity.Product{}, domain.ErrInvalidInput
		}
	}

	totalCost := uc.inventory.RecipeCost(sector, recipe)

	uc.mu.Lock()
	defer uc.mu.Unlock()

	product := entity.Product{
		ID:            "prod_" + uuid.NewString(),
		Sector:        sector,
		Name:          name,
		SalePrice:     salePrice,
		Recipe:        append([]entity.RecipeLine(nil), recipe...),
		TotalCost:     totalCost,
		ProfitPerUnit: salePrice.Sub(totalCost),
		CreatedAt:     at,
	}
	next := append(append([]entity.Product(nil), uc.products...), product)
	if err := uc.persist(next); err != nil {
		return entity.Product{}, err
	}
	uc.products = next
	return product, nil
}

// Get devolve o produto com o ID dado.
func (uc *UseCase) Get(id string) (entity.Product, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	for _, p := range uc.products {
		if p.ID == id {
			return p, nil
		}
	}
	return entity.Product{}, domain.ErrNotFound
}

// List devolve os produtos ordenados por nome crescente; sector vazio lista
// todos os setores.
func (uc *UseCase) List(sector entity.Sector) []entity.Product {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	out := make([]entity.Product, 0, len(uc.products))
	for _, p := range uc.products {
		if sector != "" && p.Sector != sector {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Remove descarta o produto do catálogo. Vendas já lançadas não são afetadas:
// carregam o retrato do produto da época.
func (uc *UseCase) Remove(id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	idx := -1
	for i := range uc.products {
		if uc.products[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrNotFound
	}
	next := append(append([]entity.Product(nil), uc.products[:idx]...), uc.products[idx+1:]...)
	if err := uc.persist(next); err != nil {
		return err
	}
	uc.products = next
	return nil
}

// IsAvailable informa se o estoque cobre uma unidade do produto.
func (uc *UseCase) IsAvailable(product entity.Product) bool {
	return uc.inventory.CheckAvailability(product.Sector, product.Recipe, decimal.NewFromInt(1))
}

func (uc *UseCase) persist(products []entity.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if err := uc.store.Save(repository.NamespaceProducts, data); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}
