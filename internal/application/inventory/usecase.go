package inventory

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Iraldo49/financeiro/internal/domain"
	"github.com/Iraldo49/financeiro/internal/domain/entity"
	"github.com/Iraldo49/financeiro/internal/domain/finance"
	"github.com/Iraldo49/financeiro/internal/domain/repository"
)

// Ledger é a visão do livro-razão que o estoque precisa: compras registradas
// aqui também entram como transações.
type Ledger interface {
	Append(tx entity.Transaction) (entity.Transaction, error)
}

// UseCase mantém as posições de estoque por (setor, insumo), derivadas
// exclusivamente das compras e dos consumos disparados por vendas. É o único
// escritor desse estado.
type UseCase struct {
	mu        sync.Mutex
	store     repository.SnapshotStore
	ledger    Ledger
	positions map[entity.PositionKey]entity.InventoryPosition
}

// NewUseCase constrói o caso de uso de estoque.
func NewUseCase(store repository.SnapshotStore, ledger Ledger) *UseCase {
	return &UseCase{
		store:     store,
		ledger:    ledger,
		positions: make(map[entity.PositionKey]entity.InventoryPosition),
	}
}

// Load reidrata as posições a partir do snapshot persistido.
func (uc *UseCase) Load() error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	data, err := uc.store.Load(repository.NamespaceInventory)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	uc.positions = make(map[entity.PositionKey]entity.InventoryPosition)
	if data == nil {
		return nil
	}
	var positions []entity.InventoryPosition
	if err := json.Unmarshal(data, &positions); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	for _, p := range positions {
		uc.positions[p.Key()] = p
	}
	return nil
}

// RecordPurchase registra a compra de um insumo: mistura o custo unitário da
// entrada no custo médio ponderado da posição (criando-a se não existe),
// lança a transação de compra no livro-razão e persiste as posições.
// Se o lançamento no livro-razão ou a persistência falham, a posição volta
// ao estado anterior.
func (uc *UseCase) RecordPurchase(sector entity.Sector, ingredient string, quantity, totalPrice decimal.Decimal, supplier string, at time.Time) (entity.Transaction, error) {
	if !sector.Valid() || ingredient == "" || !quantity.IsPositive() || totalPrice.IsNegative() {
		return entity.Transaction{}, domain.ErrInvalidInput
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	unitCost := totalPrice.Div(quantity)
	key := entity.PositionKey{Sector: sector, Ingredient: ingredient}
	prev, existed := uc.positions[key]
	pos := prev
	if !existed {
		pos = entity.InventoryPosition{Sector: sector, Ingredient: ingredient}
	}
	pos.AverageUnitCost = finance.AverageCost(pos.QuantityOnHand, pos.AverageUnitCost, quantity, unitCost)
	pos.QuantityOnHand = pos.QuantityOnHand.Add(quantity)
	pos.LastPurchaseAt = at
	uc.positions[key] = pos

	tx, err := entity.NewStockPurchase(sector, ingredient, quantity, totalPrice, supplier, at)
	if err == nil {
		tx, err = uc.ledger.Append(tx)
	}
	if err != nil {
		if existed {
			uc.positions[key] = prev
		} else {
			delete(uc.positions, key)
		}
		return entity.Transaction{}, err
	}

	if err := uc.persist(); err != nil {
		if existed {
			uc.positions[key] = prev
		} else {
			delete(uc.positions, key)
		}
		return entity.Transaction{}, err
	}
	return tx, nil
}

// CheckAvailability informa se o estoque do setor cobre a receita vezes o
// multiplicador; insumo sem posição conta como indisponível.
func (uc *UseCase) CheckAvailability(sector entity.Sector, recipe []entity.RecipeLine, multiplier decimal.Decimal) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.available(sector, recipe, multiplier)
}

func (uc *UseCase) available(sector entity.Sector, recipe []entity.RecipeLine, multiplier decimal.Decimal) bool {
	for _, line := range recipe {
		required := line.QuantityPerUnit.Mul(multiplier)
		pos, ok := uc.positions[entity.PositionKey{Sector: sector, Ingredient: line.Ingredient}]
		if !ok || pos.QuantityOnHand.LessThan(required) {
			return false
		}
	}
	return true
}

// Consume baixa do estoque a receita vezes o multiplicador. Revalida a
// disponibilidade antes de mutar e é tudo-ou-nada: com ErrInsufficientStock
// nenhuma posição da receita é alterada.
func (uc *UseCase) Consume(sector entity.Sector, recipe []entity.RecipeLine, multiplier decimal.Decimal) error {
	if !multiplier.IsPositive() {
		return domain.ErrInvalidInput
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if !uc.available(sector, recipe, multiplier) {
		return domain.ErrInsufficientStock
	}
	prev := uc.stash(sector, recipe)
	for _, line := range recipe {
		key := entity.PositionKey{Sector: sector, Ingredient: line.Ingredient}
		pos := uc.positions[key]
		pos.QuantityOnHand = pos.QuantityOnHand.Sub(line.QuantityPerUnit.Mul(multiplier))
		uc.positions[key] = pos
	}
	if err := uc.persist(); err != nil {
		uc.unstash(prev)
		return err
	}
	return nil
}

// Restore devolve ao estoque a receita vezes o multiplicador; usado pelo fluxo
// de venda para desfazer a baixa quando o lançamento da venda falha.
func (uc *UseCase) Restore(sector entity.Sector, recipe []entity.RecipeLine, multiplier decimal.Decimal) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	prev := uc.stash(sector, recipe)
	for _, line := range recipe {
		key := entity.PositionKey{Sector: sector, Ingredient: line.Ingredient}
		pos, ok := uc.positions[key]
		if !ok {
			pos = entity.InventoryPosition{Sector: sector, Ingredient: line.Ingredient}
		}
		pos.QuantityOnHand = pos.QuantityOnHand.Add(line.QuantityPerUnit.Mul(multiplier))
		uc.positions[key] = pos
	}
	if err := uc.persist(); err != nil {
		uc.unstash(prev)
		return err
	}
	return nil
}

// stash guarda o estado atual das posições da receita; nil marca posição
// inexistente. Serve para desfazer a mutação se a persistência falhar.
func (uc *UseCase) stash(sector entity.Sector, recipe []entity.RecipeLine) map[entity.PositionKey]*entity.InventoryPosition {
	prev := make(map[entity.PositionKey]*entity.InventoryPosition, len(recipe))
	for _, line := range recipe {
		key := entity.PositionKey{Sector: sector, Ingredient: line.Ingredient}
		if pos, ok := uc.positions[key]; ok {
			p := pos
			prev[key] = &p
		} else {
			prev[key] = nil
		}
	}
	return prev
}

// unstash devolve as posições ao estado guardado por stash.
func (uc *UseCase) unstash(prev map[entity.PositionKey]*entity.InventoryPosition) {
	for key, pos := range prev {
		if pos == nil {
			delete(uc.positions, key)
		} else {
			uc.positions[key] = *pos
		}
	}
}

// RecipeCost devolve o custo da receita ao custo médio vigente: soma de
// quantidade por unidade * custo médio da posição (zero se não há posição).
func (uc *UseCase) RecipeCost(sector entity.Sector, recipe []entity.RecipeLine) decimal.Decimal {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	total := decimal.Zero
	for _, line := range recipe {
		pos := uc.positions[entity.PositionKey{Sector: sector, Ingredient: line.Ingredient}]
		total = total.Add(line.QuantityPerUnit.Mul(pos.AverageUnitCost))
	}
	return total
}

// Position devolve a posição de um insumo no setor, se existir.
func (uc *UseCase) Position(sector entity.Sector, ingredient string) (entity.InventoryPosition, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	pos, ok := uc.positions[entity.PositionKey{Sector: sector, Ingredient: ingredient}]
	return pos, ok
}

// Positions lista todas as posições ordenadas por setor e insumo.
func (uc *UseCase) Positions() []entity.InventoryPosition {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	out := make([]entity.InventoryPosition, 0, len(uc.positions))
	for _, p := range uc.positions {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sector != out[j].Sector {
			return out[i].Sector < out[j].Sector
		}
		return out[i].Ingredient < out[j].Ingredient
	})
	return out
}

func (uc *UseCase) persist() error {
	positions := make([]entity.InventoryPosition, 0, len(uc.positions))
	for _, p := range uc.positions {
		positions = append(positions, p)
	}
	sort.Slice(positions, func(i, j int) bool {
		if positions[i].Sector != positions[j].Sector {
			return positions[i].Sector < positions[j].Sector
		}
		return positions[i].Ingredient < positions[j].Ingredient
	})
	data, err := json.Marshal(positions)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if err := uc.store.Save(repository.NamespaceInventory, data); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}
