package inventory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iraldo49/financeiro/internal/application/inventory"
	"github.com/Iraldo49/financeiro/internal/domain"
	"github.com/Iraldo49/financeiro/internal/domain/entity"
)

type memStore struct {
	data     map[string][]byte
	failSave bool
}

func newMemStore() *memStore { return &memStore{data: make(map[string][]byte)} }

func (s *memStore) Load(ns string) ([]byte, error) { return s.data[ns], nil }

func (s *memStore) Save(ns string, b []byte) error {
	if s.failSave {
		return errors.New("disco cheio")
	}
	s.data[ns] = b
	return nil
}

func (s *memStore) Clear(ns string) error { delete(s.data, ns); return nil }

// fakeLedger registra os Append recebidos; failNext simula falha do
// livro-razão para exercitar o desfazer da posição.
type fakeLedger struct {
	appended []entity.Transaction
	failNext bool
}

func (l *fakeLedger) Append(tx entity.Transaction) (entity.Transaction, error) {
	if l.failNext {
		l.failNext = false
		return entity.Transaction{}, domain.ErrCapacityExceeded
	}
	l.appended = append(l.appended, tx)
	return tx, nil
}

var noon = time.Date(2026, 8, 29, 12, 0, 0, 0, time.Local)

func d(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// TestRecordPurchase_CustoMedioPonderado vetor de referência: compras
// (2, 100) e (3, 180) deixam custo médio 56 e quantidade 5.
func TestRecordPurchase_CustoMedioPonderado(t *testing.T) {
	uc := inventory.NewUseCase(newMemStore(), &fakeLedger{})

	_, err := uc.RecordPurchase(entity.SectorBar, "Cerveja", d(2), d(100), "", noon)
	require.NoError(t, err)
	_, err = uc.RecordPurchase(entity.SectorBar, "Cerveja", d(3), d(180), "", noon)
	require.NoError(t, err)

	pos, ok := uc.Position(entity.SectorBar, "Cerveja")
	require.True(t, ok)
	assert.True(t, d(56).Equal(pos.AverageUnitCost), "custo médio deve ser 56, veio %s", pos.AverageUnitCost)
	assert.True(t, d(5).Equal(pos.QuantityOnHand))
}

// TestRecordPurchase_LancaNoLivroRazao cada compra vira uma transação.
func TestRecordPurchase_LancaNoLivroRazao(t *testing.T) {
	ledger := &fakeLedger{}
	uc := inventory.NewUseCase(newMemStore(), ledger)

	tx, err := uc.RecordPurchase(entity.SectorBar, "Cerveja", d(24), d(1080), "Distribuidora", noon)
	require.NoError(t, err)

	require.Len(t, ledger.appended, 1)
	assert.Equal(t, entity.KindPurchase, tx.Kind)
	assert.Equal(t, "Cerveja", tx.Ingredient)
	assert.True(t, d(1080).Equal(tx.Amount))
}

// TestRecordPurchase_DesfazSeLivroRazaoFalha se o Append falha, a posição
// volta ao estado anterior (inclusive deixando de existir).
func TestRecordPurchase_DesfazSeLivroRazaoFalha(t *testing.T) {
	ledger := &fakeLedger{failNext: true}
	uc := inventory.NewUseCase(newMemStore(), ledger)

	_, err := uc.RecordPurchase(entity.SectorBar, "Cerveja", d(2), d(100), "", noon)
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)

	_, ok := uc.Position(entity.SectorBar, "Cerveja")
	assert.False(t, ok, "a posição criada pela compra rejeitada não pode sobrar")

	// Com posição prévia, a falha restaura quantidade e custo antigos.
	_, err = uc.RecordPurchase(entity.SectorBar, "Cerveja", d(2), d(100), "", noon)
	require.NoError(t, err)
	ledger.failNext = true
	_, err = uc.RecordPurchase(entity.SectorBar, "Cerveja", d(3), d(300), "", noon)
	require.Error(t, err)

	pos, ok := uc.Position(entity.SectorBar, "Cerveja")
	require.True(t, ok)
	assert.True(t, d(2).Equal(pos.QuantityOnHand))
	assert.True(t, d(50).Equal(pos.AverageUnitCost))
}

// TestRecordPurchase_Validacao quantidade não positiva é rejeitada.
func TestRecordPurchase_Validacao(t *testing.T) {
	uc := inventory.NewUseCase(newMemStore(), &fakeLedger{})

	_, err := uc.RecordPurchase(entity.SectorBar, "Cerveja", decimal.Zero, d(100), "", noon)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RecordPurchase(entity.SectorBar, "", d(1), d(100), "", noon)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestConsume_TudoOuNada o consumo que estoura qualquer linha da receita não
// altera NENHUMA posição, e o estoque nunca fica negativo.
func TestConsume_TudoOuNada(t *testing.T) {
	uc := inventory.NewUseCase(newMemStore(), &fakeLedger{})
	_, err := uc.RecordPurchase(entity.SectorFastFood, "Pão", d(10), d(50), "", noon)
	require.NoError(t, err)
	_, err = uc.RecordPurchase(entity.SectorFastFood, "Carne", d(2), d(100), "", noon)
	require.NoError(t, err)

	recipe := []entity.RecipeLine{
		{Ingredient: "Pão", QuantityPerUnit: d(1)},
		{Ingredient: "Carne", QuantityPerUnit: d(1)},
	}

	// 3 unidades estouram a carne (só há 2): nada pode mudar.
	err = uc.Consume(entity.SectorFastFood, recipe, d(3))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	pao, _ := uc.Position(entity.SectorFastFood, "Pão")
	carne, _ := uc.Position(entity.SectorFastFood, "Carne")
	assert.True(t, d(10).Equal(pao.QuantityOnHand), "pão não pode ter sido consumido")
	assert.True(t, d(2).Equal(carne.QuantityOnHand))

	// 2 unidades cabem: as duas linhas baixam juntas.
	require.NoError(t, uc.Consume(entity.SectorFastFood, recipe, d(2)))
	pao, _ = uc.Position(entity.SectorFastFood, "Pão")
	carne, _ = uc.Position(entity.SectorFastFood, "Carne")
	assert.True(t, d(8).Equal(pao.QuantityOnHand))
	assert.True(t, carne.QuantityOnHand.IsZero())
	assert.False(t, carne.QuantityOnHand.IsNegative())
}

// TestConsume_FalhaDePersistenciaNaoMuta se o Save falha, o consumo não vale
// em memória: as posições continuam no último snapshot persistido.
func TestConsume_FalhaDePersistenciaNaoMuta(t *testing.T) {
	mem := newMemStore()
	uc := inventory.NewUseCase(mem, &fakeLedger{})
	_, err := uc.RecordPurchase(entity.SectorBar, "Cerveja", d(10), d(450), "", noon)
	require.NoError(t, err)

	recipe := []entity.RecipeLine{{Ingredient: "Cerveja", QuantityPerUnit: d(1)}}
	mem.failSave = true
	err = uc.Consume(entity.SectorBar, recipe, d(4))
	assert.ErrorIs(t, err, domain.ErrPersistence)

	pos, ok := uc.Position(entity.SectorBar, "Cerveja")
	require.True(t, ok)
	assert.True(t, d(10).Equal(pos.QuantityOnHand), "a baixa não persistida não pode valer em memória")
}

// TestRestore_FalhaDePersistenciaNaoMuta o mesmo contrato vale para a
// restauração, inclusive para posição que ela criaria.
func TestRestore_FalhaDePersistenciaNaoMuta(t *testing.T) {
	mem := newMemStore()
	uc := inventory.NewUseCase(mem, &fakeLedger{})
	_, err := uc.RecordPurchase(entity.SectorBar, "Cerveja", d(10), d(450), "", noon)
	require.NoError(t, err)

	mem.failSave = true
	err = uc.Restore(entity.SectorBar, []entity.RecipeLine{
		{Ingredient: "Cerveja", QuantityPerUnit: d(1)},
		{Ingredient: "Gelo", QuantityPerUnit: d(1)},
	}, d(2))
	assert.ErrorIs(t, err, domain.ErrPersistence)

	pos, _ := uc.Position(entity.SectorBar, "Cerveja")
	assert.True(t, d(10).Equal(pos.QuantityOnHand))
	_, ok := uc.Position(entity.SectorBar, "Gelo")
	assert.False(t, ok, "a posição criada pela restauração rejeitada não pode sobrar")
}

// TestRecordPurchase_FalhaDePersistenciaNaoMuta compra cuja persistência de
// posições falha é desfeita em memória.
func TestRecordPurchase_FalhaDePersistenciaNaoMuta(t *testing.T) {
	mem := newMemStore()
	uc := inventory.NewUseCase(mem, &fakeLedger{})
	_, err := uc.RecordPurchase(entity.SectorBar, "Cerveja", d(2), d(100), "", noon)
	require.NoError(t, err)

	mem.failSave = true
	_, err = uc.RecordPurchase(entity.SectorBar, "Cerveja", d(3), d(300), "", noon)
	assert.ErrorIs(t, err, domain.ErrPersistence)

	pos, ok := uc.Position(entity.SectorBar, "Cerveja")
	require.True(t, ok)
	assert.True(t, d(2).Equal(pos.QuantityOnHand))
	assert.True(t, d(50).Equal(pos.AverageUnitCost))
}

// TestCheckAvailability_InsumoSemPosicao insumo nunca comprado conta como
// indisponível.
func TestCheckAvailability_InsumoSemPosicao(t *testing.T) {
	uc := inventory.NewUseCase(newMemStore(), &fakeLedger{})

	recipe := []entity.RecipeLine{{Ingredient: "Gelo", QuantityPerUnit: d(1)}}
	assert.False(t, uc.CheckAvailability(entity.SectorBar, recipe, d(1)))

	_, err := uc.RecordPurchase(entity.SectorBar, "Gelo", d(5), d(10), "", noon)
	require.NoError(t, err)
	assert.True(t, uc.CheckAvailability(entity.SectorBar, recipe, d(5)))
	assert.False(t, uc.CheckAvailability(entity.SectorBar, recipe, d(6)))
}

// TestRestore devolve ao estoque o que a venda desfeita tinha baixado.
func TestRestore(t *testing.T) {
	uc := inventory.NewUseCase(newMemStore(), &fakeLedger{})
	_, err := uc.RecordPurchase(entity.SectorBar, "Cerveja", d(10), d(450), "", noon)
	require.NoError(t, err)

	recipe := []entity.RecipeLine{{Ingredient: "Cerveja", QuantityPerUnit: d(1)}}
	require.NoError(t, uc.Consume(entity.SectorBar, recipe, d(4)))
	require.NoError(t, uc.Restore(entity.SectorBar, recipe, d(4)))

	pos, _ := uc.Position(entity.SectorBar, "Cerveja")
	assert.True(t, d(10).Equal(pos.QuantityOnHand))
}

// TestLoad_Reidrata posições persistidas voltam na carga.
func TestLoad_Reidrata(t *testing.T) {
	mem := newMemStore()
	uc := inventory.NewUseCase(mem, &fakeLedger{})
	_, err := uc.RecordPurchase(entity.SectorBar, "Cerveja", d(24), d(1080), "", noon)
	require.NoError(t, err)

	reloaded := inventory.NewUseCase(mem, &fakeLedger{})
	require.NoError(t, reloaded.Load())

	pos, ok := reloaded.Position(entity.SectorBar, "Cerveja")
	require.True(t, ok)
	assert.True(t, d(45).Equal(pos.AverageUnitCost))
	assert.True(t, d(24).Equal(pos.QuantityOnHand))
}

// TestRecipeCost soma quantidade * custo médio, com zero para posição
// inexistente.
func TestRecipeCost(t *testing.T) {
	uc := inventory.NewUseCase(newMemStore(), &fakeLedger{})
	_, err := uc.RecordPurchase(entity.SectorBar, "Cerveja", d(2), d(100), "", noon)
	require.NoError(t, err)

	cost := uc.RecipeCost(entity.SectorBar, []entity.RecipeLine{
		{Ingredient: "Cerveja", QuantityPerUnit: d(2)},
		{Ingredient: "Gelo", QuantityPerUnit: d(1)}, // sem posição: custo zero
	})
	assert.True(t, d(100).Equal(cost))
}
