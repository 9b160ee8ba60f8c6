package report_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iraldo49/financeiro/internal/application/report"
	"github.com/Iraldo49/financeiro/internal/domain/entity"
	"github.com/Iraldo49/financeiro/internal/domain/finance"
)

var noon = time.Date(2026, 8, 29, 12, 0, 0, 0, time.Local)

func d(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func mustTx(t *testing.T) func(tx entity.Transaction, err error) entity.Transaction {
	return func(tx entity.Transaction, err error) entity.Transaction {
		t.Helper()
		require.NoError(t, err)
		return tx
	}
}

// livro-razão de exemplo: saldos iniciais, vendas em dois setores e
// movimentos de carteira no dia de referência.
func sampleLedger(t *testing.T) []entity.Transaction {
	t.Helper()
	return []entity.Transaction{
		mustTx(t)(entity.NewOpeningBalance(entity.SectorBar, d(1000), "", noon.AddDate(0, 0, -3))),
		mustTx(t)(entity.NewOpeningBalance(entity.SectorFastFood, d(500), "", noon.AddDate(0, 0, -3))),
		mustTx(t)(entity.NewSale(entity.SectorBar, d(210), "Cerveja x3", noon)),
		mustTx(t)(entity.NewSale(entity.SectorBar, d(90), "", noon.AddDate(0, 0, -1))),
		mustTx(t)(entity.NewSale(entity.SectorFastFood, d(150), "", noon)),
		mustTx(t)(entity.NewPurchase(entity.SectorBar, d(120), "Distribuidora", "", noon)),
		mustTx(t)(entity.NewWalletOpening(entity.WalletMPesa, d(500), noon)),
		mustTx(t)(entity.NewWalletMovement(entity.WalletMPesa, entity.ChannelPhysical, d(200), "", noon)),
		mustTx(t)(entity.NewWalletMovement(entity.WalletMPesa, entity.ChannelElectronic, d(80), "", noon)),
		mustTx(t)(entity.NewWalletMovement(entity.WalletEMola, entity.ChannelPhysical, d(50), "", noon)),
	}
}

func TestCalculateTotals_SaldosDeSetor(t *testing.T) {
	got := report.CalculateTotals(sampleLedger(t), noon, finance.WalletPolicyNet)

	assert.True(t, d(1000).Equal(got.Bar.Opening))
	assert.True(t, d(300).Equal(got.Bar.Sales), "vendas do bar acumulam todos os dias")
	assert.True(t, d(1300).Equal(got.Bar.Total))

	assert.True(t, d(500).Equal(got.FastFood.Opening))
	assert.True(t, d(150).Equal(got.FastFood.Sales))
	assert.True(t, d(650).Equal(got.FastFood.Total))

	assert.True(t, d(1950).Equal(got.ConsolidatedCash))
}

func TestCalculateTotals_CarteirasDoDia(t *testing.T) {
	got := report.CalculateTotals(sampleLedger(t), noon, finance.WalletPolicyNet)

	// mpesa: 500 inicial + (200 físico - 80 eletrônico) = 620.
	assert.True(t, d(500).Equal(got.MPesa.Opening))
	assert.True(t, d(200).Equal(got.MPesa.Physical))
	assert.True(t, d(80).Equal(got.MPesa.Electronic))
	assert.True(t, d(620).Equal(got.MPesa.Total))

	// emola sem saldo inicial: só o movimento físico do dia.
	assert.True(t, d(50).Equal(got.EMola.Total))

	assert.True(t, d(670).Equal(got.ConsolidatedWallets))
	assert.True(t, d(2620).Equal(got.GrandTotal))
}

func TestCalculateTotals_PoliticaAditiva(t *testing.T) {
	got := report.CalculateTotals(sampleLedger(t), noon, finance.WalletPolicyAdditive)

	// na variante aditiva o canal eletrônico soma em vez de subtrair.
	assert.True(t, d(780).Equal(got.MPesa.Total))
}

func TestCalculateTotals_CarteiraNaoVazaParaOutroDia(t *testing.T) {
	txs := sampleLedger(t)
	tomorrow := noon.AddDate(0, 0, 1)

	got := report.CalculateTotals(txs, tomorrow, finance.WalletPolicyNet)

	// sem lançamentos datados de amanhã, as carteiras zeram.
	assert.True(t, got.MPesa.Total.IsZero())
	assert.True(t, got.EMola.Total.IsZero())
	// saldos de setor continuam acumulados.
	assert.True(t, d(1300).Equal(got.Bar.Total))
}

func TestCalculateTotals_DiaCorrente(t *testing.T) {
	got := report.CalculateTotals(sampleLedger(t), noon, finance.WalletPolicyNet)

	// a venda de ontem (90) fica fora dos totais do dia.
	assert.True(t, d(360).Equal(got.SalesToday))
	assert.True(t, d(120).Equal(got.PurchasesToday))
	// nenhuma venda carrega lucro congelado, então vale vendas menos compras.
	assert.True(t, d(240).Equal(got.ProfitToday))
	assert.Equal(t, 10, got.TransactionCount)
}

func TestCalculateTotals_LucroCongeladoTemPrecedencia(t *testing.T) {
	txs := sampleLedger(t)
	sale := mustTx(t)(entity.NewProductSale(entity.SectorBar, entity.SaleSnapshot{
		ProductID:   "prod_1",
		ProductName: "Cerveja",
		UnitCost:    d(45),
		UnitPrice:   d(70),
	}, d(3), noon))
	txs = append(txs, sale)

	got := report.CalculateTotals(txs, noon, finance.WalletPolicyNet)

	// havendo venda de catálogo, o lucro do dia é a soma dos lucros
	// congelados e as vendas antigas deixam de entrar na conta.
	assert.True(t, d(75).Equal(got.ProfitToday))
}

func TestCalculateTotals_Deterministico(t *testing.T) {
	txs := sampleLedger(t)

	first := report.CalculateTotals(txs, noon, finance.WalletPolicyNet)
	second := report.CalculateTotals(txs, noon, finance.WalletPolicyNet)

	assert.Equal(t, first, second)
}

func TestCalculateTotals_LivroVazio(t *testing.T) {
	got := report.CalculateTotals(nil, noon, finance.WalletPolicyNet)

	assert.True(t, got.GrandTotal.IsZero())
	assert.True(t, got.ProfitToday.IsZero())
	assert.Equal(t, 0, got.TransactionCount)
}

func TestWalletBalance(t *testing.T) {
	txs := sampleLedger(t)

	got := report.WalletBalance(txs, entity.WalletMPesa, noon, finance.WalletPolicyNet)
	assert.True(t, d(620).Equal(got))

	got = report.WalletBalance(txs, entity.WalletMPesa, noon.AddDate(0, 0, 1), finance.WalletPolicyNet)
	assert.True(t, got.IsZero())
}

func TestCalculateComparison_SerieSempreCompleta(t *testing.T) {
	got := report.CalculateComparison(nil, noon)

	require.Len(t, got.Bar, report.ComparisonDays)
	require.Len(t, got.FastFood, report.ComparisonDays)
	for _, e := range got.Bar {
		assert.True(t, e.Sales.IsZero())
		assert.True(t, e.Purchases.IsZero())
		assert.True(t, e.Profit.IsZero())
	}
}

func TestCalculateComparison_OrdemEConteudo(t *testing.T) {
	got := report.CalculateComparison(sampleLedger(t), noon)

	require.Len(t, got.Bar, report.ComparisonDays)
	// da mais antiga para a mais recente: o último elemento é hoje.
	last := got.Bar[report.ComparisonDays-1]
	assert.Equal(t, noon.Format("02/01/2006"), last.Date)
	assert.True(t, d(210).Equal(last.Sales))
	assert.True(t, d(120).Equal(last.Purchases))
	assert.True(t, d(90).Equal(last.Profit))

	yesterday := got.Bar[report.ComparisonDays-2]
	assert.True(t, d(90).Equal(yesterday.Sales))
	assert.True(t, yesterday.Purchases.IsZero())

	// fastfood só tem a venda de hoje.
	assert.True(t, d(150).Equal(got.FastFood[report.ComparisonDays-1].Sales))
}
