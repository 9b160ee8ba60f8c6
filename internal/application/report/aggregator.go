package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Iraldo49/financeiro/internal/domain/entity"
	"github.com/Iraldo49/financeiro/internal/domain/finance"
)

// ComparisonDays é o tamanho fixo da série de comparação diária.
const ComparisonDays = 7

// SectorTotals é o caixa de um setor: saldo inicial + vendas, acumulado
// desde o início do livro-razão.
type SectorTotals struct {
	Opening decimal.Decimal `json:"opening"`
	Sales   decimal.Decimal `json:"sales"`
	Total   decimal.Decimal `json:"total"`
}

// WalletTotals é o saldo do dia de uma carteira móvel, por canal.
type WalletTotals struct {
	Opening    decimal.Decimal `json:"opening"`
	Physical   decimal.Decimal `json:"physical"`
	Electronic decimal.Decimal `json:"electronic"`
	Total      decimal.Decimal `json:"total"`
}

// Totals é a estrutura derivada que alimenta painel e relatório. É recalculada
// por inteiro a cada chamada a partir do snapshot do livro-razão; nada aqui é
// estado autoritativo.
type Totals struct {
	Bar      SectorTotals `json:"bar"`
	FastFood SectorTotals `json:"fastfood"`
	MPesa    WalletTotals `json:"mpesa"`
	EMola    WalletTotals `json:"emola"`

	ConsolidatedCash    decimal.Decimal `json:"consolidated_cash"`
	ConsolidatedWallets decimal.Decimal `json:"consolidated_wallets"`
	GrandTotal          decimal.Decimal `json:"grand_total"`

	SalesToday     decimal.Decimal `json:"sales_today"`
	PurchasesToday decimal.Decimal `json:"purchases_today"`
	ProfitToday    decimal.Decimal `json:"profit_today"`

	TransactionCount int `json:"transaction_count"`
}

// ComparisonEntry é um dia da série de comparação de um setor.
type ComparisonEntry struct {
	Date      string          `json:"date"` // DD/MM/AAAA
	Sales     decimal.Decimal `json:"sales"`
	Purchases decimal.Decimal `json:"purchases"`
	Profit    decimal.Decimal `json:"profit"`
}

// Comparison agrupa as séries de 7 dias por setor, da data mais antiga para a
// mais recente.
type Comparison struct {
	Bar      []ComparisonEntry `json:"bar"`
	FastFood []ComparisonEntry `json:"fastfood"`
}

// CalculateTotals recalcula todos os totais derivados do livro-razão. Saldos
// de setor são acumulados; saldos de carteira são do dia de now, porque o
// fecho reinicia cada carteira com um saldo inicial datado do dia seguinte.
func CalculateTotals(txs []entity.Transaction, now time.Time, policy finance.WalletPolicy) Totals {
	var t Totals

	t.Bar = sectorTotals(txs, entity.SectorBar)
	t.FastFood = sectorTotals(txs, entity.SectorFastFood)
	t.MPesa = walletTotals(txs, entity.WalletMPesa, now, policy)
	t.EMola = walletTotals(txs, entity.WalletEMola, now, policy)

	t.ConsolidatedCash = t.Bar.Total.Add(t.FastFood.Total)
	t.ConsolidatedWallets = t.MPesa.Total.Add(t.EMola.Total)
	t.GrandTotal = t.ConsolidatedCash.Add(t.ConsolidatedWallets)

	profitFromSales := decimal.Zero
	hasSaleProfit := false
	for _, tx := range txs {
		if !tx.SameDay(now) {
			continue
		}
		switch tx.Kind {
		case entity.KindSale:
			t.SalesToday = t.SalesToday.Add(tx.Amount)
			if tx.Profit != nil {
				profitFromSales = profitFromSales.Add(*tx.Profit)
				hasSaleProfit = true
			}
		case entity.KindPurchase:
			t.PurchasesToday = t.PurchasesToday.Add(tx.Amount)
		}
	}
	// Vendas de catálogo carregam lucro congelado; sem nenhuma, cai na conta
	// da variante antiga: vendas menos compras do dia.
	if hasSaleProfit {
		t.ProfitToday = profitFromSales
	} else {
		t.ProfitToday = t.SalesToday.Sub(t.PurchasesToday)
	}

	t.TransactionCount = len(txs)
	return t
}

// WalletBalance devolve o saldo de uma carteira na data de calendário de day:
// saldo inicial do dia mais os movimentos e ajustes do dia combinados pela
// política. É a fórmula que o fecho confronta com o saldo declarado.
func WalletBalance(txs []entity.Transaction, wallet entity.Wallet, day time.Time, policy finance.WalletPolicy) decimal.Decimal {
	w := walletTotals(txs, wallet, day, policy)
	return w.Total
}

// CalculateComparison monta a série de ComparisonDays dias por setor, da mais
// antiga para a mais recente. Sempre devolve séries completas, ainda que tudo
// seja zero.
func CalculateComparison(txs []entity.Transaction, now time.Time) Comparison {
	return Comparison{
		Bar:      sectorSeries(txs, entity.SectorBar, now),
		FastFood: sectorSeries(txs, entity.SectorFastFood, now),
	}
}

func sectorSeries(txs []entity.Transaction, sector entity.Sector, now time.Time) []ComparisonEntry {
	series := make([]ComparisonEntry, 0, ComparisonDays)
	for i := ComparisonDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		sales := decimal.Zero
		purchases := decimal.Zero
		for _, tx := range txs {
			if tx.Sector != sector || !tx.SameDay(day) {
				continue
			}
			switch tx.Kind {
			case entity.KindSale:
				sales = sales.Add(tx.Amount)
			case entity.KindPurchase:
				purchases = purchases.Add(tx.Amount)
			}
		}
		series = append(series, ComparisonEntry{
			Date:      day.Format("02/01/2006"),
			Sales:     sales,
			Purchases: purchases,
			Profit:    sales.Sub(purchases),
		})
	}
	return series
}

func sectorTotals(txs []entity.Transaction, sector entity.Sector) SectorTotals {
	var t SectorTotals
	for _, tx := range txs {
		if tx.Sector != sector {
			continue
		}
		switch tx.Kind {
		case entity.KindOpeningBalance:
			t.Opening = t.Opening.Add(tx.Amount)
		case entity.KindSale:
			t.Sales = t.Sales.Add(tx.Amount)
		}
	}
	t.Total = t.Opening.Add(t.Sales)
	return t
}

func walletTotals(txs []entity.Transaction, wallet entity.Wallet, day time.Time, policy finance.WalletPolicy) WalletTotals {
	var w WalletTotals
	for _, tx := range txs {
		if tx.Wallet != wallet || !tx.SameDay(day) {
			continue
		}
		switch tx.Kind {
		case entity.KindOpeningBalance:
			w.Opening = w.Opening.Add(tx.Amount)
		case entity.KindWalletMovement, entity.KindAdjustment:
			switch tx.PaymentChannel {
			case entity.ChannelPhysical:
				w.Physical = w.Physical.Add(tx.Amount)
			case entity.ChannelElectronic:
				w.Electronic = w.Electronic.Add(tx.Amount)
			}
		}
	}
	w.Total = w.Opening.Add(policy.Balance(w.Physical, w.Electronic))
	return w
}
