package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/Iraldo49/financeiro/pkg/money"
)

// Exporter monta o relatório financeiro em texto plano. Os números saem da
// mesma estrutura Totals do painel e passam pelo mesmo formatador, então
// batem com o que a agregação calculou.
type Exporter struct {
	businessName string
	money        *money.Formatter
}

// NewExporter constrói o exportador de relatórios.
func NewExporter(businessName string, formatter *money.Formatter) *Exporter {
	return &Exporter{businessName: businessName, money: formatter}
}

// Filename devolve o nome do arquivo para a data:
// relatorio_financeiro_DD-MM-AAAA.txt.
func Filename(now time.Time) string {
	return "relatorio_financeiro_" + now.Format("02-01-2006") + ".txt"
}

// Render produz o texto do relatório para os totais dados.
func (e *Exporter) Render(t Totals, now time.Time) string {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	line("RELATÓRIO FINANCEIRO - %s", e.businessName)
	line("Data: %s %s", now.Format("02/01/2006"), now.Format("15:04:05"))
	line("%s", strings.Repeat("=", 60))
	line("")
	line("CAIXA POR SETOR")
	line("%s", strings.Repeat("-", 40))
	line("🍺 BAR")
	line("   Saldo Inicial: %s", e.money.Format(t.Bar.Opening))
	line("   Total Vendas:  %s", e.money.Format(t.Bar.Sales))
	line("   Saldo Final:   %s", e.money.Format(t.Bar.Total))
	line("")
	line("🍔 FAST FOOD")
	line("   Saldo Inicial: %s", e.money.Format(t.FastFood.Opening))
	line("   Total Vendas:  %s", e.money.Format(t.FastFood.Sales))
	line("   Saldo Final:   %s", e.money.Format(t.FastFood.Total))
	line("")
	line("💵 CAIXA CONSOLIDADO: %s", e.money.Format(t.ConsolidatedCash))
	line("")
	line("CARTEIRAS MÓVEIS (HOJE)")
	line("%s", strings.Repeat("-", 40))
	line("📲 M-PESA")
	line("   Dinheiro Físico:     %s", e.money.Format(t.MPesa.Physical))
	line("   Dinheiro Eletrônico: %s", e.money.Format(t.MPesa.Electronic))
	line("   Total M-Pesa:        %s", e.money.Format(t.MPesa.Total))
	line("")
	line("📲 E-MOLA")
	line("   Dinheiro Físico:     %s", e.money.Format(t.EMola.Physical))
	line("   Dinheiro Eletrônico: %s", e.money.Format(t.EMola.Electronic))
	line("   Total E-mola:        %s", e.money.Format(t.EMola.Total))
	line("")
	line("📱 CARTEIRAS CONSOLIDADO: %s", e.money.Format(t.ConsolidatedWallets))
	line("")
	line("RESUMO DE COMPRAS E VENDAS (HOJE)")
	line("%s", strings.Repeat("-", 40))
	line("Total Vendas:  %s", e.money.Format(t.SalesToday))
	line("Total Compras: %s", e.money.Format(t.PurchasesToday))
	line("Lucro Líquido: %s", e.money.Format(t.ProfitToday))
	line("")
	line("💰 TOTAL GERAL: %s", e.money.Format(t.GrandTotal))
	line("")
	line("Total de Transações: %d", t.TransactionCount)
	line("%s", strings.Repeat("=", 60))

	return b.String()
}
