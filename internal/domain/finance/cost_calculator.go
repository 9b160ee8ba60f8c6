package finance

import "github.com/shopspring/decimal"

// AverageCost implementa o custo médio ponderado (serviço de domínio).
// NovoCusto = ((EstoqueAtual * CustoAtual) + (QtdeEntrada * CustoEntrada)) / (EstoqueAtual + QtdeEntrada)
// Compras sempre se misturam ao histórico; nunca o substituem.
func AverageCost(currentQty, currentCost, incomingQty, incomingCost decimal.Decimal) decimal.Decimal {
	sum := currentQty.Add(incomingQty)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := currentQty.Mul(currentCost).Add(incomingQty.Mul(incomingCost))
	return num.Div(sum)
}
