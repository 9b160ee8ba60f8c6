package finance

import "github.com/shopspring/decimal"

// WalletPolicy define como o saldo de uma carteira combina os canais físico e
// eletrônico. Operações diferentes tratam o eletrônico como saída ou como
// entrada, então a fórmula é uma política explícita e configurável.
type WalletPolicy string

const (
	// WalletPolicyNet trata o eletrônico como saída: fisico - eletronico.
	// É o padrão, porque faz o ajuste de fecho corrigir o saldo no replay.
	WalletPolicyNet WalletPolicy = "liquida"
	// WalletPolicyAdditive soma os dois canais: fisico + eletronico, para
	// operações que recebem por ambos e nunca pagam pela carteira.
	WalletPolicyAdditive WalletPolicy = "aditiva"
)

// Valid informa se a política é uma das conhecidas.
func (p WalletPolicy) Valid() bool {
	return p == WalletPolicyNet || p == WalletPolicyAdditive
}

// Balance aplica a política aos totais por canal.
func (p WalletPolicy) Balance(physical, electronic decimal.Decimal) decimal.Decimal {
	if p == WalletPolicyAdditive {
		return physical.Add(electronic)
	}
	return physical.Sub(electronic)
}
