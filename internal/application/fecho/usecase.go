package fecho

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Iraldo49/financeiro/internal/application/report"
	"github.com/Iraldo49/financeiro/internal/domain"
	"github.com/Iraldo49/financeiro/internal/domain/entity"
	"github.com/Iraldo49/financeiro/internal/domain/finance"
)

// Ledger é a visão do livro-razão que o fecho precisa.
type Ledger interface {
	Append(tx entity.Transaction) (entity.Transaction, error)
	List() []entity.Transaction
}

// Result é o desfecho de um fecho de carteira. Variance zero indica fecho
// limpo; diferente de zero indica desvio, já corrigido pelos lançamentos
// feitos na mesma chamada.
type Result struct {
	Wallet   entity.Wallet   `json:"wallet"`
	Declared decimal.Decimal `json:"declared"`
	Expected decimal.Decimal `json:"expected"`
	Variance decimal.Decimal `json:"variance"`
	Adjusted bool            `json:"adjusted"`
}

// UseCase executa o fecho diário ("fecho") de uma carteira móvel.
type UseCase struct {
	ledger Ledger
	policy finance.WalletPolicy
}

// NewUseCase constrói o caso de uso de fecho.
func NewUseCase(ledger Ledger, policy finance.WalletPolicy) *UseCase {
	return &UseCase{ledger: ledger, policy: policy}
}

// Reconcile confronta o saldo físico declarado pelo operador com o saldo que
// o livro-razão implica para o dia de asOf e lança:
//  1. a transação de fecho (declarado, esperado, desvio);
//  2. se há desvio, um ajuste de |desvio| (canal físico para sobra, canal
//     eletrônico para falta), de modo que o replay volte a bater;
//  3. o saldo inicial da carteira para o dia seguinte, com o valor declarado,
//     para que o próximo fecho parta do declarado e não do calculado.
func (uc *UseCase) Reconcile(wallet entity.Wallet, declared decimal.Decimal, asOf time.Time) (Result, error) {
	if !wallet.Valid() || declared.IsNegative() {
		return Result{}, domain.ErrInvalidInput
	}

	expected := report.WalletBalance(uc.ledger.List(), wallet, asOf, uc.policy)
	variance := declared.Sub(expected)

	recTx, err := entity.NewReconciliation(wallet, declared, expected, variance, asOf)
	if err != nil {
		return Result{}, err
	}
	if _, err := uc.ledger.Append(recTx); err != nil {
		return Result{}, err
	}

	adjusted := false
	if !variance.IsZero() {
		channel := entity.ChannelElectronic
		if variance.IsPositive() {
			channel = entity.ChannelPhysical
		}
		adjTx, err := entity.NewAdjustment(wallet, channel, variance.Abs(), asOf)
		if err != nil {
			return Result{}, err
		}
		if _, err := uc.ledger.Append(adjTx); err != nil {
			return Result{}, err
		}
		adjusted = true
	}

	openTx, err := entity.NewWalletOpening(wallet, declared, asOf.AddDate(0, 0, 1))
	if err != nil {
		return Result{}, err
	}
	if _, err := uc.ledger.Append(openTx); err != nil {
		return Result{}, err
	}

	return Result{
		Wallet:   wallet,
		Declared: declared,
		Expected: expected,
		Variance: variance,
		Adjusted: adjusted,
	}, nil
}
