package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Iraldo49/financeiro/internal/domain"
)

// Tipos de transação do livro-razão.
const (
	KindOpeningBalance TransactionKind = "saldo_inicial" // saldo inicial de caixa ou carteira
	KindSale           TransactionKind = "venda"
	KindPurchase       TransactionKind = "compra"
	KindWalletMovement TransactionKind = "carteira"
	KindReconciliation TransactionKind = "fecho"
	KindAdjustment     TransactionKind = "ajuste" // correção lançada pelo fecho quando há desvio
)

// TransactionKind discrimina a variante da transação; cada construtor New*
// valida os campos exigidos pela sua variante.
type TransactionKind string

// Sector identifica um caixa físico.
type Sector string

const (
	SectorBar      Sector = "bar"
	SectorFastFood Sector = "fastfood"
)

// Valid informa se o setor é um dos caixas conhecidos.
func (s Sector) Valid() bool { return s == SectorBar || s == SectorFastFood }

// Wallet identifica uma carteira móvel.
type Wallet string

const (
	WalletMPesa Wallet = "mpesa"
	WalletEMola Wallet = "emola"
)

// Valid informa se a carteira é uma das conhecidas.
func (w Wallet) Valid() bool { return w == WalletMPesa || w == WalletEMola }

// PaymentChannel distingue dinheiro físico de saldo eletrônico num movimento
// de carteira; o sinal do saldo depende da política em vigor.
type PaymentChannel string

const (
	ChannelPhysical   PaymentChannel = "fisico"
	ChannelElectronic PaymentChannel = "eletronico"
)

// Valid informa se o canal é físico ou eletrônico.
func (c PaymentChannel) Valid() bool { return c == ChannelPhysical || c == ChannelElectronic }

// Transaction é o registro atômico e imutável do livro-razão. Correções nunca
// editam uma transação existente; entram como novas transações (ajuste/fecho).
// Campos opcionais pertencem a variantes específicas de Kind e são garantidos
// pelos construtores.
type Transaction struct {
	ID             string          `json:"id"`
	Kind           TransactionKind `json:"type"`
	Sector         Sector          `json:"sector,omitempty"`
	Wallet         Wallet          `json:"wallet,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	PaymentChannel PaymentChannel  `json:"payment_type,omitempty"`
	Description    string          `json:"description,omitempty"`

	// Venda de produto: retrato do catálogo no momento da venda, para que
	// edições posteriores não alterem lucro histórico.
	ProductID   string           `json:"product_id,omitempty"`
	ProductName string           `json:"product_name,omitempty"`
	Quantity    *decimal.Decimal `json:"quantity,omitempty"`
	UnitCost    *decimal.Decimal `json:"unit_cost,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
	Profit      *decimal.Decimal `json:"profit,omitempty"`

	// Compra de insumo.
	Ingredient string `json:"ingredient,omitempty"`
	Supplier   string `json:"supplier,omitempty"`

	// Fecho de carteira.
	ExpectedBalance *decimal.Decimal `json:"expected_balance,omitempty"`
	Variance        *decimal.Decimal `json:"variance,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func newID() string { return "tx_" + uuid.NewString() }

func validAmount(amount decimal.Decimal) bool { return !amount.IsNegative() }

// NewOpeningBalance cria um saldo inicial de caixa para um setor.
func NewOpeningBalance(sector Sector, amount decimal.Decimal, description string, at time.Time) (Transaction, error) {
	if !sector.Valid() || !validAmount(amount) {
		return Transaction{}, domain.ErrInvalidInput
	}
	return Transaction{
		ID:          newID(),
		Kind:        KindOpeningBalance,
		Sector:      sector,
		Amount:      amount,
		Description: description,
		CreatedAt:   at,
	}, nil
}

// NewWalletOpening cria o saldo inicial de uma carteira móvel; o fecho lança
// um destes datado do dia seguinte para que o próximo dia parta do saldo
// declarado, não do calculado.
func NewWalletOpening(wallet Wallet, amount decimal.Decimal, at time.Time) (Transaction, error) {
	if !wallet.Valid() || !validAmount(amount) {
		return Transaction{}, domain.ErrInvalidInput
	}
	return Transaction{
		ID:        newID(),
		Kind:      KindOpeningBalance,
		Wallet:    wallet,
		Amount:    amount,
		CreatedAt: at,
	}, nil
}

// NewSale cria uma venda avulsa (sem vínculo com o catálogo), como nos
// formulários de venda por valor do bar e do fast food.
func NewSale(sector Sector, amount decimal.Decimal, description string, at time.Time) (Transaction, error) {
	if !sector.Valid() || !validAmount(amount) {
		return Transaction{}, domain.ErrInvalidInput
	}
	return Transaction{
		ID:          newID(),
		Kind:        KindSale,
		Sector:      sector,
		Amount:      amount,
		Description: description,
		CreatedAt:   at,
	}, nil
}

// SaleSnapshot é o retrato do produto capturado na venda.
type SaleSnapshot struct {
	ProductID   string
	ProductName string
	UnitCost    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// NewProductSale cria uma venda vinculada a um produto do catálogo. O lucro é
// calculado aqui, uma única vez: (preço - custo no momento da venda) * qtde.
// Compras posteriores que mudem o custo médio não alteram este valor.
func NewProductSale(sector Sector, snap SaleSnapshot, quantity decimal.Decimal, at time.Time) (Transaction, error) {
	if !sector.Valid() || snap.ProductID == "" || !quantity.IsPositive() {
		return Transaction{}, domain.ErrInvalidInput
	}
	if snap.UnitPrice.IsNegative() || snap.UnitCost.IsNegative() {
		return Transaction{}, domain.ErrInvalidInput
	}
	qty := quantity
	unitCost := snap.UnitCost
	unitPrice := snap.UnitPrice
	profit := unitPrice.Sub(unitCost).Mul(quantity)
	return Transaction{
		ID:          newID(),
		Kind:        KindSale,
		Sector:      sector,
		Amount:      unitPrice.Mul(quantity),
		Description: snap.ProductName,
		ProductID:   snap.ProductID,
		ProductName: snap.ProductName,
		Quantity:    &qty,
		UnitCost:    &unitCost,
		UnitPrice:   &unitPrice,
		Profit:      &profit,
		CreatedAt:   at,
	}, nil
}

// NewPurchase cria uma compra avulsa (só valor), sem vínculo com o estoque.
func NewPurchase(sector Sector, amount decimal.Decimal, supplier, description string, at time.Time) (Transaction, error) {
	if !sector.Valid() || !validAmount(amount) {
		return Transaction{}, domain.ErrInvalidInput
	}
	if description == "" {
		description = supplier
	}
	return Transaction{
		ID:          newID(),
		Kind:        KindPurchase,
		Sector:      sector,
		Amount:      amount,
		Description: description,
		Supplier:    supplier,
		CreatedAt:   at,
	}, nil
}

// NewStockPurchase cria uma compra de insumo que também alimenta o estoque.
func NewStockPurchase(sector Sector, ingredient string, quantity, totalPrice decimal.Decimal, supplier string, at time.Time) (Transaction, error) {
	if !sector.Valid() || ingredient == "" || !quantity.IsPositive() || !validAmount(totalPrice) {
		return Transaction{}, domain.ErrInvalidInput
	}
	qty := quantity
	return Transaction{
		ID:          newID(),
		Kind:        KindPurchase,
		Sector:      sector,
		Amount:      totalPrice,
		Description: supplier,
		Ingredient:  ingredient,
		Quantity:    &qty,
		Supplier:    supplier,
		CreatedAt:   at,
	}, nil
}

// NewWalletMovement cria um movimento de carteira móvel (físico ou eletrônico).
func NewWalletMovement(wallet Wallet, channel PaymentChannel, amount decimal.Decimal, description string, at time.Time) (Transaction, error) {
	if !wallet.Valid() || !channel.Valid() || !validAmount(amount) {
		return Transaction{}, domain.ErrInvalidInput
	}
	return Transaction{
		ID:             newID(),
		Kind:           KindWalletMovement,
		Wallet:         wallet,
		Amount:         amount,
		PaymentChannel: channel,
		Description:    description,
		CreatedAt:      at,
	}, nil
}

// NewReconciliation cria o registro de fecho de uma carteira: saldo declarado,
// saldo esperado pelo livro-razão e o desvio entre os dois.
func NewReconciliation(wallet Wallet, declared, expected, variance decimal.Decimal, at time.Time) (Transaction, error) {
	if !wallet.Valid() || !validAmount(declared) {
		return Transaction{}, domain.ErrInvalidInput
	}
	exp := expected
	varc := variance
	return Transaction{
		ID:              newID(),
		Kind:            KindReconciliation,
		Wallet:          wallet,
		Amount:          declared,
		ExpectedBalance: &exp,
		Variance:        &varc,
		CreatedAt:       at,
	}, nil
}

// NewAdjustment cria o ajuste lançado pelo fecho quando o desvio não é zero.
// Canal físico modela sobra (entrada); eletrônico modela falta (saída), de
// modo que o replay do livro-razão volte a bater com o saldo declarado.
func NewAdjustment(wallet Wallet, channel PaymentChannel, amount decimal.Decimal, at time.Time) (Transaction, error) {
	if !wallet.Valid() || !channel.Valid() || !validAmount(amount) {
		return Transaction{}, domain.ErrInvalidInput
	}
	return Transaction{
		ID:             newID(),
		Kind:           KindAdjustment,
		Wallet:         wallet,
		Amount:         amount,
		PaymentChannel: channel,
		CreatedAt:      at,
	}, nil
}

// SameDay informa se a transação foi criada na mesma data de calendário de t
// (ano, mês e dia no fuso local), critério usado em todos os filtros diários.
func (t Transaction) SameDay(ref time.Time) bool {
	y1, m1, d1 := t.CreatedAt.Local().Date()
	y2, m2, d2 := ref.Local().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
