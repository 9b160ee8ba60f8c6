package http

import (
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Iraldo49/financeiro/internal/application/dto"
	"github.com/Iraldo49/financeiro/internal/application/ledger"
	"github.com/Iraldo49/financeiro/internal/domain"
	"github.com/Iraldo49/financeiro/internal/domain/entity"
)

// TransactionHandler atende os lançamentos simples do livro-razão e as
// consultas/exclusões de transações.
type TransactionHandler struct {
	ledger *ledger.Store
}

// NewTransactionHandler constrói o handler.
func NewTransactionHandler(ledger *ledger.Store) *TransactionHandler {
	return &TransactionHandler{ledger: ledger}
}

// Create lança uma transação simples: saldo inicial, venda avulsa, compra
// avulsa ou movimento de carteira, conforme o campo type.
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.TransactionRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}

	now := time.Now()
	var (
		tx  entity.Transaction
		err error
	)
	switch entity.TransactionKind(in.Type) {
	case entity.KindOpeningBalance:
		if in.Wallet != "" {
			tx, err = entity.NewWalletOpening(entity.Wallet(in.Wallet), in.Amount, now)
		} else {
			tx, err = entity.NewOpeningBalance(entity.Sector(in.Sector), in.Amount, in.Description, now)
		}
	case entity.KindSale:
		tx, err = entity.NewSale(entity.Sector(in.Sector), in.Amount, in.Description, now)
	case entity.KindPurchase:
		tx, err = entity.NewPurchase(entity.Sector(in.Sector), in.Amount, in.Supplier, in.Description, now)
	case entity.KindWalletMovement:
		tx, err = entity.NewWalletMovement(entity.Wallet(in.Wallet), entity.PaymentChannel(in.PaymentType), in.Amount, in.Description, now)
	default:
		err = domain.ErrInvalidInput
	}
	if err != nil {
		return respondError(c, err)
	}

	stored, err := h.ledger.Append(tx)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(stored)
}

// List devolve as transações da mais recente para a mais antiga, com filtro
// opcional ?type=venda|compra|carteira (carteira = qualquer lançamento com
// carteira associada, seja qual for o kind).
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	filter := c.Query("type")

	txs := h.ledger.List()
	filtered := make([]entity.Transaction, 0, len(txs))
	for _, tx := range txs {
		switch filter {
		case "":
			filtered = append(filtered, tx)
		case "carteira":
			if tx.Wallet != "" {
				filtered = append(filtered, tx)
			}
		default:
			if string(tx.Kind) == filter {
				filtered = append(filtered, tx)
			}
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	return c.JSON(fiber.Map{
		"total":        len(filtered),
		"transactions": filtered,
	})
}

// Delete exclui a transação com o ID dado.
func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	if err := h.ledger.Remove(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "transação excluída"})
}

// Clear exclui todas as transações.
func (h *TransactionHandler) Clear(c *fiber.Ctx) error {
	if err := h.ledger.Clear(); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "todas as transações foram excluídas"})
}
