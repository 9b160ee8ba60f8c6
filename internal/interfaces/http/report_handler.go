package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Iraldo49/financeiro/internal/application/dto"
	"github.com/Iraldo49/financeiro/internal/application/fecho"
	"github.com/Iraldo49/financeiro/internal/application/ledger"
	"github.com/Iraldo49/financeiro/internal/application/report"
	"github.com/Iraldo49/financeiro/internal/domain/entity"
	"github.com/Iraldo49/financeiro/internal/domain/finance"
)

// ReportHandler atende o painel, a série de comparação, o fecho de carteiras
// e a exportação do relatório em texto.
type ReportHandler struct {
	ledger   *ledger.Store
	fecho    *fecho.UseCase
	exporter *report.Exporter
	policy   finance.WalletPolicy
}

// NewReportHandler constrói o handler.
func NewReportHandler(ledger *ledger.Store, fechoUC *fecho.UseCase, exporter *report.Exporter, policy finance.WalletPolicy) *ReportHandler {
	return &ReportHandler{ledger: ledger, fecho: fechoUC, exporter: exporter, policy: policy}
}

// Dashboard devolve todos os totais derivados do livro-razão.
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	totals := report.CalculateTotals(h.ledger.List(), time.Now(), h.policy)
	return c.JSON(totals)
}

// Comparison devolve a série de 7 dias de vendas/compras/lucro por setor.
func (h *ReportHandler) Comparison(c *fiber.Ctx) error {
	return c.JSON(report.CalculateComparison(h.ledger.List(), time.Now()))
}

// Fecho executa o fecho diário de uma carteira com o saldo físico declarado.
func (h *ReportHandler) Fecho(c *fiber.Ctx) error {
	var in dto.FechoRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}

	result, err := h.fecho.Reconcile(entity.Wallet(in.Wallet), in.DeclaredBalance, time.Now())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// Export devolve o relatório financeiro como download de texto plano.
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	now := time.Now()
	totals := report.CalculateTotals(h.ledger.List(), now, h.policy)
	body := h.exporter.Render(totals, now)

	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+report.Filename(now)+`"`)
	return c.SendString(body)
}
