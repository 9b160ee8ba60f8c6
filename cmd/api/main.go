package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Iraldo49/financeiro/internal/application/catalog"
	"github.com/Iraldo49/financeiro/internal/application/fecho"
	"github.com/Iraldo49/financeiro/internal/application/inventory"
	"github.com/Iraldo49/financeiro/internal/application/ledger"
	"github.com/Iraldo49/financeiro/internal/application/report"
	"github.com/Iraldo49/financeiro/internal/application/sales"
	"github.com/Iraldo49/financeiro/internal/infrastructure/storage"
	httpRouter "github.com/Iraldo49/financeiro/internal/interfaces/http"
	"github.com/Iraldo49/financeiro/pkg/config"
	"github.com/Iraldo49/financeiro/pkg/logger"
	"github.com/Iraldo49/financeiro/pkg/money"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("wallet_policy", string(cfg.Finance.WalletPolicy)).
		Msg("iniciando aplicação")

	store, err := storage.NewFileStore(cfg.Storage.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir armazenamento")
	}

	ledgerStore := ledger.NewStore(store, cfg.Finance.LedgerCapacity)
	if err := ledgerStore.Load(); err != nil {
		log.Fatal().Err(err).Msg("carregar livro-razão")
	}
	inventoryUC := inventory.NewUseCase(store, ledgerStore)
	if err := inventoryUC.Load(); err != nil {
		log.Fatal().Err(err).Msg("carregar estoque")
	}
	catalogUC := catalog.NewUseCase(store, inventoryUC)
	if err := catalogUC.Load(); err != nil {
		log.Fatal().Err(err).Msg("carregar catálogo")
	}
	salesUC := sales.NewUseCase(catalogUC, inventoryUC, ledgerStore)
	fechoUC := fecho.NewUseCase(ledgerStore, cfg.Finance.WalletPolicy)
	exporter := report.NewExporter(cfg.App.Name, money.NewFormatter(cfg.Finance.CurrencySymbol))

	log.Info().Int("transacoes", ledgerStore.Len()).Msg("livro-razão carregado")

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		Transactions: httpRouter.NewTransactionHandler(ledgerStore),
		Inventory:    httpRouter.NewInventoryHandler(inventoryUC, salesUC),
		Products:     httpRouter.NewProductHandler(catalogUC),
		Reports:      httpRouter.NewReportHandler(ledgerStore, fechoUC, exporter, cfg.Finance.WalletPolicy),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Fatal().Err(err).Msg("servidor HTTP")
		}
	}()
	log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor no ar")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("encerrando")
	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("encerrar servidor")
	}
}
