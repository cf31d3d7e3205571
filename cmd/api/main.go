package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/tienda-pos/internal/application/ledger"
	"github.com/tu-usuario/tienda-pos/internal/infrastructure/mercadolibre"
	"github.com/tu-usuario/tienda-pos/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/tienda-pos/internal/interfaces/http"
	"github.com/tu-usuario/tienda-pos/internal/worker"
	"github.com/tu-usuario/tienda-pos/pkg/config"
	"github.com/tu-usuario/tienda-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	stockMovRepo := postgres.NewStockMovementRepository(pool)
	cashRepo := postgres.NewCashMovementRepository(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Notificador de stock para Mercado Libre. Si está deshabilitado, los
	// workers descartan todo y la tienda opera solo en modo local.
	var pusher worker.StockPusher
	if cfg.MeLi.Enabled {
		pusher = mercadolibre.NewClient(cfg.MeLi)
	}
	stockSync := worker.NewStockSync(pusher, log, cfg.MeLi.Workers, cfg.MeLi.QueueSize)
	stockSync.Start(ctx)

	createSaleUC := ledger.NewCreateSaleUseCase(txRunner, productRepo, customerRepo, stockRepo, stockSync)
	cancelSaleUC := ledger.NewCancelSaleUseCase(txRunner, stockSync)
	conditionalUC := ledger.NewConditionalSaleUseCase(txRunner, stockSync)
	accountUC := ledger.NewAccountUseCase(txRunner, accountRepo, customerRepo)
	exchangeUC := ledger.NewCreateExchangeUseCase(txRunner, productRepo, customerRepo, stockRepo, stockSync)
	stockLedger := ledger.NewStockLedger(stockRepo, stockMovRepo)
	cashLedger := ledger.NewCashLedger(cashRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CreateSale:  createSaleUC,
		CancelSale:  cancelSaleUC,
		Conditional: conditionalUC,
		Account:     accountUC,
		Exchange:    exchangeUC,
		StockLedger: stockLedger,
		CashLedger:  cashLedger,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	// Drena la cola de notificaciones antes de salir.
	stockSync.Stop()

	log.Info().Msg("aplicación detenida")
}
