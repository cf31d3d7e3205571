package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/tienda-pos/internal/application/ledger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CreateSale  *ledger.CreateSaleUseCase
	CancelSale  *ledger.CancelSaleUseCase
	Conditional *ledger.ConditionalSaleUseCase
	Account     *ledger.AccountUseCase
	Exchange    *ledger.CreateExchangeUseCase
	StockLedger *ledger.StockLedger
	CashLedger  *ledger.CashLedger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Ventas
	sales := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.CreateSale, deps.CancelSale, deps.Conditional)
	sales.Post("/", saleHandler.Create)
	sales.Post("/:id/cancel", saleHandler.Cancel)
	sales.Post("/:id/confirm", saleHandler.Confirm)
	sales.Post("/:id/return", saleHandler.Return)

	// Cuentas corrientes
	accounts := api.Group("/accounts")
	accountHandler := NewAccountHandler(deps.Account)
	accounts.Post("/payments", accountHandler.Pay)
	accounts.Post("/payments/:movement_id/reverse", accountHandler.ReversePayment)
	accounts.Post("/debts", accountHandler.AddDebt)
	accounts.Get("/:customer_id/balance", accountHandler.Balance)
	accounts.Get("/:customer_id/statement", accountHandler.Statement)

	// Cambios de prendas
	exchanges := api.Group("/exchanges")
	exchangeHandler := NewExchangeHandler(deps.Exchange)
	exchanges.Post("/", exchangeHandler.Create)

	// Stock
	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.StockLedger)
	stock.Get("/reconcile", stockHandler.Reconcile)
	stock.Get("/:product_id", stockHandler.Get)

	// Caja
	cash := api.Group("/cash")
	cashHandler := NewCashHandler(deps.CashLedger)
	cash.Get("/position", cashHandler.Position)
	cash.Get("/movements", cashHandler.Movements)
}
