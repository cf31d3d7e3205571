package ledger

import (
	"context"

	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
)

// Repos agrupa los repositorios atados a una misma transacción. El motor de
// ventas toca hasta seis tablas por operación, así que se pasan en bloque.
type Repos struct {
	Products  repository.ProductRepository
	Customers repository.CustomerRepository
	Sales     repository.SaleRepository
	Stock     repository.StockRepository
	StockMovs repository.StockMovementRepository
	Cash      repository.CashMovementRepository
	Accounts  repository.AccountRepository
	Exchanges repository.ExchangeRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para cada operación del
// motor: si fn devuelve error, ningún registro queda escrito.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}

// StockNotifier empuja el nuevo stock de un producto al marketplace.
// Es best-effort y no bloqueante: un fallo del notificador nunca afecta ni
// revierte la operación local que lo originó.
type StockNotifier interface {
	NotifyStockChange(productID string, newStock int64)
}
