package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/tienda-pos/internal/application/ledger"
)

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Cada
// operación del motor de ventas corre completa en una transacción: no existe
// el camino de borrados compensatorios, el Rollback lo resuelve.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repos atados a la tx y hace
// Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos ledger.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := ledger.Repos{
		Products:  NewProductRepository(tx),
		Customers: NewCustomerRepository(tx),
		Sales:     NewSaleRepository(tx),
		Stock:     NewStockRepository(tx),
		StockMovs: NewStockMovementRepository(tx),
		Cash:      NewCashMovementRepository(tx),
		Accounts:  NewAccountRepository(tx),
		Exchanges: NewExchangeRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
