package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
)

// applyStockMovement inserta un movimiento en el libro de stock y actualiza la
// fila materializada del producto en la misma transacción. La fila ya debe
// estar bloqueada (GetForUpdate). Si enforce es true y la cantidad dejaría el
// stock negativo, no escribe nada y devuelve ErrInsufficientStock.
// Devuelve el stock resultante del producto.
func applyStockMovement(r Repos, mov *entity.StockMovement, enforce bool, now time.Time) (int64, error) {
	stock, err := r.Stock.GetForUpdate(mov.ProductID)
	if err != nil {
		return 0, err
	}
	newQty := stock.Quantity + mov.Quantity
	if enforce && newQty < 0 {
		return 0, domain.ErrInsufficientStock
	}
	stock.Quantity = newQty
	stock.UpdatedAt = now
	if err := r.Stock.Upsert(stock); err != nil {
		return 0, err
	}
	if err := r.StockMovs.Create(mov); err != nil {
		return 0, err
	}
	return newQty, nil
}

// getOrCreateAccount devuelve la cuenta corriente del cliente con la fila
// bloqueada, creándola en estado PROBANDO si no existe. Si dos transacciones
// la crean a la vez, la segunda cae en ErrDuplicate y relee la fila ganadora.
func getOrCreateAccount(r Repos, customerID string, now time.Time) (*entity.CurrentAccount, error) {
	account, err := r.Accounts.GetByCustomerForUpdate(customerID)
	if err != nil {
		return nil, err
	}
	if account != nil {
		return account, nil
	}
	account = &entity.CurrentAccount{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		Status:     entity.AccountStatusProbando,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := r.Accounts.Create(account); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return r.Accounts.GetByCustomerForUpdate(customerID)
		}
		return nil, err
	}
	return account, nil
}

// refreshAccountStatus recalcula el saldo de la cuenta y persiste el estado
// derivado (DEUDA si saldo > 0, CANCELADO en caso contrario). Se llama después
// de toda operación que afecte movimientos, nunca de forma aislada.
func refreshAccountStatus(r Repos, accountID string) (decimal.Decimal, error) {
	balance, err := r.Accounts.Balance(accountID)
	if err != nil {
		return decimal.Zero, err
	}
	if err := r.Accounts.UpdateStatus(accountID, entity.StatusForBalance(balance)); err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}
