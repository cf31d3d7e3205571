package repository

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
)

// AccountRepository define el puerto de persistencia para cuentas corrientes y
// sus movimientos. Los movimientos son inmutables; los reversos se registran
// como movimientos compensatorios nuevos, nunca borrando historia.
type AccountRepository interface {
	Create(account *entity.CurrentAccount) error
	GetByID(id string) (*entity.CurrentAccount, error)
	GetByCustomerID(customerID string) (*entity.CurrentAccount, error)
	// GetByCustomerForUpdate bloquea la fila de la cuenta: cada cuenta es un
	// dominio de serialización para las operaciones que mutan su saldo.
	GetByCustomerForUpdate(customerID string) (*entity.CurrentAccount, error)
	GetForUpdate(id string) (*entity.CurrentAccount, error)
	UpdateStatus(id, status string) error
	CreateMovement(movement *entity.AccountMovement) error
	GetMovementByID(id string) (*entity.AccountMovement, error)
	// Balance es la suma de los montos con signo de los movimientos de la cuenta.
	Balance(accountID string) (decimal.Decimal, error)
	ListMovements(accountID string, limit, offset int) ([]*entity.AccountMovement, error)
	ListMovementsByReference(accountID, referenceType, referenceID string) ([]*entity.AccountMovement, error)
}
