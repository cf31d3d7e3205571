package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
)

// CashMovementRepository define el puerto de persistencia para el libro de caja.
type CashMovementRepository interface {
	Create(movement *entity.CashMovement) error
	// SumByDay devuelve la posición de caja del día: suma de montos con signo
	// según la dirección (IN positivo, OUT negativo).
	SumByDay(day time.Time) (decimal.Decimal, error)
	SumByDayAndMethod(day time.Time) (map[string]decimal.Decimal, error)
	ListByDay(day time.Time) ([]*entity.CashMovement, error)
}
