package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
)

// CashLedger expone las lecturas del libro de caja.
type CashLedger struct {
	cashRepo repository.CashMovementRepository
}

// NewCashLedger construye el lector de caja.
func NewCashLedger(cashRepo repository.CashMovementRepository) *CashLedger {
	return &CashLedger{cashRepo: cashRepo}
}

// Position devuelve la posición de caja del día: suma con signo de todos los
// movimientos (IN suma, OUT resta).
func (l *CashLedger) Position(ctx context.Context, day time.Time) (decimal.Decimal, error) {
	return l.cashRepo.SumByDay(day)
}

// PositionByMethod desglosa la posición del día por método de pago, para el
// cierre de caja (efectivo contra tarjeta/transferencia).
func (l *CashLedger) PositionByMethod(ctx context.Context, day time.Time) (map[string]decimal.Decimal, error) {
	return l.cashRepo.SumByDayAndMethod(day)
}

// Movements lista los movimientos de caja del día.
func (l *CashLedger) Movements(ctx context.Context, day time.Time) ([]*entity.CashMovement, error) {
	return l.cashRepo.ListByDay(day)
}
