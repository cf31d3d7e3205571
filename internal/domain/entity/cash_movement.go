package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de caja.
const (
	CashMovementSale           = "SALE"
	CashMovementAccountPayment = "ACCOUNT_PAYMENT"
	CashMovementAdjustment     = "ADJUSTMENT"
)

// Dirección del movimiento de caja. El monto siempre es una magnitud no
// negativa; el signo lo aporta la dirección.
const (
	CashIn  = "IN"
	CashOut = "OUT"
)

// CashMovement registra un efecto sobre la caja (física o virtual).
type CashMovement struct {
	ID            string
	Type          string          // CashMovement*
	Direction     string          // CashIn | CashOut
	Amount        decimal.Decimal // magnitud, >= 0
	ReferenceType string
	ReferenceID   string
	PaymentMethod string
	CreatedAt     time.Time
}

// Signed devuelve el monto con signo según la dirección.
func (m *CashMovement) Signed() decimal.Decimal {
	if m.Direction == CashOut {
		return m.Amount.Neg()
	}
	return m.Amount
}
