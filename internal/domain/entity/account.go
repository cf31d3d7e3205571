package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una cuenta corriente. El estado se deriva del saldo:
// saldo > 0 → DEUDA, saldo <= 0 → CANCELADO. PROBANDO solo al crearla,
// antes del primer movimiento.
const (
	AccountStatusProbando  = "PROBANDO"
	AccountStatusDeuda     = "DEUDA"
	AccountStatusCancelado = "CANCELADO"
)

// Tipos de movimiento de cuenta. El monto es con signo: DEBT y CONSUME_CREDIT
// positivos (aumentan la deuda), PAYMENT y CREDIT negativos (la reducen).
const (
	AccountMovementDebt          = "DEBT"
	AccountMovementPayment       = "PAYMENT"
	AccountMovementCredit        = "CREDIT"
	AccountMovementConsumeCredit = "CONSUME_CREDIT"
)

// Tipos de referencia propios de cuenta.
const (
	RefAccountPayment  = "ACCOUNT_PAYMENT"
	RefPaymentReversal = "PAYMENT_REVERSAL"
	RefManualDebt      = "MANUAL_DEBT"
)

// CurrentAccount es la cuenta corriente de un cliente (una por cliente,
// creada en forma perezosa al primer uso).
type CurrentAccount struct {
	ID         string
	CustomerID string
	Status     string // AccountStatus*
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AccountMovement es un registro inmutable del libro de cuenta. El saldo de la
// cuenta es la suma de los montos de sus movimientos; saldo > 0 es deuda,
// saldo < 0 es crédito a favor del cliente.
type AccountMovement struct {
	ID            string
	AccountID     string
	Type          string          // AccountMovement*
	Amount        decimal.Decimal // con signo
	ReferenceType string
	ReferenceID   string
	Note          string
	CreatedAt     time.Time
}

// StatusForBalance devuelve el estado que corresponde a un saldo.
func StatusForBalance(balance decimal.Decimal) string {
	if balance.GreaterThan(decimal.Zero) {
		return AccountStatusDeuda
	}
	return AccountStatusCancelado
}
