package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayAccountRequest pago de deuda de un cliente.
type PayAccountRequest struct {
	CustomerID    string          `json:"customer_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
}

// AddDebtRequest carga manual de deuda (sin efecto de caja).
type AddDebtRequest struct {
	CustomerID string          `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
	Note       string          `json:"note"`
}

// BalanceResponse saldo resultante de la cuenta.
type BalanceResponse struct {
	CustomerID string          `json:"customer_id"`
	Balance    decimal.Decimal `json:"balance"`
	Status     string          `json:"status,omitempty"`
}

// AccountMovementResponse un movimiento del resumen de cuenta.
type AccountMovementResponse struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	ReferenceType string          `json:"reference_type,omitempty"`
	ReferenceID   string          `json:"reference_id,omitempty"`
	Note          string          `json:"note,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// StatementResponse resumen de cuenta del cliente.
type StatementResponse struct {
	CustomerID string                    `json:"customer_id"`
	Status     string                    `json:"status"`
	Balance    decimal.Decimal           `json:"balance"`
	Movements  []AccountMovementResponse `json:"movements"`
}
