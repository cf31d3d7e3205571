package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Canales de venta.
const (
	SaleChannelPhysical     = "PHYSICAL"
	SaleChannelMercadoLibre = "MERCADOLIBRE"
)

// Tipos de venta.
const (
	SaleTypeNormal      = "NORMAL"
	SaleTypeConditional = "CONDITIONAL"
)

// Estados de una venta condicional (solo cuando SaleType = CONDITIONAL).
const (
	ConditionalOpen      = "OPEN"      // prendas entregadas, pago pendiente
	ConditionalConfirmed = "CONFIRMED" // cliente se quedó con las prendas
	ConditionalReturned  = "RETURNED"  // cliente devolvió todo
)

// Métodos de pago.
const (
	PaymentCash     = "CASH"
	PaymentCard     = "CARD"
	PaymentTransfer = "TRANSFER"
)

// Sale es la cabecera de una venta. PaidAmount nunca supera TotalAmount.
// CancelledAt presente significa venta anulada (inmutable desde entonces).
type Sale struct {
	ID                string
	Date              time.Time
	Channel           string // SaleChannel*
	CustomerID        *string
	TotalAmount       decimal.Decimal
	PaidAmount        decimal.Decimal
	IsFiado           bool // saldo pendiente cargado a la cuenta del cliente
	PaymentMethod     string
	Notes             string
	SaleType          string // SaleType*
	ConditionalStatus string // Conditional*; vacío si la venta es NORMAL
	CancelledAt       *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Cancelled indica si la venta está anulada.
func (s *Sale) Cancelled() bool {
	return s.CancelledAt != nil
}

// Pending devuelve el saldo sin pagar de la venta.
func (s *Sale) Pending() decimal.Decimal {
	return s.TotalAmount.Sub(s.PaidAmount)
}

// SaleItem es una línea de venta, hija de Sale.
type SaleItem struct {
	ID         string
	SaleID     string
	ProductID  string
	Quantity   int64
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal // Quantity × UnitPrice
}
