package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dirección de los ítems de un cambio de prendas.
const (
	ExchangeItemIn  = "IN"  // prenda que el cliente devuelve (entra a stock)
	ExchangeItemOut = "OUT" // prenda que el cliente se lleva (sale de stock)
)

// Exchange es un cambio de prendas. DifferenceAmount es con signo: positivo si
// el cliente debe pagar diferencia, negativo si queda a favor del cliente
// (en ese caso CustomerID es obligatorio y se le acredita la diferencia).
type Exchange struct {
	ID               string
	Date             time.Time
	CustomerID       *string
	DifferenceAmount decimal.Decimal
	Note             string
	CreatedAt        time.Time
}

// ExchangeItem es una prenda involucrada en el cambio, entrante o saliente.
type ExchangeItem struct {
	ID         string
	ExchangeID string
	ProductID  string
	Quantity   int64
	Direction  string // ExchangeItemIn | ExchangeItemOut
}
