package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa una prenda del catálogo. El stock NO se guarda aquí:
// se deriva del libro de movimientos y de la fila materializada en stock.
type Product struct {
	ID        string
	Name      string
	SKU       string
	Barcode   string
	Price     decimal.Decimal
	Cost      decimal.Decimal
	Size      string
	Color     string
	Brand     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
