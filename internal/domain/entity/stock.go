package entity

import "time"

// Stock es la fila materializada del stock actual de un producto. Se actualiza
// en la misma transacción que inserta cada movimiento; el libro de movimientos
// queda como rastro de auditoría. Invariante: Quantity == SUM(movimientos).
type Stock struct {
	ProductID string
	Quantity  int64
	UpdatedAt time.Time
}
