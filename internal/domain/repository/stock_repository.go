package repository

import "github.com/tu-usuario/tienda-pos/internal/domain/entity"

// StockRepository define el puerto para la fila materializada de stock por
// producto. Se actualiza en la misma transacción que inserta cada movimiento.
type StockRepository interface {
	Get(productID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE): cada producto es un
	// dominio de serialización para las operaciones que mutan stock.
	GetForUpdate(productID string) (*entity.Stock, error)
	GetMany(productIDs []string) (map[string]int64, error)
	Upsert(stock *entity.Stock) error
}
