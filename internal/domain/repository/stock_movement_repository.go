package repository

import "github.com/tu-usuario/tienda-pos/internal/domain/entity"

// StockMovementRepository define el puerto de persistencia para el libro de
// movimientos de stock (solo inserción y lectura; los movimientos son inmutables).
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	// SumByProduct suma las cantidades con signo de todos los movimientos del
	// producto. Un producto sin movimientos suma 0.
	SumByProduct(productID string) (int64, error)
	SumByProducts(productIDs []string) (map[string]int64, error)
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
}
