package repository

import (
	"time"

	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale y sus líneas.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	// GetForUpdate bloquea la fila de la venta (anulación, condicionales).
	GetForUpdate(id string) (*entity.Sale, error)
	GetItems(saleID string) ([]*entity.SaleItem, error)
	Update(sale *entity.Sale) error
	ListByDate(from, to time.Time, limit, offset int) ([]*entity.Sale, error)
}
