package repository

import "github.com/tu-usuario/tienda-pos/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetByIDs devuelve los productos existentes indexados por ID; los IDs
	// ausentes simplemente no aparecen en el mapa.
	GetByIDs(ids []string) (map[string]*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
}
