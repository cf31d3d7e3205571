package repository

import "github.com/tu-usuario/tienda-pos/internal/domain/entity"

// ExchangeRepository define el puerto de persistencia para cambios de prendas.
type ExchangeRepository interface {
	Create(exchange *entity.Exchange) error
	CreateItem(item *entity.ExchangeItem) error
	GetByID(id string) (*entity.Exchange, error)
	GetItems(exchangeID string) ([]*entity.ExchangeItem, error)
}
