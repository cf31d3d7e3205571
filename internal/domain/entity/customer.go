package entity

import "time"

// Customer representa un cliente de la tienda (fiado, crédito a favor, cambios).
type Customer struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
