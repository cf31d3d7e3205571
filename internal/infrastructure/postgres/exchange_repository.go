package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
)

var _ repository.ExchangeRepository = (*ExchangeRepo)(nil)

// ExchangeRepo implementación de ExchangeRepository (usable con pool o tx).
type ExchangeRepo struct {
	q Querier
}

// NewExchangeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExchangeRepository(q Querier) *ExchangeRepo {
	return &ExchangeRepo{q: q}
}

// Create persiste la cabecera de un cambio.
func (r *ExchangeRepo) Create(e *entity.Exchange) error {
	query := `
		INSERT INTO exchanges (id, exchange_date, customer_id, difference_amount, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.Date, e.CustomerID, e.DifferenceAmount, e.Note, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert exchange: %w", err)
	}
	return nil
}

// CreateItem persiste una prenda del cambio (entrante o saliente).
func (r *ExchangeRepo) CreateItem(item *entity.ExchangeItem) error {
	query := `
		INSERT INTO exchange_items (id, exchange_id, product_id, quantity, direction)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.ExchangeID, item.ProductID, item.Quantity, item.Direction,
	)
	if err != nil {
		return fmt.Errorf("insert exchange item: %w", err)
	}
	return nil
}

// GetByID obtiene un cambio por ID.
func (r *ExchangeRepo) GetByID(id string) (*entity.Exchange, error) {
	query := `
		SELECT id, exchange_date, customer_id, difference_amount, note, created_at
		FROM exchanges WHERE id = $1`
	var e entity.Exchange
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.Date, &e.CustomerID, &e.DifferenceAmount, &e.Note, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get exchange: %w", err)
	}
	return &e, nil
}

// GetItems devuelve las prendas de un cambio.
func (r *ExchangeRepo) GetItems(exchangeID string) ([]*entity.ExchangeItem, error) {
	query := `
		SELECT id, exchange_id, product_id, quantity, direction
		FROM exchange_items WHERE exchange_id = $1`
	rows, err := r.q.Query(context.Background(), query, exchangeID)
	if err != nil {
		return nil, fmt.Errorf("get exchange items: %w", err)
	}
	defer rows.Close()
	var items []*entity.ExchangeItem
	for rows.Next() {
		var it entity.ExchangeItem
		if err := rows.Scan(&it.ID, &it.ExchangeID, &it.ProductID, &it.Quantity, &it.Direction); err != nil {
			return nil, fmt.Errorf("scan exchange item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}
