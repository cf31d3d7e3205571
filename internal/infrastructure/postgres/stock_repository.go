package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
// Mantiene la fila materializada por producto; el libro de movimientos vive en
// stock_movements.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual de un producto. Sin fila equivale a stock 0.
func (r *StockRepo) Get(productID string) (*entity.Stock, error) {
	query := `SELECT product_id, quantity, updated_at FROM stock WHERE product_id = $1`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, productID).Scan(&s.ProductID, &s.Quantity, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ProductID: productID}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el stock y bloquea la fila (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(productID string) (*entity.Stock, error) {
	query := `SELECT product_id, quantity, updated_at FROM stock WHERE product_id = $1 FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, productID).Scan(&s.ProductID, &s.Quantity, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ProductID: productID}, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// GetMany devuelve el stock actual de varios productos. Los productos sin fila
// aparecen con 0.
func (r *StockRepo) GetMany(productIDs []string) (map[string]int64, error) {
	out := make(map[string]int64, len(productIDs))
	for _, id := range productIDs {
		out[id] = 0
	}
	if len(productIDs) == 0 {
		return out, nil
	}
	query := `SELECT product_id, quantity FROM stock WHERE product_id = ANY($1)`
	rows, err := r.q.Query(context.Background(), query, productIDs)
	if err != nil {
		return nil, fmt.Errorf("get stock batch: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		var qty int64
		if err := rows.Scan(&id, &qty); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		out[id] = qty
	}
	return out, rows.Err()
}

// Upsert inserta o actualiza la cantidad materializada del producto.
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO stock (product_id, quantity, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, stock.ProductID, stock.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}
