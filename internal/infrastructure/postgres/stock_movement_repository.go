package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del libro de movimientos de stock.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta un movimiento. El índice único parcial sobre
// (reference_type, reference_id) de movimientos de marketplace convierte el
// doble procesamiento de una misma venta remota en ErrDuplicate.
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements
			(id, product_id, movement_type, quantity, reference_type, reference_id, channel, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ProductID, m.Type, m.Quantity, m.ReferenceType, m.ReferenceID,
		m.Channel, m.Notes, m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// SumByProduct suma las cantidades con signo del producto (0 sin movimientos).
func (r *StockMovementRepo) SumByProduct(productID string) (int64, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM stock_movements WHERE product_id = $1`
	var sum int64
	if err := r.q.QueryRow(context.Background(), query, productID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum stock movements: %w", err)
	}
	return sum, nil
}

// SumByProducts variante en lote para validación multilínea y reconciliación.
func (r *StockMovementRepo) SumByProducts(productIDs []string) (map[string]int64, error) {
	out := make(map[string]int64, len(productIDs))
	for _, id := range productIDs {
		out[id] = 0
	}
	if len(productIDs) == 0 {
		return out, nil
	}
	query := `
		SELECT product_id, COALESCE(SUM(quantity), 0)
		FROM stock_movements WHERE product_id = ANY($1)
		GROUP BY product_id`
	rows, err := r.q.Query(context.Background(), query, productIDs)
	if err != nil {
		return nil, fmt.Errorf("sum stock movements batch: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		var sum int64
		if err := rows.Scan(&id, &sum); err != nil {
			return nil, fmt.Errorf("scan stock sum: %w", err)
		}
		out[id] = sum
	}
	return out, rows.Err()
}

// ListByProduct lista los movimientos de un producto, más recientes primero.
func (r *StockMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, product_id, movement_type, quantity, reference_type, reference_id, channel, notes, created_at
		FROM stock_movements WHERE product_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.ReferenceType,
			&m.ReferenceID, &m.Channel, &m.Notes, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
