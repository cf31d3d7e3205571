package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
)

var _ repository.CashMovementRepository = (*CashMovementRepo)(nil)

// CashMovementRepo implementación del libro de caja.
type CashMovementRepo struct {
	q Querier
}

// NewCashMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCashMovementRepository(q Querier) *CashMovementRepo {
	return &CashMovementRepo{q: q}
}

// Create inserta un movimiento de caja.
func (r *CashMovementRepo) Create(m *entity.CashMovement) error {
	query := `
		INSERT INTO cash_movements
			(id, movement_type, direction, amount, reference_type, reference_id, payment_method, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Type, m.Direction, m.Amount, m.ReferenceType, m.ReferenceID,
		m.PaymentMethod, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cash movement: %w", err)
	}
	return nil
}

// SumByDay posición de caja del día: IN suma, OUT resta.
func (r *CashMovementRepo) SumByDay(day time.Time) (decimal.Decimal, error) {
	from, to := dayRange(day)
	query := `
		SELECT COALESCE(SUM(CASE WHEN direction = 'OUT' THEN -amount ELSE amount END), 0)
		FROM cash_movements WHERE created_at >= $1 AND created_at < $2`
	var sum decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, from, to).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum cash movements: %w", err)
	}
	return sum, nil
}

// SumByDayAndMethod desglosa la posición del día por método de pago.
func (r *CashMovementRepo) SumByDayAndMethod(day time.Time) (map[string]decimal.Decimal, error) {
	from, to := dayRange(day)
	query := `
		SELECT payment_method,
		       COALESCE(SUM(CASE WHEN direction = 'OUT' THEN -amount ELSE amount END), 0)
		FROM cash_movements WHERE created_at >= $1 AND created_at < $2
		GROUP BY payment_method`
	rows, err := r.q.Query(context.Background(), query, from, to)
	if err != nil {
		return nil, fmt.Errorf("sum cash by method: %w", err)
	}
	defer rows.Close()
	out := make(map[string]decimal.Decimal)
	for rows.Next() {
		var method string
		var sum decimal.Decimal
		if err := rows.Scan(&method, &sum); err != nil {
			return nil, fmt.Errorf("scan cash sum: %w", err)
		}
		out[method] = sum
	}
	return out, rows.Err()
}

// ListByDay lista los movimientos de caja del día.
func (r *CashMovementRepo) ListByDay(day time.Time) ([]*entity.CashMovement, error) {
	from, to := dayRange(day)
	query := `
		SELECT id, movement_type, direction, amount, reference_type, reference_id, payment_method, created_at
		FROM cash_movements WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list cash movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.CashMovement
	for rows.Next() {
		var m entity.CashMovement
		if err := rows.Scan(&m.ID, &m.Type, &m.Direction, &m.Amount, &m.ReferenceType,
			&m.ReferenceID, &m.PaymentMethod, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cash movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// dayRange devuelve [inicio, fin) del día en la zona horaria del argumento.
func dayRange(day time.Time) (time.Time, time.Time) {
	y, m, d := day.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, day.Location())
	return from, from.AddDate(0, 0, 1)
}
