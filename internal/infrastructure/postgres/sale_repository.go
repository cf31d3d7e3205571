package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, sale_date, channel, customer_id, total_amount, paid_amount,
	is_fiado, payment_method, notes, sale_type, conditional_status, cancelled_at,
	created_at, updated_at`

// Create persiste la cabecera de una venta.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.Date, sale.Channel, sale.CustomerID, sale.TotalAmount, sale.PaidAmount,
		sale.IsFiado, sale.PaymentMethod, sale.Notes, sale.SaleType,
		nullIfEmpty(sale.ConditionalStatus), sale.CancelledAt, sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de venta.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, total_price)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, item.ProductID, item.Quantity, item.UnitPrice, item.TotalPrice,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	return r.getOne(query, id)
}

// GetForUpdate obtiene la venta y bloquea la fila (SELECT FOR UPDATE) para
// anulaciones y transiciones de condicionales.
func (r *SaleRepo) GetForUpdate(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1 FOR UPDATE`
	return r.getOne(query, id)
}

func (r *SaleRepo) getOne(query, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// GetItems devuelve las líneas de una venta.
func (r *SaleRepo) GetItems(saleID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, quantity, unit_price, total_price
		FROM sale_items WHERE sale_id = $1`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("get sale items: %w", err)
	}
	defer rows.Close()
	var items []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// Update actualiza la cabecera (pago acumulado, estado condicional, anulación).
func (r *SaleRepo) Update(sale *entity.Sale) error {
	query := `
		UPDATE sales
		SET paid_amount = $2, is_fiado = $3, payment_method = $4,
		    conditional_status = $5, cancelled_at = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.PaidAmount, sale.IsFiado, sale.PaymentMethod,
		nullIfEmpty(sale.ConditionalStatus), sale.CancelledAt, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	return nil
}

// ListByDate lista ventas por rango de fecha con paginación.
func (r *SaleRepo) ListByDate(from, to time.Time, limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales WHERE sale_date >= $1 AND sale_date < $2
		ORDER BY sale_date DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var conditional *string
	err := row.Scan(
		&s.ID, &s.Date, &s.Channel, &s.CustomerID, &s.TotalAmount, &s.PaidAmount,
		&s.IsFiado, &s.PaymentMethod, &s.Notes, &s.SaleType, &conditional,
		&s.CancelledAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if conditional != nil {
		s.ConditionalStatus = *conditional
	}
	return &s, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
