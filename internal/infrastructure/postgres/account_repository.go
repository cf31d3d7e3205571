package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo implementación de AccountRepository (usable con pool o tx).
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

const accountColumns = `id, customer_id, status, created_at, updated_at`

// Create persiste una cuenta nueva. La constraint única sobre customer_id
// garantiza una cuenta por cliente aun con creación perezosa concurrente.
func (r *AccountRepo) Create(account *entity.CurrentAccount) error {
	query := `
		INSERT INTO current_accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		account.ID, account.CustomerID, account.Status, account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta por ID.
func (r *AccountRepo) GetByID(id string) (*entity.CurrentAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM current_accounts WHERE id = $1`
	return r.getOne(query, id)
}

// GetForUpdate obtiene la cuenta por ID y bloquea la fila.
func (r *AccountRepo) GetForUpdate(id string) (*entity.CurrentAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM current_accounts WHERE id = $1 FOR UPDATE`
	return r.getOne(query, id)
}

// GetByCustomerID obtiene la cuenta del cliente.
func (r *AccountRepo) GetByCustomerID(customerID string) (*entity.CurrentAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM current_accounts WHERE customer_id = $1`
	return r.getOne(query, customerID)
}

// GetByCustomerForUpdate obtiene la cuenta del cliente y bloquea la fila.
func (r *AccountRepo) GetByCustomerForUpdate(customerID string) (*entity.CurrentAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM current_accounts WHERE customer_id = $1 FOR UPDATE`
	return r.getOne(query, customerID)
}

func (r *AccountRepo) getOne(query, arg string) (*entity.CurrentAccount, error) {
	var a entity.CurrentAccount
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&a.ID, &a.CustomerID, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &a, nil
}

// UpdateStatus persiste el estado derivado del saldo.
func (r *AccountRepo) UpdateStatus(id, status string) error {
	query := `UPDATE current_accounts SET status = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update account status: %w", err)
	}
	return nil
}

// CreateMovement inserta un movimiento de cuenta.
func (r *AccountRepo) CreateMovement(m *entity.AccountMovement) error {
	query := `
		INSERT INTO account_movements
			(id, account_id, movement_type, amount, reference_type, reference_id, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.AccountID, m.Type, m.Amount, m.ReferenceType, m.ReferenceID, m.Note, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert account movement: %w", err)
	}
	return nil
}

// GetMovementByID obtiene un movimiento de cuenta por ID.
func (r *AccountRepo) GetMovementByID(id string) (*entity.AccountMovement, error) {
	query := `
		SELECT id, account_id, movement_type, amount, reference_type, reference_id, note, created_at
		FROM account_movements WHERE id = $1`
	var m entity.AccountMovement
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.AccountID, &m.Type, &m.Amount, &m.ReferenceType, &m.ReferenceID, &m.Note, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account movement: %w", err)
	}
	return &m, nil
}

// Balance suma los montos con signo de los movimientos de la cuenta.
func (r *AccountRepo) Balance(accountID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM account_movements WHERE account_id = $1`
	var balance decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, accountID).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("account balance: %w", err)
	}
	return balance, nil
}

// ListMovements lista los movimientos de la cuenta, más recientes primero.
func (r *AccountRepo) ListMovements(accountID string, limit, offset int) ([]*entity.AccountMovement, error) {
	query := `
		SELECT id, account_id, movement_type, amount, reference_type, reference_id, note, created_at
		FROM account_movements WHERE account_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.listMovements(query, accountID, limit, offset)
}

// ListMovementsByReference localiza los movimientos que una operación produjo
// (p.ej. los de una venta, para compensarlos al anularla).
func (r *AccountRepo) ListMovementsByReference(accountID, referenceType, referenceID string) ([]*entity.AccountMovement, error) {
	query := `
		SELECT id, account_id, movement_type, amount, reference_type, reference_id, note, created_at
		FROM account_movements
		WHERE account_id = $1 AND reference_type = $2 AND reference_id = $3
		ORDER BY created_at`
	return r.listMovements(query, accountID, referenceType, referenceID)
}

func (r *AccountRepo) listMovements(query string, args ...any) ([]*entity.AccountMovement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list account movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.AccountMovement
	for rows.Next() {
		var m entity.AccountMovement
		if err := rows.Scan(&m.ID, &m.AccountID, &m.Type, &m.Amount, &m.ReferenceType,
			&m.ReferenceID, &m.Note, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan account movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
