package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
)

// AccountUseCase opera sobre cuentas corrientes: cobro de deuda, reverso de
// pagos y carga manual de deuda, más las lecturas de saldo y resumen.
type AccountUseCase struct {
	txRunner     TxRunner
	accountRepo  repository.AccountRepository
	customerRepo repository.CustomerRepository
}

// NewAccountUseCase construye el caso de uso.
func NewAccountUseCase(txRunner TxRunner, accountRepo repository.AccountRepository, customerRepo repository.CustomerRepository) *AccountUseCase {
	return &AccountUseCase{txRunner: txRunner, accountRepo: accountRepo, customerRepo: customerRepo}
}

// PayAccount registra el pago de deuda de un cliente: movimiento PAYMENT
// (negativo) en la cuenta y entrada en caja. Exige cuenta existente con deuda
// y que el monto no supere el saldo. Devuelve el saldo resultante.
func (uc *AccountUseCase) PayAccount(ctx context.Context, customerID string, amount decimal.Decimal, paymentMethod string) (decimal.Decimal, error) {
	if customerID == "" || !amount.GreaterThan(decimal.Zero) {
		return decimal.Zero, domain.ErrInvalidInput
	}
	var newBalance decimal.Decimal
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		account, err := r.Accounts.GetByCustomerForUpdate(customerID)
		if err != nil {
			return err
		}
		if account == nil {
			return domain.ErrNotFound
		}
		balance, err := r.Accounts.Balance(account.ID)
		if err != nil {
			return err
		}
		if !balance.GreaterThan(decimal.Zero) || amount.GreaterThan(balance) {
			return domain.ErrInsufficientBalance
		}
		movementID := uuid.New().String()
		now := time.Now()
		if err := r.Accounts.CreateMovement(&entity.AccountMovement{
			ID:            movementID,
			AccountID:     account.ID,
			Type:          entity.AccountMovementPayment,
			Amount:        amount.Neg(),
			ReferenceType: entity.RefAccountPayment,
			CreatedAt:     now,
		}); err != nil {
			return err
		}
		if err := r.Cash.Create(&entity.CashMovement{
			ID:            uuid.New().String(),
			Type:          entity.CashMovementAccountPayment,
			Direction:     entity.CashIn,
			Amount:        amount,
			ReferenceType: entity.RefAccountPayment,
			ReferenceID:   movementID,
			PaymentMethod: paymentMethod,
			CreatedAt:     now,
		}); err != nil {
			return err
		}
		newBalance, err = refreshAccountStatus(r, account.ID)
		return err
	})
	if err != nil {
		return decimal.Zero, err
	}
	return newBalance, nil
}

// ReversePayment deshace un pago registrado por error: inserta un DEBT
// compensatorio por el mismo monto y una salida de caja. El movimiento PAYMENT
// original no se borra, la historia se preserva.
func (uc *AccountUseCase) ReversePayment(ctx context.Context, movementID string) (decimal.Decimal, error) {
	if movementID == "" {
		return decimal.Zero, domain.ErrInvalidInput
	}
	var newBalance decimal.Decimal
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		movement, err := r.Accounts.GetMovementByID(movementID)
		if err != nil {
			return err
		}
		if movement == nil {
			return domain.ErrNotFound
		}
		if movement.Type != entity.AccountMovementPayment {
			return domain.ErrInvalidState
		}
		account, err := r.Accounts.GetForUpdate(movement.AccountID)
		if err != nil {
			return err
		}
		if account == nil {
			return domain.ErrNotFound
		}
		magnitude := movement.Amount.Abs()
		now := time.Now()
		if err := r.Accounts.CreateMovement(&entity.AccountMovement{
			ID:            uuid.New().String(),
			AccountID:     account.ID,
			Type:          entity.AccountMovementDebt,
			Amount:        magnitude,
			ReferenceType: entity.RefPaymentReversal,
			ReferenceID:   movementID,
			Note:          "reverso de pago",
			CreatedAt:     now,
		}); err != nil {
			return err
		}
		if err := r.Cash.Create(&entity.CashMovement{
			ID:            uuid.New().String(),
			Type:          entity.CashMovementAccountPayment,
			Direction:     entity.CashOut,
			Amount:        magnitude,
			ReferenceType: entity.RefPaymentReversal,
			ReferenceID:   movementID,
			CreatedAt:     now,
		}); err != nil {
			return err
		}
		newBalance, err = refreshAccountStatus(r, account.ID)
		return err
	})
	if err != nil {
		return decimal.Zero, err
	}
	return newBalance, nil
}

// AddDebt carga deuda manual (no ligada a una venta) en la cuenta del cliente,
// creándola si no existe. No tiene efecto de caja.
func (uc *AccountUseCase) AddDebt(ctx context.Context, customerID string, amount decimal.Decimal, note string) (decimal.Decimal, error) {
	if customerID == "" || !amount.GreaterThan(decimal.Zero) {
		return decimal.Zero, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil {
		return decimal.Zero, err
	}
	if customer == nil {
		return decimal.Zero, domain.ErrNotFound
	}
	var newBalance decimal.Decimal
	err = uc.txRunner.Run(ctx, func(r Repos) error {
		now := time.Now()
		account, err := getOrCreateAccount(r, customerID, now)
		if err != nil {
			return err
		}
		if err := r.Accounts.CreateMovement(&entity.AccountMovement{
			ID:            uuid.New().String(),
			AccountID:     account.ID,
			Type:          entity.AccountMovementDebt,
			Amount:        amount,
			ReferenceType: entity.RefManualDebt,
			Note:          note,
			CreatedAt:     now,
		}); err != nil {
			return err
		}
		newBalance, err = refreshAccountStatus(r, account.ID)
		return err
	})
	if err != nil {
		return decimal.Zero, err
	}
	return newBalance, nil
}

// Balance devuelve el saldo actual del cliente (0 si no tiene cuenta).
// Saldo > 0 es deuda; saldo < 0 es crédito a favor.
func (uc *AccountUseCase) Balance(ctx context.Context, customerID string) (decimal.Decimal, error) {
	account, err := uc.accountRepo.GetByCustomerID(customerID)
	if err != nil {
		return decimal.Zero, err
	}
	if account == nil {
		return decimal.Zero, nil
	}
	return uc.accountRepo.Balance(account.ID)
}

// Statement devuelve la cuenta y sus movimientos para el resumen del cliente.
func (uc *AccountUseCase) Statement(ctx context.Context, customerID string, limit, offset int) (*entity.CurrentAccount, []*entity.AccountMovement, error) {
	account, err := uc.accountRepo.GetByCustomerID(customerID)
	if err != nil {
		return nil, nil, err
	}
	if account == nil {
		return nil, nil, domain.ErrNotFound
	}
	movements, err := uc.accountRepo.ListMovements(account.ID, limit, offset)
	if err != nil {
		return nil, nil, err
	}
	return account, movements, nil
}
