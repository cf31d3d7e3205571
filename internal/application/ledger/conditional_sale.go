package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
)

// ConditionalSaleUseCase maneja el ciclo de vida de una venta condicional:
// nace OPEN (prendas entregadas, sin pago) y termina en CONFIRMED o RETURNED.
// Ambos estados son terminales; una CONFIRMED se anula por el camino normal
// de anulación de ventas.
type ConditionalSaleUseCase struct {
	txRunner TxRunner
	notifier StockNotifier
}

// NewConditionalSaleUseCase construye el caso de uso.
func NewConditionalSaleUseCase(txRunner TxRunner, notifier StockNotifier) *ConditionalSaleUseCase {
	return &ConditionalSaleUseCase{txRunner: txRunner, notifier: notifier}
}

// ConfirmResult resultado de la confirmación.
type ConfirmResult struct {
	SaleID  string
	Paid    decimal.Decimal
	Pending decimal.Decimal
	IsFiado bool
}

// Confirm pasa una condicional de OPEN a CONFIRMED. Acepta un pago adicional,
// valida que el pago acumulado no supere el total, registra la entrada de caja
// y, si queda saldo, genera la deuda en la cuenta del cliente.
func (uc *ConditionalSaleUseCase) Confirm(ctx context.Context, saleID string, payment decimal.Decimal, paymentMethod string) (*ConfirmResult, error) {
	if saleID == "" || payment.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	result := &ConfirmResult{SaleID: saleID}

	err := uc.txRunner.Run(ctx, func(r Repos) error {
		sale, err := uc.openConditional(r, saleID)
		if err != nil {
			return err
		}
		newPaid := sale.PaidAmount.Add(payment)
		if newPaid.GreaterThan(sale.TotalAmount) {
			return domain.ErrPaymentExceedsTotal
		}
		if payment.GreaterThan(decimal.Zero) {
			if err := r.Cash.Create(&entity.CashMovement{
				ID:            uuid.New().String(),
				Type:          entity.CashMovementSale,
				Direction:     entity.CashIn,
				Amount:        payment,
				ReferenceType: entity.RefSale,
				ReferenceID:   saleID,
				PaymentMethod: paymentMethod,
				CreatedAt:     now,
			}); err != nil {
				return err
			}
		}
		pending := sale.TotalAmount.Sub(newPaid)
		isFiado := pending.GreaterThan(decimal.Zero)
		if isFiado {
			// Toda condicional tiene cliente desde su creación.
			account, err := getOrCreateAccount(r, *sale.CustomerID, now)
			if err != nil {
				return err
			}
			if err := r.Accounts.CreateMovement(&entity.AccountMovement{
				ID:            uuid.New().String(),
				AccountID:     account.ID,
				Type:          entity.AccountMovementDebt,
				Amount:        pending,
				ReferenceType: entity.RefSale,
				ReferenceID:   saleID,
				Note:          "saldo de condicional confirmada",
				CreatedAt:     now,
			}); err != nil {
				return err
			}
			if _, err := refreshAccountStatus(r, account.ID); err != nil {
				return err
			}
		}

		sale.PaidAmount = newPaid
		sale.PaymentMethod = paymentMethod
		sale.IsFiado = isFiado
		sale.ConditionalStatus = entity.ConditionalConfirmed
		sale.UpdatedAt = now
		if err := r.Sales.Update(sale); err != nil {
			return err
		}
		result.Paid = newPaid
		result.Pending = pending
		result.IsFiado = isFiado
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Return pasa una condicional de OPEN a RETURNED: repone todo el stock y no
// toca ni caja ni cuenta (nunca hubo pago).
func (uc *ConditionalSaleUseCase) Return(ctx context.Context, saleID string) error {
	if saleID == "" {
		return domain.ErrInvalidInput
	}
	now := time.Now()
	newStockByProduct := make(map[string]int64)

	err := uc.txRunner.Run(ctx, func(r Repos) error {
		sale, err := uc.openConditional(r, saleID)
		if err != nil {
			return err
		}
		items, err := r.Sales.GetItems(saleID)
		if err != nil {
			return err
		}
		for _, item := range items {
			newQty, err := applyStockMovement(r, &entity.StockMovement{
				ID:            uuid.New().String(),
				ProductID:     item.ProductID,
				Type:          entity.StockMovementAdjustment,
				Quantity:      item.Quantity,
				ReferenceType: entity.RefConditionalReturn,
				ReferenceID:   saleID,
				Channel:       entity.ChannelLocal,
				CreatedAt:     now,
			}, false, now)
			if err != nil {
				return err
			}
			newStockByProduct[item.ProductID] = newQty
		}
		sale.ConditionalStatus = entity.ConditionalReturned
		sale.UpdatedAt = now
		return r.Sales.Update(sale)
	})
	if err != nil {
		return err
	}

	for productID, newQty := range newStockByProduct {
		uc.notifier.NotifyStockChange(productID, newQty)
	}
	return nil
}

// openConditional carga la venta bloqueada y verifica que sea una condicional
// abierta y no anulada.
func (uc *ConditionalSaleUseCase) openConditional(r Repos, saleID string) (*entity.Sale, error) {
	sale, err := r.Sales.GetForUpdate(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.Cancelled() {
		return nil, domain.ErrSaleCancelled
	}
	if sale.SaleType != entity.SaleTypeConditional || sale.ConditionalStatus != entity.ConditionalOpen {
		return nil, domain.ErrInvalidState
	}
	return sale, nil
}
