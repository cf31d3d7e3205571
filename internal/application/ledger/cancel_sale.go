package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
)

// CancelSaleUseCase anula una venta: repone el stock de cada línea, devuelve
// el dinero cobrado (caja OUT) y compensa los movimientos de cuenta que la
// venta generó. La historia no se borra: todo reverso es un registro nuevo, y
// la cabecera queda estampada con cancelled_at al final.
type CancelSaleUseCase struct {
	txRunner TxRunner
	notifier StockNotifier
}

// NewCancelSaleUseCase construye el caso de uso.
func NewCancelSaleUseCase(txRunner TxRunner, notifier StockNotifier) *CancelSaleUseCase {
	return &CancelSaleUseCase{txRunner: txRunner, notifier: notifier}
}

// CancelSale anula la venta indicada. Rechaza ventas inexistentes, ya anuladas
// y condicionales no confirmadas: las abiertas se resuelven por la devolución
// condicional, y las devueltas ya no tienen efecto que revertir.
func (uc *CancelSaleUseCase) CancelSale(ctx context.Context, saleID string) error {
	if saleID == "" {
		return domain.ErrInvalidInput
	}
	now := time.Now()
	newStockByProduct := make(map[string]int64)

	err := uc.txRunner.Run(ctx, func(r Repos) error {
		sale, err := r.Sales.GetForUpdate(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if sale.Cancelled() {
			return domain.ErrSaleCancelled
		}
		if sale.SaleType == entity.SaleTypeConditional {
			switch sale.ConditionalStatus {
			case entity.ConditionalOpen:
				return domain.ErrConditionalOpen
			case entity.ConditionalReturned:
				// El stock ya volvió con la devolución; no hay nada que anular.
				return domain.ErrInvalidState
			}
		}

		// 1) Reponer stock: un ajuste positivo por cada línea original.
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
				ReferenceType: entity.RefSaleCancellation,
				ReferenceID:   saleID,
				Channel:       entity.ChannelLocal,
				CreatedAt:     now,
			}, false, now)
			if err != nil {
				return err
			}
			newStockByProduct[item.ProductID] = newQty
		}

		// 2) Devolver lo cobrado.
		if sale.PaidAmount.GreaterThan(decimal.Zero) {
			if err := r.Cash.Create(&entity.CashMovement{
				ID:            uuid.New().String(),
				Type:          entity.CashMovementSale,
				Direction:     entity.CashOut,
				Amount:        sale.PaidAmount,
				ReferenceType: entity.RefSaleCancellation,
				ReferenceID:   saleID,
				PaymentMethod: sale.PaymentMethod,
				CreatedAt:     now,
			}); err != nil {
				return err
			}
		}

		// 3) Compensar los movimientos de cuenta que esta venta produjo.
		if sale.CustomerID != nil {
			if err := uc.reverseAccountEffects(r, sale, now); err != nil {
				return err
			}
		}

		// 4) Estampar la anulación, último paso tras todos los reversos.
		sale.CancelledAt = &now
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

// reverseAccountEffects localiza por referencia los movimientos de cuenta de la
// venta, suma por separado lo consumido de crédito y la deuda generada, e
// inserta los compensatorios que los dejan en cero (CREDIT por el crédito
// consumido, PAYMENT por la deuda).
func (uc *CancelSaleUseCase) reverseAccountEffects(r Repos, sale *entity.Sale, now time.Time) error {
	account, err := r.Accounts.GetByCustomerForUpdate(*sale.CustomerID)
	if err != nil {
		return err
	}
	if account == nil {
		return nil // la venta nunca tocó la cuenta
	}
	movements, err := r.Accounts.ListMovementsByReference(account.ID, entity.RefSale, sale.ID)
	if err != nil {
		return err
	}
	consumed := decimal.Zero
	debt := decimal.Zero
	for _, m := range movements {
		switch m.Type {
		case entity.AccountMovementConsumeCredit:
			consumed = consumed.Add(m.Amount)
		case entity.AccountMovementDebt:
			debt = debt.Add(m.Amount)
		}
	}
	if consumed.GreaterThan(decimal.Zero) {
		if err := r.Accounts.CreateMovement(&entity.AccountMovement{
			ID:            uuid.New().String(),
			AccountID:     account.ID,
			Type:          entity.AccountMovementCredit,
			Amount:        consumed.Neg(),
			ReferenceType: entity.RefSaleCancellation,
			ReferenceID:   sale.ID,
			Note:          "reverso de crédito consumido por anulación",
			CreatedAt:     now,
		}); err != nil {
			return err
		}
	}
	if debt.GreaterThan(decimal.Zero) {
		if err := r.Accounts.CreateMovement(&entity.AccountMovement{
			ID:            uuid.New().String(),
			AccountID:     account.ID,
			Type:          entity.AccountMovementPayment,
			Amount:        debt.Neg(),
			ReferenceType: entity.RefSaleCancellation,
			ReferenceID:   sale.ID,
			Note:          "reverso de deuda por anulación",
			CreatedAt:     now,
		}); err != nil {
			return err
		}
	}
	if consumed.GreaterThan(decimal.Zero) || debt.GreaterThan(decimal.Zero) {
		if _, err := refreshAccountStatus(r, account.ID); err != nil {
			return err
		}
	}
	return nil
}
