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

// CreateSaleUseCase registra una venta (normal o condicional) en una sola
// transacción: cabecera, líneas, salidas de stock, efecto de caja y, si hay
// saldo pendiente, movimientos de cuenta corriente del cliente.
type CreateSaleUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	stockRepo    repository.StockRepository
	notifier     StockNotifier
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	stockRepo repository.StockRepository,
	notifier StockNotifier,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		stockRepo:    stockRepo,
		notifier:     notifier,
	}
}

// SaleItemInput línea de venta. El precio unitario lo decide el vendedor
// (puede diferir del catálogo: ofertas, regateo).
type SaleItemInput struct {
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
}

// CreateSaleInput entrada para registrar una venta.
type CreateSaleInput struct {
	CustomerID    *string
	Channel       string // PHYSICAL | MERCADOLIBRE
	SaleType      string // vacío o NORMAL | CONDITIONAL
	Items         []SaleItemInput
	PaidAmount    decimal.Decimal
	PaymentMethod string
	Notes         string
}

// CreateSaleResult resultado de la venta registrada.
type CreateSaleResult struct {
	SaleID        string
	Total         decimal.Decimal
	Paid          decimal.Decimal // pago en caja + crédito aplicado
	CreditApplied decimal.Decimal
	Pending       decimal.Decimal
	IsFiado       bool
}

// CreateSale valida y registra la venta. Si el cliente tiene crédito a favor y
// queda saldo pendiente, aplica min(crédito, pendiente) como CONSUME_CREDIT
// antes de decidir si hace falta un movimiento DEBT.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, in CreateSaleInput) (*CreateSaleResult, error) {
	if in.SaleType == "" {
		in.SaleType = entity.SaleTypeNormal
	}
	if err := uc.validate(&in); err != nil {
		return nil, err
	}

	// Validaciones de solo lectura fuera de la tx: productos, cliente y un
	// chequeo preliminar de stock (el definitivo ocurre con la fila bloqueada).
	qtyByProduct, total, err := uc.resolveItems(in.Items)
	if err != nil {
		return nil, err
	}
	if in.PaidAmount.GreaterThan(total) {
		return nil, domain.ErrPaymentExceedsTotal
	}
	pending := total.Sub(in.PaidAmount)
	if in.CustomerID != nil {
		customer, err := uc.customerRepo.GetByID(*in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
	} else if pending.GreaterThan(decimal.Zero) {
		return nil, domain.ErrCustomerRequired
	}
	available, err := uc.stockRepo.GetMany(keys(qtyByProduct))
	if err != nil {
		return nil, err
	}
	for productID, qty := range qtyByProduct {
		if available[productID] < qty {
			return nil, domain.ErrInsufficientStock
		}
	}

	now := time.Now()
	saleID := uuid.New().String()
	result := &CreateSaleResult{SaleID: saleID, Total: total}
	newStockByProduct := make(map[string]int64)

	err = uc.txRunner.Run(ctx, func(r Repos) error {
		// Crédito a favor: se consume antes de generar deuda.
		creditApplied := decimal.Zero
		var account *entity.CurrentAccount
		if in.CustomerID != nil && pending.GreaterThan(decimal.Zero) && in.SaleType != entity.SaleTypeConditional {
			account, err = getOrCreateAccount(r, *in.CustomerID, now)
			if err != nil {
				return err
			}
			balance, err := r.Accounts.Balance(account.ID)
			if err != nil {
				return err
			}
			if balance.LessThan(decimal.Zero) {
				creditApplied = decimal.Min(balance.Neg(), pending)
			}
		}
		residual := pending.Sub(creditApplied)
		paidFinal := in.PaidAmount.Add(creditApplied)
		isFiado := residual.GreaterThan(decimal.Zero)

		conditionalStatus := ""
		if in.SaleType == entity.SaleTypeConditional {
			conditionalStatus = entity.ConditionalOpen
			isFiado = false
		}

		sale := &entity.Sale{
			ID:                saleID,
			Date:              now,
			Channel:           in.Channel,
			CustomerID:        in.CustomerID,
			TotalAmount:       total,
			PaidAmount:        paidFinal,
			IsFiado:           isFiado,
			PaymentMethod:     in.PaymentMethod,
			Notes:             in.Notes,
			SaleType:          in.SaleType,
			ConditionalStatus: conditionalStatus,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := r.Sales.Create(sale); err != nil {
			return err
		}

		movType, movChannel := stockMovementForChannel(in.Channel)
		for _, item := range in.Items {
			if err := r.Sales.CreateItem(&entity.SaleItem{
				ID:         uuid.New().String(),
				SaleID:     saleID,
				ProductID:  item.ProductID,
				Quantity:   item.Quantity,
				UnitPrice:  item.UnitPrice,
				TotalPrice: item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity)),
			}); err != nil {
				return err
			}
			newQty, err := applyStockMovement(r, &entity.StockMovement{
				ID:            uuid.New().String(),
				ProductID:     item.ProductID,
				Type:          movType,
				Quantity:      -item.Quantity,
				ReferenceType: entity.RefSale,
				ReferenceID:   saleID,
				Channel:       movChannel,
				CreatedAt:     now,
			}, true, now)
			if err != nil {
				return err
			}
			newStockByProduct[item.ProductID] = newQty
		}

		if in.SaleType == entity.SaleTypeConditional {
			// Condicional abierta: las prendas salen, pero no se toca ni caja
			// ni cuenta hasta la confirmación.
			return nil
		}

		if in.PaidAmount.GreaterThan(decimal.Zero) {
			if err := r.Cash.Create(&entity.CashMovement{
				ID:            uuid.New().String(),
				Type:          entity.CashMovementSale,
				Direction:     entity.CashIn,
				Amount:        in.PaidAmount,
				ReferenceType: entity.RefSale,
				ReferenceID:   saleID,
				PaymentMethod: in.PaymentMethod,
				CreatedAt:     now,
			}); err != nil {
				return err
			}
		}
		if creditApplied.GreaterThan(decimal.Zero) {
			if err := r.Accounts.CreateMovement(&entity.AccountMovement{
				ID:            uuid.New().String(),
				AccountID:     account.ID,
				Type:          entity.AccountMovementConsumeCredit,
				Amount:        creditApplied,
				ReferenceType: entity.RefSale,
				ReferenceID:   saleID,
				CreatedAt:     now,
			}); err != nil {
				return err
			}
		}
		if residual.GreaterThan(decimal.Zero) {
			if account == nil {
				account, err = getOrCreateAccount(r, *in.CustomerID, now)
				if err != nil {
					return err
				}
			}
			if err := r.Accounts.CreateMovement(&entity.AccountMovement{
				ID:            uuid.New().String(),
				AccountID:     account.ID,
				Type:          entity.AccountMovementDebt,
				Amount:        residual,
				ReferenceType: entity.RefSale,
				ReferenceID:   saleID,
				CreatedAt:     now,
			}); err != nil {
				return err
			}
		}
		if account != nil {
			if _, err := refreshAccountStatus(r, account.ID); err != nil {
				return err
			}
		}

		result.Paid = paidFinal
		result.CreditApplied = creditApplied
		result.Pending = residual
		result.IsFiado = isFiado
		return nil
	})
	if err != nil {
		return nil, err
	}

	for productID, newQty := range newStockByProduct {
		uc.notifier.NotifyStockChange(productID, newQty)
	}
	return result, nil
}

func (uc *CreateSaleUseCase) validate(in *CreateSaleInput) error {
	if len(in.Items) == 0 {
		return domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 || item.UnitPrice.LessThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	}
	if in.PaidAmount.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	switch in.Channel {
	case entity.SaleChannelPhysical, entity.SaleChannelMercadoLibre:
	default:
		return domain.ErrInvalidInput
	}
	switch in.SaleType {
	case entity.SaleTypeNormal:
	case entity.SaleTypeConditional:
		// Una condicional nace sin pago y siempre con cliente.
		if !in.PaidAmount.IsZero() {
			return domain.ErrInvalidInput
		}
		if in.CustomerID == nil {
			return domain.ErrCustomerRequired
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

// resolveItems verifica que todos los productos existan y devuelve el total de
// la venta y las cantidades agregadas por producto.
func (uc *CreateSaleUseCase) resolveItems(items []SaleItemInput) (map[string]int64, decimal.Decimal, error) {
	ids := make([]string, 0, len(items))
	qtyByProduct := make(map[string]int64)
	total := decimal.Zero
	for _, item := range items {
		if _, seen := qtyByProduct[item.ProductID]; !seen {
			ids = append(ids, item.ProductID)
		}
		qtyByProduct[item.ProductID] += item.Quantity
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity)))
	}
	products, err := uc.productRepo.GetByIDs(ids)
	if err != nil {
		return nil, decimal.Zero, err
	}
	for _, id := range ids {
		if products[id] == nil {
			return nil, decimal.Zero, domain.ErrNotFound
		}
	}
	return qtyByProduct, total, nil
}

func stockMovementForChannel(channel string) (movType, movChannel string) {
	if channel == entity.SaleChannelMercadoLibre {
		return entity.StockMovementSaleMercadoLibre, entity.ChannelMercadoLibre
	}
	return entity.StockMovementSalePhysical, entity.ChannelLocal
}

func keys(m map[string]int64) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
