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

// CreateExchangeUseCase registra un cambio de prendas: entradas y salidas de
// stock, la diferencia en caja y, si la diferencia favorece al cliente, el
// crédito en su cuenta corriente. Todo en una transacción.
type CreateExchangeUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	stockRepo    repository.StockRepository
	notifier     StockNotifier
}

// NewCreateExchangeUseCase construye el caso de uso.
func NewCreateExchangeUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	stockRepo repository.StockRepository,
	notifier StockNotifier,
) *CreateExchangeUseCase {
	return &CreateExchangeUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		stockRepo:    stockRepo,
		notifier:     notifier,
	}
}

// ExchangeItemInput prenda que entra o sale en el cambio.
type ExchangeItemInput struct {
	ProductID string
	Quantity  int64
}

// CreateExchangeInput entrada para registrar un cambio. DifferenceAmount la
// calcula el vendedor: valor de lo que sale menos valor de lo que entra;
// positiva el cliente paga, negativa queda a su favor (cliente obligatorio).
type CreateExchangeInput struct {
	CustomerID       *string
	ItemsIn          []ExchangeItemInput
	ItemsOut         []ExchangeItemInput
	DifferenceAmount decimal.Decimal
	PaymentMethod    string
	Note             string
}

// CreateExchangeResult resultado del cambio registrado.
type CreateExchangeResult struct {
	ExchangeID       string
	DifferenceAmount decimal.Decimal
	CreditGranted    decimal.Decimal
}

// CreateExchange valida y registra el cambio.
func (uc *CreateExchangeUseCase) CreateExchange(ctx context.Context, in CreateExchangeInput) (*CreateExchangeResult, error) {
	if len(in.ItemsIn) == 0 && len(in.ItemsOut) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range append(append([]ExchangeItemInput{}, in.ItemsIn...), in.ItemsOut...) {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}
	// Diferencia a favor del cliente: hay que saber a quién acreditarla.
	if in.DifferenceAmount.LessThan(decimal.Zero) && in.CustomerID == nil {
		return nil, domain.ErrCustomerRequired
	}
	if in.CustomerID != nil {
		customer, err := uc.customerRepo.GetByID(*in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
	}

	// Productos: existencia de todos, stock solo para los salientes (lo que
	// entra repone stock, sin tope).
	outQty := make(map[string]int64)
	ids := make([]string, 0, len(in.ItemsIn)+len(in.ItemsOut))
	seen := make(map[string]bool)
	for _, item := range in.ItemsIn {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}
	for _, item := range in.ItemsOut {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
		outQty[item.ProductID] += item.Quantity
	}
	products, err := uc.productRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if products[id] == nil {
			return nil, domain.ErrNotFound
		}
	}
	available, err := uc.stockRepo.GetMany(keys(outQty))
	if err != nil {
		return nil, err
	}
	for productID, qty := range outQty {
		if available[productID] < qty {
			return nil, domain.ErrInsufficientStock
		}
	}

	now := time.Now()
	exchangeID := uuid.New().String()
	result := &CreateExchangeResult{ExchangeID: exchangeID, DifferenceAmount: in.DifferenceAmount}
	newStockByProduct := make(map[string]int64)

	err = uc.txRunner.Run(ctx, func(r Repos) error {
		if err := r.Exchanges.Create(&entity.Exchange{
			ID:               exchangeID,
			Date:             now,
			CustomerID:       in.CustomerID,
			DifferenceAmount: in.DifferenceAmount,
			Note:             in.Note,
			CreatedAt:        now,
		}); err != nil {
			return err
		}

		for _, item := range in.ItemsIn {
			if err := r.Exchanges.CreateItem(&entity.ExchangeItem{
				ID:         uuid.New().String(),
				ExchangeID: exchangeID,
				ProductID:  item.ProductID,
				Quantity:   item.Quantity,
				Direction:  entity.ExchangeItemIn,
			}); err != nil {
				return err
			}
			newQty, err := applyStockMovement(r, &entity.StockMovement{
				ID:            uuid.New().String(),
				ProductID:     item.ProductID,
				Type:          entity.StockMovementExchangeIn,
				Quantity:      item.Quantity,
				ReferenceType: entity.RefExchange,
				ReferenceID:   exchangeID,
				Channel:       entity.ChannelLocal,
				CreatedAt:     now,
			}, false, now)
			if err != nil {
				return err
			}
			newStockByProduct[item.ProductID] = newQty
		}

		for _, item := range in.ItemsOut {
			if err := r.Exchanges.CreateItem(&entity.ExchangeItem{
				ID:         uuid.New().String(),
				ExchangeID: exchangeID,
				ProductID:  item.ProductID,
				Quantity:   item.Quantity,
				Direction:  entity.ExchangeItemOut,
			}); err != nil {
				return err
			}
			newQty, err := applyStockMovement(r, &entity.StockMovement{
				ID:            uuid.New().String(),
				ProductID:     item.ProductID,
				Type:          entity.StockMovementExchangeOut,
				Quantity:      -item.Quantity,
				ReferenceType: entity.RefExchange,
				ReferenceID:   exchangeID,
				Channel:       entity.ChannelLocal,
				CreatedAt:     now,
			}, true, now)
			if err != nil {
				return err
			}
			newStockByProduct[item.ProductID] = newQty
		}

		if !in.DifferenceAmount.IsZero() {
			direction := entity.CashIn
			if in.DifferenceAmount.LessThan(decimal.Zero) {
				direction = entity.CashOut
			}
			if err := r.Cash.Create(&entity.CashMovement{
				ID:            uuid.New().String(),
				Type:          entity.CashMovementAdjustment,
				Direction:     direction,
				Amount:        in.DifferenceAmount.Abs(),
				ReferenceType: entity.RefExchange,
				ReferenceID:   exchangeID,
				PaymentMethod: in.PaymentMethod,
				CreatedAt:     now,
			}); err != nil {
				return err
			}
		}

		if in.DifferenceAmount.LessThan(decimal.Zero) {
			account, err := getOrCreateAccount(r, *in.CustomerID, now)
			if err != nil {
				return err
			}
			credit := in.DifferenceAmount.Abs()
			if err := r.Accounts.CreateMovement(&entity.AccountMovement{
				ID:            uuid.New().String(),
				AccountID:     account.ID,
				Type:          entity.AccountMovementCredit,
				Amount:        credit.Neg(),
				ReferenceType: entity.RefExchange,
				ReferenceID:   exchangeID,
				Note:          "diferencia a favor por cambio",
				CreatedAt:     now,
			}); err != nil {
				return err
			}
			if _, err := refreshAccountStatus(r, account.ID); err != nil {
				return err
			}
			result.CreditGranted = credit
		}
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
