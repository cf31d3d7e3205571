package ledger

import (
	"context"

	"github.com/tu-usuario/tienda-pos/internal/domain/repository"
)

// StockLedger expone las lecturas del libro de stock. La fila materializada es
// la fuente rápida; el libro de movimientos es el rastro de auditoría, y ambos
// deben coincidir (Reconcile lo verifica).
type StockLedger struct {
	stockRepo repository.StockRepository
	movRepo   repository.StockMovementRepository
}

// NewStockLedger construye el lector de stock.
func NewStockLedger(stockRepo repository.StockRepository, movRepo repository.StockMovementRepository) *StockLedger {
	return &StockLedger{stockRepo: stockRepo, movRepo: movRepo}
}

// CurrentStock devuelve el stock actual de un producto. Un producto sin
// movimientos da 0; la existencia del producto la valida el caller.
func (l *StockLedger) CurrentStock(ctx context.Context, productID string) (int64, error) {
	stock, err := l.stockRepo.Get(productID)
	if err != nil {
		return 0, err
	}
	return stock.Quantity, nil
}

// CurrentStockBatch devuelve el stock actual de varios productos a la vez,
// para la validación de ventas y cambios multilínea.
func (l *StockLedger) CurrentStockBatch(ctx context.Context, productIDs []string) (map[string]int64, error) {
	return l.stockRepo.GetMany(productIDs)
}

// Discrepancy es una diferencia entre la fila materializada y la suma del
// libro de movimientos para un producto.
type Discrepancy struct {
	ProductID    string
	Materialized int64
	MovementSum  int64
}

// Reconcile compara, producto por producto, el stock materializado contra la
// suma de movimientos y devuelve las discrepancias. Pensado para correr
// periódicamente; una lista vacía significa que el invariante se sostiene.
func (l *StockLedger) Reconcile(ctx context.Context, productIDs []string) ([]Discrepancy, error) {
	materialized, err := l.stockRepo.GetMany(productIDs)
	if err != nil {
		return nil, err
	}
	sums, err := l.movRepo.SumByProducts(productIDs)
	if err != nil {
		return nil, err
	}
	var out []Discrepancy
	for _, id := range productIDs {
		if materialized[id] != sums[id] {
			out = append(out, Discrepancy{
				ProductID:    id,
				Materialized: materialized[id],
				MovementSum:  sums[id],
			})
		}
	}
	return out, nil
}
