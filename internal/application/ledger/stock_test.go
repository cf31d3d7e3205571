package ledger_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/tienda-pos/internal/application/ledger"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
)

func newStockFixture() (*memStore, *ledger.StockLedger) {
	store := newMemStore()
	repos := store.repos()
	return store, ledger.NewStockLedger(repos.Stock, repos.StockMovs)
}

func TestStockLedger_CurrentStock(t *testing.T) {
	store, sl := newStockFixture()
	store.seedStock("p1", 7)

	qty, err := sl.CurrentStock(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), qty)

	// Producto sin fila materializada: stock cero, no error.
	qty, err = sl.CurrentStock(context.Background(), "p2")
	require.NoError(t, err)
	assert.Equal(t, int64(0), qty)
}

func TestStockLedger_CurrentStockBatch(t *testing.T) {
	store, sl := newStockFixture()
	store.seedStock("p1", 3)
	store.seedStock("p2", 0)

	out, err := sl.CurrentStockBatch(context.Background(), []string{"p1", "p2", "p3"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), out["p1"])
	assert.Equal(t, int64(0), out["p2"])
	assert.Equal(t, int64(0), out["p3"])
}

// TestStockLedger_ReconcileSinDesvios verifica el invariante central: después
// de operar solo a través del motor, la fila materializada siempre coincide
// con la suma del libro de movimientos.
func TestStockLedger_ReconcileSinDesvios(t *testing.T) {
	store := newMemStore()
	notifier := &fakeNotifier{}
	repos := store.repos()
	createUC := ledger.NewCreateSaleUseCase(store, repos.Products, repos.Customers, repos.Stock, notifier)
	cancelUC := ledger.NewCancelSaleUseCase(store, notifier)
	sl := ledger.NewStockLedger(repos.Stock, repos.StockMovs)

	store.seedProduct("p1", "Remera", 100)
	store.seedStock("p1", 10)

	res, err := createUC.CreateSale(context.Background(), ledger.CreateSaleInput{
		Channel:    entity.SaleChannelPhysical,
		Items:      []ledger.SaleItemInput{{ProductID: "p1", Quantity: 4, UnitPrice: decimal.NewFromInt(100)}},
		PaidAmount: decimal.NewFromInt(400),
	})
	require.NoError(t, err)
	require.NoError(t, cancelUC.CancelSale(context.Background(), res.SaleID))

	discrepancies, err := sl.Reconcile(context.Background(), []string{"p1"})
	require.NoError(t, err)
	assert.Empty(t, discrepancies)
}

func TestStockLedger_ReconcileDetectaDesvio(t *testing.T) {
	store, sl := newStockFixture()
	store.seedStock("p1", 5)

	// Alguien tocó la fila materializada por fuera del motor.
	store.stock["p1"].Quantity = 8

	discrepancies, err := sl.Reconcile(context.Background(), []string{"p1"})
	require.NoError(t, err)
	require.Len(t, discrepancies, 1)
	assert.Equal(t, "p1", discrepancies[0].ProductID)
	assert.Equal(t, int64(8), discrepancies[0].Materialized)
	assert.Equal(t, int64(5), discrepancies[0].MovementSum)
}
