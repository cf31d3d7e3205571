package ledger_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/tienda-pos/internal/application/ledger"
	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de cambios de prendas: entradas, salidas, diferencia de caja y crédito
// a favor del cliente.
// ──────────────────────────────────────────────────────────────────────────────

func newExchangeFixture() (*memStore, *fakeNotifier, *ledger.CreateExchangeUseCase) {
	store := newMemStore()
	notifier := &fakeNotifier{}
	repos := store.repos()
	uc := ledger.NewCreateExchangeUseCase(store, repos.Products, repos.Customers, repos.Stock, notifier)
	return store, notifier, uc
}

func TestCreateExchange_DiferenciaAFavorDelCliente(t *testing.T) {
	store, notifier, uc := newExchangeFixture()
	store.seedProduct("p1", "Remera talle M", 100)
	store.seedProduct("p2", "Remera talle S", 50)
	store.seedStock("p1", 5)
	store.seedStock("p2", 5)
	store.seedCustomer("c1", "Ana")

	res, err := uc.CreateExchange(context.Background(), ledger.CreateExchangeInput{
		CustomerID:       strPtr("c1"),
		ItemsIn:          []ledger.ExchangeItemInput{{ProductID: "p1", Quantity: 1}},
		ItemsOut:         []ledger.ExchangeItemInput{{ProductID: "p2", Quantity: 1}},
		DifferenceAmount: decimal.NewFromInt(-50),
		PaymentMethod:    entity.PaymentCash,
	})
	require.NoError(t, err)

	assert.True(t, res.CreditGranted.Equal(decimal.NewFromInt(50)))

	// La prenda devuelta entra, la nueva sale.
	assert.Equal(t, int64(6), store.stockQty("p1"))
	assert.Equal(t, int64(4), store.stockQty("p2"))

	// Caja: sale la diferencia a favor del cliente.
	require.Len(t, store.cashMovs, 1)
	assert.Equal(t, entity.CashMovementAdjustment, store.cashMovs[0].Type)
	assert.Equal(t, entity.CashOut, store.cashMovs[0].Direction)
	assert.True(t, store.cashMovs[0].Amount.Equal(decimal.NewFromInt(50)))

	// Cuenta: CREDIT por la diferencia, saldo -50.
	account := store.accountByCustomer("c1")
	require.NotNil(t, account)
	assert.True(t, store.accountBalance(account.ID).Equal(decimal.NewFromInt(-50)))
	assert.Equal(t, entity.AccountStatusCancelado, account.Status)

	// Ítems registrados con su dirección.
	items, err := store.repos().Exchanges.GetItems(res.ExchangeID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, entity.ExchangeItemIn, items[0].Direction)
	assert.Equal(t, entity.ExchangeItemOut, items[1].Direction)

	// Ambos productos notificados con su stock nuevo.
	in, ok := notifier.lastFor("p1")
	require.True(t, ok)
	assert.Equal(t, int64(6), in)
	out, ok := notifier.lastFor("p2")
	require.True(t, ok)
	assert.Equal(t, int64(4), out)
}

func TestCreateExchange_ClientePagaDiferencia(t *testing.T) {
	store, _, uc := newExchangeFixture()
	store.seedProduct("p1", "Remera", 100)
	store.seedProduct("p2", "Campera", 180)
	store.seedStock("p1", 5)
	store.seedStock("p2", 5)

	_, err := uc.CreateExchange(context.Background(), ledger.CreateExchangeInput{
		ItemsIn:          []ledger.ExchangeItemInput{{ProductID: "p1", Quantity: 1}},
		ItemsOut:         []ledger.ExchangeItemInput{{ProductID: "p2", Quantity: 1}},
		DifferenceAmount: decimal.NewFromInt(80),
		PaymentMethod:    entity.PaymentCash,
	})
	require.NoError(t, err)

	// El cliente paga la diferencia: entra a caja, nadie recibe crédito.
	require.Len(t, store.cashMovs, 1)
	assert.Equal(t, entity.CashIn, store.cashMovs[0].Direction)
	assert.True(t, store.cashMovs[0].Amount.Equal(decimal.NewFromInt(80)))
	assert.Empty(t, store.accountMovs)
}

func TestCreateExchange_SoloEntradas(t *testing.T) {
	store, _, uc := newExchangeFixture()
	store.seedProduct("p1", "Remera", 100)
	store.seedStock("p1", 2)
	store.seedCustomer("c1", "Ana")

	// Devolución pura: todo el valor queda como crédito.
	res, err := uc.CreateExchange(context.Background(), ledger.CreateExchangeInput{
		CustomerID:       strPtr("c1"),
		ItemsIn:          []ledger.ExchangeItemInput{{ProductID: "p1", Quantity: 2}},
		DifferenceAmount: decimal.NewFromInt(-200),
	})
	require.NoError(t, err)
	assert.True(t, res.CreditGranted.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, int64(4), store.stockQty("p1"))
}

func TestCreateExchange_SinItemsRechaza(t *testing.T) {
	_, _, uc := newExchangeFixture()
	_, err := uc.CreateExchange(context.Background(), ledger.CreateExchangeInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateExchange_StockSalienteInsuficienteRechaza(t *testing.T) {
	store, _, uc := newExchangeFixture()
	store.seedProduct("p1", "Remera", 100)
	store.seedProduct("p2", "Campera", 180)
	store.seedStock("p1", 5)
	store.seedStock("p2", 0)

	_, err := uc.CreateExchange(context.Background(), ledger.CreateExchangeInput{
		ItemsIn:          []ledger.ExchangeItemInput{{ProductID: "p1", Quantity: 1}},
		ItemsOut:         []ledger.ExchangeItemInput{{ProductID: "p2", Quantity: 1}},
		DifferenceAmount: decimal.NewFromInt(80),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestCreateExchange_DiferenciaNegativaSinClienteRechaza(t *testing.T) {
	store, _, uc := newExchangeFixture()
	store.seedProduct("p1", "Remera", 100)
	store.seedStock("p1", 5)

	_, err := uc.CreateExchange(context.Background(), ledger.CreateExchangeInput{
		ItemsIn:          []ledger.ExchangeItemInput{{ProductID: "p1", Quantity: 1}},
		DifferenceAmount: decimal.NewFromInt(-100),
	})
	assert.ErrorIs(t, err, domain.ErrCustomerRequired)
}

func TestCreateExchange_ClienteInexistenteRechaza(t *testing.T) {
	store, _, uc := newExchangeFixture()
	store.seedProduct("p1", "Remera", 100)
	store.seedProduct("p2", "Campera", 180)
	store.seedStock("p1", 5)
	store.seedStock("p2", 5)

	// Aunque pague la diferencia, un cliente declarado debe existir.
	_, err := uc.CreateExchange(context.Background(), ledger.CreateExchangeInput{
		CustomerID:       strPtr("fantasma"),
		ItemsIn:          []ledger.ExchangeItemInput{{ProductID: "p1", Quantity: 1}},
		ItemsOut:         []ledger.ExchangeItemInput{{ProductID: "p2", Quantity: 1}},
		DifferenceAmount: decimal.NewFromInt(80),
		PaymentMethod:    entity.PaymentCash,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, store.exchanges)
}

func TestCreateExchange_CantidadInvalidaRechaza(t *testing.T) {
	_, _, uc := newExchangeFixture()
	_, err := uc.CreateExchange(context.Background(), ledger.CreateExchangeInput{
		ItemsIn: []ledger.ExchangeItemInput{{ProductID: "p1", Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
