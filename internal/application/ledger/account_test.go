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
// Tests de cuenta corriente: pago de deuda, reverso de pago y deuda manual.
// ──────────────────────────────────────────────────────────────────────────────

func newAccountFixture() (*memStore, *ledger.AccountUseCase) {
	store := newMemStore()
	repos := store.repos()
	uc := ledger.NewAccountUseCase(store, repos.Accounts, repos.Customers)
	return store, uc
}

func TestAddDebt_CreaCuentaYDeuda(t *testing.T) {
	store, uc := newAccountFixture()
	store.seedCustomer("c1", "Ana")

	balance, err := uc.AddDebt(context.Background(), "c1", decimal.NewFromInt(200), "saldo migrado del cuaderno")
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(200)))

	account := store.accountByCustomer("c1")
	require.NotNil(t, account)
	assert.Equal(t, entity.AccountStatusDeuda, account.Status)

	// La deuda manual no toca la caja.
	assert.Empty(t, store.cashMovs)
	require.Len(t, store.accountMovs, 1)
	assert.Equal(t, entity.RefManualDebt, store.accountMovs[0].ReferenceType)
}

func TestAddDebt_ClienteInexistenteRechaza(t *testing.T) {
	_, uc := newAccountFixture()
	_, err := uc.AddDebt(context.Background(), "nadie", decimal.NewFromInt(50), "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPayAccount_ReduceDeudaYEntraACaja(t *testing.T) {
	store, uc := newAccountFixture()
	store.seedCustomer("c1", "Ana")
	_, err := uc.AddDebt(context.Background(), "c1", decimal.NewFromInt(200), "")
	require.NoError(t, err)

	balance, err := uc.PayAccount(context.Background(), "c1", decimal.NewFromInt(150), entity.PaymentCash)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(50)))

	account := store.accountByCustomer("c1")
	assert.Equal(t, entity.AccountStatusDeuda, account.Status)

	require.Len(t, store.cashMovs, 1)
	assert.Equal(t, entity.CashMovementAccountPayment, store.cashMovs[0].Type)
	assert.Equal(t, entity.CashIn, store.cashMovs[0].Direction)
	assert.True(t, store.cashMovs[0].Amount.Equal(decimal.NewFromInt(150)))

	// Pagar el resto deja la cuenta CANCELADO.
	balance, err = uc.PayAccount(context.Background(), "c1", decimal.NewFromInt(50), entity.PaymentCash)
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
	assert.Equal(t, entity.AccountStatusCancelado, account.Status)
}

func TestPayAccount_MontoMayorAlSaldoRechaza(t *testing.T) {
	store, uc := newAccountFixture()
	store.seedCustomer("c1", "Ana")
	_, err := uc.AddDebt(context.Background(), "c1", decimal.NewFromInt(100), "")
	require.NoError(t, err)

	_, err = uc.PayAccount(context.Background(), "c1", decimal.NewFromInt(101), entity.PaymentCash)
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
}

func TestPayAccount_SinCuentaRechaza(t *testing.T) {
	store, uc := newAccountFixture()
	store.seedCustomer("c1", "Ana")

	_, err := uc.PayAccount(context.Background(), "c1", decimal.NewFromInt(10), entity.PaymentCash)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPayAccount_SinDeudaRechaza(t *testing.T) {
	store, uc := newAccountFixture()
	store.seedCustomer("c1", "Ana")
	store.seedCredit("c1", 100) // saldo -100, nada que cobrar

	_, err := uc.PayAccount(context.Background(), "c1", decimal.NewFromInt(10), entity.PaymentCash)
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
}

func TestReversePayment_RestauraDeudaYSacaDeCaja(t *testing.T) {
	store, uc := newAccountFixture()
	store.seedCustomer("c1", "Ana")
	_, err := uc.AddDebt(context.Background(), "c1", decimal.NewFromInt(200), "")
	require.NoError(t, err)
	_, err = uc.PayAccount(context.Background(), "c1", decimal.NewFromInt(200), entity.PaymentCash)
	require.NoError(t, err)

	var paymentID string
	for _, m := range store.accountMovs {
		if m.Type == entity.AccountMovementPayment {
			paymentID = m.ID
		}
	}
	require.NotEmpty(t, paymentID)

	balance, err := uc.ReversePayment(context.Background(), paymentID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(200)))

	account := store.accountByCustomer("c1")
	assert.Equal(t, entity.AccountStatusDeuda, account.Status)

	// El PAYMENT original sigue en la historia; el reverso es un DEBT nuevo.
	assert.Len(t, store.accountMovs, 3)
	last := store.accountMovs[2]
	assert.Equal(t, entity.AccountMovementDebt, last.Type)
	assert.Equal(t, entity.RefPaymentReversal, last.ReferenceType)
	assert.Equal(t, paymentID, last.ReferenceID)

	// Caja: entrada del pago + salida del reverso.
	require.Len(t, store.cashMovs, 2)
	assert.Equal(t, entity.CashOut, store.cashMovs[1].Direction)
	assert.True(t, store.cashSigned().IsZero())
}

func TestReversePayment_SoloSobrePagos(t *testing.T) {
	store, uc := newAccountFixture()
	store.seedCustomer("c1", "Ana")
	_, err := uc.AddDebt(context.Background(), "c1", decimal.NewFromInt(100), "")
	require.NoError(t, err)

	debtID := store.accountMovs[0].ID
	_, err = uc.ReversePayment(context.Background(), debtID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestReversePayment_MovimientoInexistente(t *testing.T) {
	_, uc := newAccountFixture()
	_, err := uc.ReversePayment(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBalance_SinCuentaEsCero(t *testing.T) {
	_, uc := newAccountFixture()
	balance, err := uc.Balance(context.Background(), "c1")
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestStatement_DevuelveMovimientos(t *testing.T) {
	store, uc := newAccountFixture()
	store.seedCustomer("c1", "Ana")
	_, err := uc.AddDebt(context.Background(), "c1", decimal.NewFromInt(100), "")
	require.NoError(t, err)
	_, err = uc.PayAccount(context.Background(), "c1", decimal.NewFromInt(40), entity.PaymentCash)
	require.NoError(t, err)

	account, movements, err := uc.Statement(context.Background(), "c1", 50, 0)
	require.NoError(t, err)
	assert.Equal(t, entity.AccountStatusDeuda, account.Status)
	assert.Len(t, movements, 2)
}

func TestStatement_SinCuentaRechaza(t *testing.T) {
	_, uc := newAccountFixture()
	_, _, err := uc.Statement(context.Background(), "c1", 50, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
