package ledger_test

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/tienda-pos/internal/application/ledger"
	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para el motor de ventas.
//
// memStore guarda todas las tablas en mapas/slices y cada fake*Repo opera sobre
// el mismo store, igual que los repositorios de postgres comparten la misma tx.
// Run es un pass-through sin rollback: los tests de error verifican el error
// devuelto, no el estado intermedio del store.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products      map[string]*entity.Product
	customers     map[string]*entity.Customer
	sales         map[string]*entity.Sale
	saleItems     []*entity.SaleItem
	stock         map[string]*entity.Stock
	stockMovs     []*entity.StockMovement
	cashMovs      []*entity.CashMovement
	accounts      map[string]*entity.CurrentAccount
	accountMovs   []*entity.AccountMovement
	exchanges     map[string]*entity.Exchange
	exchangeItems []*entity.ExchangeItem
}

func newMemStore() *memStore {
	return &memStore{
		products:  make(map[string]*entity.Product),
		customers: make(map[string]*entity.Customer),
		sales:     make(map[string]*entity.Sale),
		stock:     make(map[string]*entity.Stock),
		accounts:  make(map[string]*entity.CurrentAccount),
		exchanges: make(map[string]*entity.Exchange),
	}
}

func (s *memStore) repos() ledger.Repos {
	return ledger.Repos{
		Products:  &fakeProductRepo{s},
		Customers: &fakeCustomerRepo{s},
		Sales:     &fakeSaleRepo{s},
		Stock:     &fakeStockRepo{s},
		StockMovs: &fakeStockMovementRepo{s},
		Cash:      &fakeCashMovementRepo{s},
		Accounts:  &fakeAccountRepo{s},
		Exchanges: &fakeExchangeRepo{s},
	}
}

// Run ejecuta fn contra el mismo store, sin transacción real.
func (s *memStore) Run(_ context.Context, fn func(r ledger.Repos) error) error {
	return fn(s.repos())
}

// ── semillas ──────────────────────────────────────────────────────────────────

func (s *memStore) seedProduct(id, name string, price float64) {
	s.products[id] = &entity.Product{
		ID:    id,
		Name:  name,
		SKU:   strings.ToUpper(id),
		Price: decimal.NewFromFloat(price),
	}
}

// seedStock carga stock inicial: fila materializada + movimiento INITIAL, para
// que la reconciliación arranque en cero discrepancias.
func (s *memStore) seedStock(productID string, qty int64) {
	s.stock[productID] = &entity.Stock{ProductID: productID, Quantity: qty, UpdatedAt: time.Now()}
	s.stockMovs = append(s.stockMovs, &entity.StockMovement{
		ID:            uuid.New().String(),
		ProductID:     productID,
		Type:          entity.StockMovementInitial,
		Quantity:      qty,
		ReferenceType: entity.RefAdjustment,
		Channel:       entity.ChannelLocal,
		CreatedAt:     time.Now(),
	})
}

func (s *memStore) seedCustomer(id, name string) {
	s.customers[id] = &entity.Customer{ID: id, Name: name}
}

// seedCredit deja al cliente con crédito a favor: cuenta + movimiento CREDIT.
func (s *memStore) seedCredit(customerID string, amount float64) string {
	accountID := uuid.New().String()
	s.accounts[accountID] = &entity.CurrentAccount{
		ID:         accountID,
		CustomerID: customerID,
		Status:     entity.AccountStatusCancelado,
	}
	s.accountMovs = append(s.accountMovs, &entity.AccountMovement{
		ID:        uuid.New().String(),
		AccountID: accountID,
		Type:      entity.AccountMovementCredit,
		Amount:    decimal.NewFromFloat(amount).Neg(),
		CreatedAt: time.Now(),
	})
	return accountID
}

// ── consultas de apoyo para asserts ───────────────────────────────────────────

func (s *memStore) stockQty(productID string) int64 {
	if st, ok := s.stock[productID]; ok {
		return st.Quantity
	}
	return 0
}

func (s *memStore) accountByCustomer(customerID string) *entity.CurrentAccount {
	for _, a := range s.accounts {
		if a.CustomerID == customerID {
			return a
		}
	}
	return nil
}

func (s *memStore) accountBalance(accountID string) decimal.Decimal {
	total := decimal.Zero
	for _, m := range s.accountMovs {
		if m.AccountID == accountID {
			total = total.Add(m.Amount)
		}
	}
	return total
}

func (s *memStore) cashSigned() decimal.Decimal {
	total := decimal.Zero
	for _, m := range s.cashMovs {
		total = total.Add(m.Signed())
	}
	return total
}

// ── notificador ───────────────────────────────────────────────────────────────

type stockNotification struct {
	ProductID string
	NewStock  int64
}

type fakeNotifier struct {
	notified []stockNotification
}

func (n *fakeNotifier) NotifyStockChange(productID string, newStock int64) {
	n.notified = append(n.notified, stockNotification{ProductID: productID, NewStock: newStock})
}

func (n *fakeNotifier) lastFor(productID string) (int64, bool) {
	for i := len(n.notified) - 1; i >= 0; i-- {
		if n.notified[i].ProductID == productID {
			return n.notified[i].NewStock, true
		}
	}
	return 0, false
}

// ── repositorios fake ─────────────────────────────────────────────────────────

type fakeProductRepo struct{ s *memStore }

func (f *fakeProductRepo) Create(product *entity.Product) error {
	f.s.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return f.s.products[id], nil
}

func (f *fakeProductRepo) GetByIDs(ids []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product)
	for _, id := range ids {
		if p, ok := f.s.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (f *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(f.s.products))
	for _, p := range f.s.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductRepo) Update(product *entity.Product) error {
	f.s.products[product.ID] = product
	return nil
}

type fakeCustomerRepo struct{ s *memStore }

func (f *fakeCustomerRepo) Create(customer *entity.Customer) error {
	f.s.customers[customer.ID] = customer
	return nil
}

func (f *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return f.s.customers[id], nil
}

func (f *fakeCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	out := make([]*entity.Customer, 0, len(f.s.customers))
	for _, c := range f.s.customers {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCustomerRepo) Update(customer *entity.Customer) error {
	f.s.customers[customer.ID] = customer
	return nil
}

type fakeSaleRepo struct{ s *memStore }

func (f *fakeSaleRepo) Create(sale *entity.Sale) error {
	f.s.sales[sale.ID] = sale
	return nil
}

func (f *fakeSaleRepo) CreateItem(item *entity.SaleItem) error {
	f.s.saleItems = append(f.s.saleItems, item)
	return nil
}

func (f *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	return f.s.sales[id], nil
}

func (f *fakeSaleRepo) GetForUpdate(id string) (*entity.Sale, error) {
	return f.s.sales[id], nil
}

func (f *fakeSaleRepo) GetItems(saleID string) ([]*entity.SaleItem, error) {
	var out []*entity.SaleItem
	for _, it := range f.s.saleItems {
		if it.SaleID == saleID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeSaleRepo) Update(sale *entity.Sale) error {
	f.s.sales[sale.ID] = sale
	return nil
}

func (f *fakeSaleRepo) ListByDate(from, to time.Time, limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range f.s.sales {
		if !s.Date.Before(from) && s.Date.Before(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeStockRepo struct{ s *memStore }

func (f *fakeStockRepo) Get(productID string) (*entity.Stock, error) {
	if st, ok := f.s.stock[productID]; ok {
		cp := *st
		return &cp, nil
	}
	return &entity.Stock{ProductID: productID}, nil
}

func (f *fakeStockRepo) GetForUpdate(productID string) (*entity.Stock, error) {
	return f.Get(productID)
}

func (f *fakeStockRepo) GetMany(productIDs []string) (map[string]int64, error) {
	out := make(map[string]int64, len(productIDs))
	for _, id := range productIDs {
		out[id] = 0
		if st, ok := f.s.stock[id]; ok {
			out[id] = st.Quantity
		}
	}
	return out, nil
}

func (f *fakeStockRepo) Upsert(stock *entity.Stock) error {
	cp := *stock
	f.s.stock[stock.ProductID] = &cp
	return nil
}

type fakeStockMovementRepo struct{ s *memStore }

func (f *fakeStockMovementRepo) Create(movement *entity.StockMovement) error {
	f.s.stockMovs = append(f.s.stockMovs, movement)
	return nil
}

func (f *fakeStockMovementRepo) SumByProduct(productID string) (int64, error) {
	var total int64
	for _, m := range f.s.stockMovs {
		if m.ProductID == productID {
			total += m.Quantity
		}
	}
	return total, nil
}

func (f *fakeStockMovementRepo) SumByProducts(productIDs []string) (map[string]int64, error) {
	out := make(map[string]int64, len(productIDs))
	for _, id := range productIDs {
		sum, _ := f.SumByProduct(id)
		out[id] = sum
	}
	return out, nil
}

func (f *fakeStockMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range f.s.stockMovs {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeCashMovementRepo struct{ s *memStore }

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (f *fakeCashMovementRepo) Create(movement *entity.CashMovement) error {
	f.s.cashMovs = append(f.s.cashMovs, movement)
	return nil
}

func (f *fakeCashMovementRepo) SumByDay(day time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, m := range f.s.cashMovs {
		if sameDay(m.CreatedAt, day) {
			total = total.Add(m.Signed())
		}
	}
	return total, nil
}

func (f *fakeCashMovementRepo) SumByDayAndMethod(day time.Time) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal)
	for _, m := range f.s.cashMovs {
		if sameDay(m.CreatedAt, day) {
			out[m.PaymentMethod] = out[m.PaymentMethod].Add(m.Signed())
		}
	}
	return out, nil
}

func (f *fakeCashMovementRepo) ListByDay(day time.Time) ([]*entity.CashMovement, error) {
	var out []*entity.CashMovement
	for _, m := range f.s.cashMovs {
		if sameDay(m.CreatedAt, day) {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeAccountRepo struct{ s *memStore }

func (f *fakeAccountRepo) Create(account *entity.CurrentAccount) error {
	for _, a := range f.s.accounts {
		if a.CustomerID == account.CustomerID {
			return domain.ErrDuplicate
		}
	}
	f.s.accounts[account.ID] = account
	return nil
}

func (f *fakeAccountRepo) GetByID(id string) (*entity.CurrentAccount, error) {
	return f.s.accounts[id], nil
}

func (f *fakeAccountRepo) GetByCustomerID(customerID string) (*entity.CurrentAccount, error) {
	return f.s.accountByCustomer(customerID), nil
}

func (f *fakeAccountRepo) GetByCustomerForUpdate(customerID string) (*entity.CurrentAccount, error) {
	return f.s.accountByCustomer(customerID), nil
}

func (f *fakeAccountRepo) GetForUpdate(id string) (*entity.CurrentAccount, error) {
	return f.s.accounts[id], nil
}

func (f *fakeAccountRepo) UpdateStatus(id, status string) error {
	if a, ok := f.s.accounts[id]; ok {
		a.Status = status
	}
	return nil
}

func (f *fakeAccountRepo) CreateMovement(movement *entity.AccountMovement) error {
	f.s.accountMovs = append(f.s.accountMovs, movement)
	return nil
}

func (f *fakeAccountRepo) GetMovementByID(id string) (*entity.AccountMovement, error) {
	for _, m := range f.s.accountMovs {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountRepo) Balance(accountID string) (decimal.Decimal, error) {
	return f.s.accountBalance(accountID), nil
}

func (f *fakeAccountRepo) ListMovements(accountID string, limit, offset int) ([]*entity.AccountMovement, error) {
	var out []*entity.AccountMovement
	for _, m := range f.s.accountMovs {
		if m.AccountID == accountID {
			out = append(out, m)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeAccountRepo) ListMovementsByReference(accountID, referenceType, referenceID string) ([]*entity.AccountMovement, error) {
	var out []*entity.AccountMovement
	for _, m := range f.s.accountMovs {
		if m.AccountID == accountID && m.ReferenceType == referenceType && m.ReferenceID == referenceID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeExchangeRepo struct{ s *memStore }

func (f *fakeExchangeRepo) Create(exchange *entity.Exchange) error {
	f.s.exchanges[exchange.ID] = exchange
	return nil
}

func (f *fakeExchangeRepo) CreateItem(item *entity.ExchangeItem) error {
	f.s.exchangeItems = append(f.s.exchangeItems, item)
	return nil
}

func (f *fakeExchangeRepo) GetByID(id string) (*entity.Exchange, error) {
	return f.s.exchanges[id], nil
}

func (f *fakeExchangeRepo) GetItems(exchangeID string) ([]*entity.ExchangeItem, error) {
	var out []*entity.ExchangeItem
	for _, it := range f.s.exchangeItems {
		if it.ExchangeID == exchangeID {
			out = append(out, it)
		}
	}
	return out, nil
}

func strPtr(s string) *string { return &s }
