package orders_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frescosur/mayorista-api/internal/application/orders"
	appstock "github.com/frescosur/mayorista-api/internal/application/stock"
	"github.com/frescosur/mayorista-api/internal/domain"
	"github.com/frescosur/mayorista-api/internal/domain/entity"
	"github.com/frescosur/mayorista-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes transaccionales en memoria (mismo patrón que el motor de stock):
// las escrituras se acumulan en la tx y solo se aplican al store si fn
// retorna nil; un error descarta todo, incluido el cambio de estado de la orden.
// ──────────────────────────────────────────────────────────────────────────────

type ordersStore struct {
	mu          sync.Mutex
	products    map[string]*entity.Product
	movements   []*entity.Movement
	orders      map[string]*entity.Order
	receivables []*entity.Receivable
	proveedores map[string]*entity.Proveedor
	clientes    map[string]*entity.Cliente
	refSeq      int
}

func newOrdersStore() *ordersStore {
	return &ordersStore{
		products:    make(map[string]*entity.Product),
		orders:      make(map[string]*entity.Order),
		proveedores: make(map[string]*entity.Proveedor),
		clientes:    make(map[string]*entity.Cliente),
	}
}

type ordersTx struct {
	store *ordersStore

	stagedQty  map[string]decimal.Decimal
	stagedMovs []*entity.Movement
	completed  map[string]string // orderID -> userID
	stagedRecs []*entity.Receivable
}

func (tx *ordersTx) commit(now time.Time) {
	for id, qty := range tx.stagedQty {
		tx.store.products[id].QuantityOnHand = qty
	}
	tx.store.movements = append(tx.store.movements, tx.stagedMovs...)
	for id, userID := range tx.completed {
		o := tx.store.orders[id]
		o.State = entity.OrderStateCompleted
		o.CompletedAt = &now
		o.CompletedBy = userID
	}
	tx.store.receivables = append(tx.store.receivables, tx.stagedRecs...)
}

// ── repository.ProductRepository (solo lo que usa el motor) ──────────────────

func (tx *ordersTx) GetForUpdate(id string) (*entity.Product, error) {
	p, ok := tx.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	if qty, staged := tx.stagedQty[id]; staged {
		cp.QuantityOnHand = qty
	}
	return &cp, nil
}

func (tx *ordersTx) UpdateQuantity(id string, quantity decimal.Decimal) error {
	if tx.stagedQty == nil {
		tx.stagedQty = make(map[string]decimal.Decimal)
	}
	tx.stagedQty[id] = quantity
	return nil
}

func (tx *ordersTx) Create(p *entity.Product) error                    { return nil }
func (tx *ordersTx) GetByID(id string) (*entity.Product, error)        { return tx.GetForUpdate(id) }
func (tx *ordersTx) GetBySKU(sku string) (*entity.Product, error)      { return nil, nil }
func (tx *ordersTx) Update(p *entity.Product) error                    { return nil }
func (tx *ordersTx) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }
func (tx *ordersTx) ListAll() ([]*entity.Product, error)               { return nil, nil }
func (tx *ordersTx) Delete(id string) error                            { return nil }

// ── repository.MovementRepository ────────────────────────────────────────────

type txMovementRepo struct{ tx *ordersTx }

func (r txMovementRepo) Create(m *entity.Movement) error {
	cp := *m
	r.tx.stagedMovs = append(r.tx.stagedMovs, &cp)
	return nil
}

func (r txMovementRepo) GetByID(id string) (*entity.Movement, error) { return nil, nil }
func (r txMovementRepo) List(f repository.MovementFilter) ([]*entity.Movement, error) {
	return nil, nil
}
func (r txMovementRepo) SumDeltas(productID string, from, to *time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

// ── repository.OrderRepository ───────────────────────────────────────────────

type txOrderRepo struct{ tx *ordersTx }

func (r txOrderRepo) Create(order *entity.Order) error {
	cp := *order
	r.tx.store.orders[order.ID] = &cp
	return nil
}

func (r txOrderRepo) GetByID(id string) (*entity.Order, error) {
	o, ok := r.tx.store.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r txOrderRepo) List(kind, state string, limit, offset int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.tx.store.orders {
		if (kind == "" || o.Kind == kind) && (state == "" || o.State == state) {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r txOrderRepo) MarkCompleted(id, userID string, at time.Time) (bool, error) {
	o, ok := r.tx.store.orders[id]
	if !ok || o.State != entity.OrderStatePending {
		return false, nil
	}
	if _, staged := r.tx.completed[id]; staged {
		return false, nil
	}
	if r.tx.completed == nil {
		r.tx.completed = make(map[string]string)
	}
	r.tx.completed[id] = userID
	return true, nil
}

func (r txOrderRepo) MarkCancelled(id string) (bool, error) {
	o, ok := r.tx.store.orders[id]
	if !ok || o.State != entity.OrderStatePending {
		return false, nil
	}
	o.State = entity.OrderStateCancelled
	return true, nil
}

func (r txOrderRepo) NextReference(kind string) (string, error) {
	r.tx.store.refSeq++
	if kind == entity.OrderKindPurchase {
		return "OC-0001", nil
	}
	return "OV-0001", nil
}

// ── repository.ReceivableRepository ──────────────────────────────────────────

type txReceivableRepo struct{ tx *ordersTx }

func (r txReceivableRepo) Create(rec *entity.Receivable) error {
	cp := *rec
	r.tx.stagedRecs = append(r.tx.stagedRecs, &cp)
	return nil
}

func (r txReceivableRepo) GetByID(id string) (*entity.Receivable, error)       { return nil, nil }
func (r txReceivableRepo) GetForUpdate(id string) (*entity.Receivable, error)  { return nil, nil }
func (r txReceivableRepo) Update(rec *entity.Receivable) error                 { return nil }
func (r txReceivableRepo) CreatePayment(p *entity.Payment) error               { return nil }
func (r txReceivableRepo) ListPayments(id string) ([]*entity.Payment, error)   { return nil, nil }
func (r txReceivableRepo) ListByCliente(clienteID string, limit, offset int) ([]*entity.Receivable, error) {
	return nil, nil
}
func (r txReceivableRepo) ListOverdue(asOf time.Time, limit, offset int) ([]*entity.Receivable, error) {
	return nil, nil
}

// ── TxRunners ────────────────────────────────────────────────────────────────

type ordersTxRunner struct{ store *ordersStore }

func (r *ordersTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	tx := &ordersTx{store: r.store}
	if err := fn(txMovementRepo{tx}, tx); err != nil {
		return err
	}
	tx.commit(time.Now())
	return nil
}

func (r *ordersTxRunner) RunOrders(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	receivableRepo repository.ReceivableRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	tx := &ordersTx{store: r.store}
	if err := fn(txMovementRepo{tx}, tx, txOrderRepo{tx}, txReceivableRepo{tx}); err != nil {
		return err
	}
	tx.commit(time.Now())
	return nil
}

// Repos directos (fuera de transacción) usados por Create/Cancel/GetByID/List.
type directOrderRepo struct{ store *ordersStore }

func (r directOrderRepo) Create(order *entity.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return txOrderRepo{&ordersTx{store: r.store}}.Create(order)
}

func (r directOrderRepo) GetByID(id string) (*entity.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return txOrderRepo{&ordersTx{store: r.store}}.GetByID(id)
}

func (r directOrderRepo) List(kind, state string, limit, offset int) ([]*entity.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return txOrderRepo{&ordersTx{store: r.store}}.List(kind, state, limit, offset)
}

func (r directOrderRepo) MarkCompleted(id, userID string, at time.Time) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	tx := &ordersTx{store: r.store}
	ok, err := (txOrderRepo{tx}).MarkCompleted(id, userID, at)
	if ok {
		tx.commit(at)
	}
	return ok, err
}

func (r directOrderRepo) MarkCancelled(id string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return txOrderRepo{&ordersTx{store: r.store}}.MarkCancelled(id)
}

func (r directOrderRepo) NextReference(kind string) (string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return txOrderRepo{&ordersTx{store: r.store}}.NextReference(kind)
}

type proveedorRepo struct{ store *ordersStore }

func (r proveedorRepo) Create(p *entity.Proveedor) error   { r.store.proveedores[p.ID] = p; return nil }
func (r proveedorRepo) GetByID(id string) (*entity.Proveedor, error) {
	return r.store.proveedores[id], nil
}
func (r proveedorRepo) GetByTaxID(taxID string) (*entity.Proveedor, error) { return nil, nil }
func (r proveedorRepo) Update(p *entity.Proveedor) error                   { return nil }
func (r proveedorRepo) List(limit, offset int) ([]*entity.Proveedor, error) {
	return nil, nil
}
func (r proveedorRepo) Delete(id string) error { return nil }

type clienteRepo struct{ store *ordersStore }

func (r clienteRepo) Create(c *entity.Cliente) error { r.store.clientes[c.ID] = c; return nil }
func (r clienteRepo) GetByID(id string) (*entity.Cliente, error) {
	return r.store.clientes[id], nil
}
func (r clienteRepo) GetByTaxID(taxID string) (*entity.Cliente, error) { return nil, nil }
func (r clienteRepo) Update(c *entity.Cliente) error                   { return nil }
func (r clienteRepo) List(limit, offset int) ([]*entity.Cliente, error) {
	return nil, nil
}
func (r clienteRepo) Delete(id string) error { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

func setupOrders(t *testing.T) (*orders.UseCase, *ordersStore) {
	t.Helper()
	store := newOrdersStore()
	store.products["prod-papaya"] = &entity.Product{
		ID:               "prod-papaya",
		SKU:              "PAPAYA-KG",
		Name:             "Papaya Maradol",
		UnitMeasure:      "kg",
		QuantityOnHand:   decimal.RequireFromString("100"),
		MinimumThreshold: decimal.RequireFromString("10"),
	}
	store.products["prod-lulo"] = &entity.Product{
		ID:               "prod-lulo",
		SKU:              "LULO-KG",
		Name:             "Lulo",
		UnitMeasure:      "kg",
		QuantityOnHand:   decimal.RequireFromString("5"),
		MinimumThreshold: decimal.RequireFromString("2"),
	}
	store.proveedores["prov-1"] = &entity.Proveedor{ID: "prov-1", TaxID: "900111222", Name: "Finca La Esperanza"}
	store.clientes["cli-1"] = &entity.Cliente{ID: "cli-1", TaxID: "900333444", Name: "Restaurante El Sabor", CreditOK: true}
	store.clientes["cli-2"] = &entity.Cliente{ID: "cli-2", TaxID: "900555666", Name: "Tienda Doña Rosa", CreditOK: false}

	runner := &ordersTxRunner{store: store}
	engine := appstock.NewEngine(runner)
	uc := orders.NewUseCase(runner, engine, directOrderRepo{store}, proveedorRepo{store}, clienteRepo{store})
	return uc, store
}

func saleInput(partyID, payment string, items ...orders.CreateItem) orders.CreateInput {
	return orders.CreateInput{
		Kind:    entity.OrderKindSale,
		PartyID: partyID,
		Payment: payment,
		Items:   items,
		UserID:  "user-1",
	}
}

func item(productID, qty, price string) orders.CreateItem {
	return orders.CreateItem{
		ProductID: productID,
		Quantity:  decimal.RequireFromString(qty),
		UnitPrice: decimal.RequireFromString(price),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_VentaPendiente_NoTocaStock(t *testing.T) {
	uc, store := setupOrders(t)

	order, err := uc.Create(context.Background(), saleInput("cli-1", entity.PaymentCash,
		item("prod-papaya", "20", "3.50")))
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatePending, order.State)
	assert.Equal(t, "OV-0001", order.Reference)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("70")))
	assert.True(t, store.products["prod-papaya"].QuantityOnHand.Equal(decimal.RequireFromString("100")),
		"crear la orden no debe mover stock")
	assert.Empty(t, store.movements)
}

func TestCreate_CompraIgnoraFormaDePago(t *testing.T) {
	uc, _ := setupOrders(t)

	order, err := uc.Create(context.Background(), orders.CreateInput{
		Kind:    entity.OrderKindPurchase,
		PartyID: "prov-1",
		Payment: entity.PaymentCredit, // no aplica a compras
		Items:   []orders.CreateItem{item("prod-papaya", "50", "2.00")},
		UserID:  "user-1",
	})
	require.NoError(t, err)
	assert.Empty(t, order.Payment)
	assert.Equal(t, "OC-0001", order.Reference)
}

func TestCreate_CantidadCeroEnRenglon(t *testing.T) {
	uc, _ := setupOrders(t)

	_, err := uc.Create(context.Background(), saleInput("cli-1", entity.PaymentCash,
		item("prod-papaya", "0", "3.50")))
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestCreate_ClienteSinCredito_VentaCreditoProhibida(t *testing.T) {
	uc, _ := setupOrders(t)

	_, err := uc.Create(context.Background(), saleInput("cli-2", entity.PaymentCredit,
		item("prod-papaya", "10", "3.50")))
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreate_ParteInexistente(t *testing.T) {
	uc, _ := setupOrders(t)

	_, err := uc.Create(context.Background(), saleInput("cli-nope", entity.PaymentCash,
		item("prod-papaya", "10", "3.50")))
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cierre
// ──────────────────────────────────────────────────────────────────────────────

func TestComplete_VentaDescuentaStockYRegistraMovimientos(t *testing.T) {
	uc, store := setupOrders(t)
	order, err := uc.Create(context.Background(), saleInput("cli-1", entity.PaymentCash,
		item("prod-papaya", "30", "3.50"),
		item("prod-lulo", "2", "8.00")))
	require.NoError(t, err)

	res, err := uc.Complete(context.Background(), order.ID, "user-2")
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStateCompleted, res.Order.State)
	assert.True(t, store.products["prod-papaya"].QuantityOnHand.Equal(decimal.RequireFromString("70")))
	assert.True(t, store.products["prod-lulo"].QuantityOnHand.Equal(decimal.RequireFromString("3")))
	require.Len(t, store.movements, 2)
	for _, m := range store.movements {
		assert.Equal(t, entity.MovementKindOutbound, m.Kind)
		assert.Equal(t, order.Reference, m.Cause, "la causa del movimiento es la referencia de la orden")
		assert.Equal(t, "user-2", m.ActorID)
	}
	// Venta de contado: sin cuenta por cobrar.
	assert.Empty(t, store.receivables)
}

func TestComplete_CompraAumentaStock(t *testing.T) {
	uc, store := setupOrders(t)
	order, err := uc.Create(context.Background(), orders.CreateInput{
		Kind:    entity.OrderKindPurchase,
		PartyID: "prov-1",
		Items:   []orders.CreateItem{item("prod-lulo", "45", "5.00")},
		UserID:  "user-1",
	})
	require.NoError(t, err)

	_, err = uc.Complete(context.Background(), order.ID, "user-1")
	require.NoError(t, err)
	assert.True(t, store.products["prod-lulo"].QuantityOnHand.Equal(decimal.RequireFromString("50")))
	require.Len(t, store.movements, 1)
	assert.Equal(t, entity.MovementKindInbound, store.movements[0].Kind)
}

// Si un renglón no tiene stock suficiente, la orden entera queda sin completar:
// ni estado, ni movimientos, ni stock de los renglones anteriores.
func TestComplete_StockInsuficienteEnUnRenglon_RollbackTotal(t *testing.T) {
	uc, store := setupOrders(t)
	order, err := uc.Create(context.Background(), saleInput("cli-1", entity.PaymentCash,
		item("prod-papaya", "30", "3.50"),
		item("prod-lulo", "50", "8.00"))) // lulo solo tiene 5
	require.NoError(t, err)

	_, err = uc.Complete(context.Background(), order.ID, "user-1")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	stored, _ := uc.GetByID(order.ID)
	assert.Equal(t, entity.OrderStatePending, stored.State, "la orden sigue PENDIENTE")
	assert.True(t, store.products["prod-papaya"].QuantityOnHand.Equal(decimal.RequireFromString("100")),
		"el renglón que sí alcanzaba tampoco se aplica")
	assert.Empty(t, store.movements)
}

func TestComplete_DobleCierre_SegundoConflicto(t *testing.T) {
	uc, store := setupOrders(t)
	order, err := uc.Create(context.Background(), saleInput("cli-1", entity.PaymentCash,
		item("prod-papaya", "10", "3.50")))
	require.NoError(t, err)

	_, err = uc.Complete(context.Background(), order.ID, "user-1")
	require.NoError(t, err)

	_, err = uc.Complete(context.Background(), order.ID, "user-1")
	require.ErrorIs(t, err, domain.ErrConflict, "el cierre se aplica a lo sumo una vez")

	// Los movimientos del primer cierre no se duplican.
	require.Len(t, store.movements, 1)
	assert.True(t, store.products["prod-papaya"].QuantityOnHand.Equal(decimal.RequireFromString("90")))
}

func TestComplete_VentaCredito_GeneraCuentaPorCobrar(t *testing.T) {
	uc, store := setupOrders(t)
	order, err := uc.Create(context.Background(), saleInput("cli-1", entity.PaymentCredit,
		item("prod-papaya", "40", "3.50")))
	require.NoError(t, err)

	_, err = uc.Complete(context.Background(), order.ID, "user-1")
	require.NoError(t, err)

	require.Len(t, store.receivables, 1)
	rec := store.receivables[0]
	assert.Equal(t, "cli-1", rec.ClienteID)
	assert.Equal(t, order.ID, rec.OrderID)
	assert.True(t, rec.Amount.Equal(decimal.RequireFromString("140")))
	assert.True(t, rec.Balance.Equal(rec.Amount), "nace con el saldo completo")
	assert.Equal(t, entity.ReceivablePending, rec.State)
	assert.True(t, rec.DueDate.After(time.Now().AddDate(0, 0, 29)), "vence a 30 días")
}

func TestComplete_OrdenInexistente(t *testing.T) {
	uc, _ := setupOrders(t)
	_, err := uc.Complete(context.Background(), "orden-nope", "user-1")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Anulación
// ──────────────────────────────────────────────────────────────────────────────

func TestCancel_PendienteSeAnula(t *testing.T) {
	uc, _ := setupOrders(t)
	order, err := uc.Create(context.Background(), saleInput("cli-1", entity.PaymentCash,
		item("prod-papaya", "10", "3.50")))
	require.NoError(t, err)

	require.NoError(t, uc.Cancel(context.Background(), order.ID))
	stored, _ := uc.GetByID(order.ID)
	assert.Equal(t, entity.OrderStateCancelled, stored.State)
}

func TestCancel_CompletadaEsInmutable(t *testing.T) {
	uc, _ := setupOrders(t)
	order, err := uc.Create(context.Background(), saleInput("cli-1", entity.PaymentCash,
		item("prod-papaya", "10", "3.50")))
	require.NoError(t, err)
	_, err = uc.Complete(context.Background(), order.ID, "user-1")
	require.NoError(t, err)

	err = uc.Cancel(context.Background(), order.ID)
	require.ErrorIs(t, err, domain.ErrConflict)
}
