package merma_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frescosur/mayorista-api/internal/application/merma"
	appstock "github.com/frescosur/mayorista-api/internal/application/stock"
	"github.com/frescosur/mayorista-api/internal/domain"
	"github.com/frescosur/mayorista-api/internal/domain/entity"
	"github.com/frescosur/mayorista-api/internal/domain/repository"
	domstock "github.com/frescosur/mayorista-api/internal/domain/stock"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes transaccionales en memoria: el movimiento OUTBOUND y el registro de
// merma se confirman juntos o ninguno.
// ──────────────────────────────────────────────────────────────────────────────

type mermaStore struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	movements []*entity.Movement
	mermas    []*entity.Merma

	failMermaInsert bool
}

type mermaTx struct {
	store *mermaStore

	stagedQty    map[string]decimal.Decimal
	stagedMovs   []*entity.Movement
	stagedMermas []*entity.Merma
}

func (tx *mermaTx) commit() {
	for id, qty := range tx.stagedQty {
		tx.store.products[id].QuantityOnHand = qty
	}
	tx.store.movements = append(tx.store.movements, tx.stagedMovs...)
	tx.store.mermas = append(tx.store.mermas, tx.stagedMermas...)
}

func (tx *mermaTx) GetForUpdate(id string) (*entity.Product, error) {
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

func (tx *mermaTx) UpdateQuantity(id string, quantity decimal.Decimal) error {
	if tx.stagedQty == nil {
		tx.stagedQty = make(map[string]decimal.Decimal)
	}
	tx.stagedQty[id] = quantity
	return nil
}

func (tx *mermaTx) Create(p *entity.Product) error                    { return nil }
func (tx *mermaTx) GetByID(id string) (*entity.Product, error)        { return tx.GetForUpdate(id) }
func (tx *mermaTx) GetBySKU(sku string) (*entity.Product, error)      { return nil, nil }
func (tx *mermaTx) Update(p *entity.Product) error                    { return nil }
func (tx *mermaTx) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }
func (tx *mermaTx) ListAll() ([]*entity.Product, error)               { return nil, nil }
func (tx *mermaTx) Delete(id string) error                            { return nil }

type mermaMovRepo struct{ tx *mermaTx }

func (r mermaMovRepo) Create(m *entity.Movement) error {
	cp := *m
	r.tx.stagedMovs = append(r.tx.stagedMovs, &cp)
	return nil
}
func (r mermaMovRepo) GetByID(id string) (*entity.Movement, error) { return nil, nil }
func (r mermaMovRepo) List(f repository.MovementFilter) ([]*entity.Movement, error) {
	return nil, nil
}
func (r mermaMovRepo) SumDeltas(productID string, from, to *time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type mermaRepo struct{ tx *mermaTx }

func (r mermaRepo) Create(m *entity.Merma) error {
	if r.tx.store.failMermaInsert {
		return domain.ErrPersistence
	}
	cp := *m
	r.tx.stagedMermas = append(r.tx.stagedMermas, &cp)
	return nil
}
func (r mermaRepo) GetByID(id string) (*entity.Merma, error) { return nil, nil }
func (r mermaRepo) List(productID, clasificacion string, from, to *time.Time, limit, offset int) ([]*entity.Merma, error) {
	r.tx.store.mu.Lock()
	defer r.tx.store.mu.Unlock()
	var out []*entity.Merma
	for _, m := range r.tx.store.mermas {
		if (productID == "" || m.ProductID == productID) &&
			(clasificacion == "" || m.Clasificacion == clasificacion) {
			out = append(out, m)
		}
	}
	return out, nil
}

type mermaTxRunner struct{ store *mermaStore }

func (r *mermaTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	tx := &mermaTx{store: r.store}
	if err := fn(mermaMovRepo{tx}, tx); err != nil {
		return err
	}
	tx.commit()
	return nil
}

func (r *mermaTxRunner) RunMerma(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	mermaRepo repository.MermaRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	tx := &mermaTx{store: r.store}
	if err := fn(mermaMovRepo{tx}, tx, mermaRepo{tx}); err != nil {
		return err
	}
	tx.commit()
	return nil
}

func setupMerma(t *testing.T, qty string) (*merma.UseCase, *mermaStore) {
	t.Helper()
	store := &mermaStore{products: map[string]*entity.Product{
		"prod-tomate": {
			ID:               "prod-tomate",
			SKU:              "TOMATE-KG",
			Name:             "Tomate Chonto",
			UnitMeasure:      "kg",
			QuantityOnHand:   decimal.RequireFromString(qty),
			MinimumThreshold: decimal.RequireFromString("10"),
		},
	}}
	runner := &mermaTxRunner{store: store}
	engine := appstock.NewEngine(runner)
	uc := merma.NewUseCase(runner, engine, mermaRepo{&mermaTx{store: store}})
	return uc, store
}

func registerInput(qty string) merma.RegisterInput {
	return merma.RegisterInput{
		ProductID:     "prod-tomate",
		Tipo:          entity.MermaTipoDeterioro,
		Causa:         "maduración excesiva",
		Clasificacion: entity.MermaNormal,
		Quantity:      decimal.RequireFromString(qty),
		Notes:         "canastilla 12",
		UserID:        "user-1",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_DescuentaStockYReferenciaMovimiento(t *testing.T) {
	uc, store := setupMerma(t, "40")

	res, err := uc.Register(context.Background(), registerInput("8.5"))
	require.NoError(t, err)

	assert.True(t, store.products["prod-tomate"].QuantityOnHand.Equal(decimal.RequireFromString("31.5")))
	require.Len(t, store.movements, 1)
	require.Len(t, store.mermas, 1)

	m := store.movements[0]
	assert.Equal(t, entity.MovementKindOutbound, m.Kind)
	assert.Equal(t, "merma:DETERIORO/maduración excesiva", m.Cause)
	assert.Equal(t, m.ID, res.Merma.MovementID, "la merma referencia el movimiento que descontó el stock")
	assert.Equal(t, entity.MermaNormal, res.Merma.Clasificacion)
}

func TestRegister_StockInsuficiente_SinRegistro(t *testing.T) {
	uc, store := setupMerma(t, "3")

	_, err := uc.Register(context.Background(), registerInput("5"))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, store.products["prod-tomate"].QuantityOnHand.Equal(decimal.RequireFromString("3")))
	assert.Empty(t, store.movements)
	assert.Empty(t, store.mermas)
}

func TestRegister_FallaInsertMerma_RevierteMovimiento(t *testing.T) {
	uc, store := setupMerma(t, "40")
	store.failMermaInsert = true

	_, err := uc.Register(context.Background(), registerInput("5"))
	require.Error(t, err)

	assert.True(t, store.products["prod-tomate"].QuantityOnHand.Equal(decimal.RequireFromString("40")),
		"si la merma no se pudo registrar, el stock no cambia")
	assert.Empty(t, store.movements)
}

func TestRegister_TipoFueraDeTaxonomia(t *testing.T) {
	uc, _ := setupMerma(t, "40")
	in := registerInput("5")
	in.Tipo = "HURACAN"

	_, err := uc.Register(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_ClasificacionInvalida(t *testing.T) {
	uc, _ := setupMerma(t, "40")
	in := registerInput("5")
	in.Clasificacion = "RARA"

	_, err := uc.Register(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_AgotaElProducto_Advierte(t *testing.T) {
	uc, _ := setupMerma(t, "5")

	res, err := uc.Register(context.Background(), registerInput("5"))
	require.NoError(t, err)
	assert.Equal(t, domstock.LevelOutOfStock, res.Level)
	assert.Equal(t, "producto agotado", res.Warning)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado
// ──────────────────────────────────────────────────────────────────────────────

func TestList_FiltraPorClasificacion(t *testing.T) {
	uc, _ := setupMerma(t, "100")

	_, err := uc.Register(context.Background(), registerInput("5"))
	require.NoError(t, err)
	extra := registerInput("10")
	extra.Clasificacion = entity.MermaExtraordinary
	extra.Tipo = entity.MermaTipoTransporte
	extra.Causa = "volcamiento"
	_, err = uc.Register(context.Background(), extra)
	require.NoError(t, err)

	normales, err := uc.List("prod-tomate", entity.MermaNormal, nil, nil, 20, 0)
	require.NoError(t, err)
	require.Len(t, normales, 1)
	assert.Equal(t, entity.MermaNormal, normales[0].Clasificacion)

	todas, err := uc.List("prod-tomate", "", nil, nil, 20, 0)
	require.NoError(t, err)
	assert.Len(t, todas, 2)
}
