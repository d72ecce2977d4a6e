package reporting_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frescosur/mayorista-api/internal/application/reporting"
	"github.com/frescosur/mayorista-api/internal/domain"
	"github.com/frescosur/mayorista-api/internal/domain/entity"
	"github.com/frescosur/mayorista-api/internal/domain/repository"
)

// Fakes de solo lectura: el dashboard nunca escribe.

type readProductRepo struct{ products []*entity.Product }

func (r readProductRepo) Create(p *entity.Product) error { return nil }
func (r readProductRepo) GetByID(id string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}
func (r readProductRepo) GetBySKU(sku string) (*entity.Product, error)            { return nil, nil }
func (r readProductRepo) GetForUpdate(id string) (*entity.Product, error)         { return r.GetByID(id) }
func (r readProductRepo) UpdateQuantity(id string, q decimal.Decimal) error       { return nil }
func (r readProductRepo) Update(p *entity.Product) error                          { return nil }
func (r readProductRepo) List(limit, offset int) ([]*entity.Product, error)       { return r.products, nil }
func (r readProductRepo) ListAll() ([]*entity.Product, error)                     { return r.products, nil }
func (r readProductRepo) Delete(id string) error                                  { return nil }

type readMovementRepo struct{ movements []*entity.Movement }

func (r readMovementRepo) Create(m *entity.Movement) error              { return nil }
func (r readMovementRepo) GetByID(id string) (*entity.Movement, error)  { return nil, nil }
func (r readMovementRepo) List(f repository.MovementFilter) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.movements {
		if f.ProductID == "" || m.ProductID == f.ProductID {
			out = append(out, m)
		}
	}
	return out, nil
}
func (r readMovementRepo) SumDeltas(productID string, from, to *time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, m := range r.movements {
		if m.ProductID == productID {
			sum = sum.Add(m.QuantityDelta)
		}
	}
	return sum, nil
}

func producto(id, qty, min string) *entity.Product {
	return &entity.Product{
		ID:               id,
		SKU:              id,
		Name:             id,
		QuantityOnHand:   decimal.RequireFromString(qty),
		MinimumThreshold: decimal.RequireFromString(min),
	}
}

func delta(productID, d string) *entity.Movement {
	return &entity.Movement{ProductID: productID, QuantityDelta: decimal.RequireFromString(d)}
}

func TestLowStockReport_ClasificaNiveles(t *testing.T) {
	uc := reporting.NewDashboardUseCase(readProductRepo{products: []*entity.Product{
		producto("agotado", "0", "5"),
		producto("bajo", "3", "5"),
		producto("normal", "20", "5"),
	}}, readMovementRepo{})

	report, err := uc.LowStockReport()
	require.NoError(t, err)

	require.Len(t, report.OutOfStock, 1)
	assert.Equal(t, "agotado", report.OutOfStock[0].ProductID)
	require.Len(t, report.BelowMinimum, 1)
	assert.Equal(t, "bajo", report.BelowMinimum[0].ProductID)
}

func TestMovementSummary_AgregaPorSigno(t *testing.T) {
	uc := reporting.NewDashboardUseCase(readProductRepo{}, readMovementRepo{movements: []*entity.Movement{
		delta("prod-1", "30"),
		delta("prod-1", "-12.5"),
		delta("prod-1", "-7.5"),
		delta("prod-2", "100"), // otro producto, no cuenta
	}})

	out, err := uc.MovementSummary("prod-1", nil, nil)
	require.NoError(t, err)

	assert.True(t, out.TotalInbound.Equal(decimal.RequireFromString("30")))
	assert.True(t, out.TotalOutbound.Equal(decimal.RequireFromString("20")), "salidas como magnitud positiva")
	assert.True(t, out.NetDelta.Equal(decimal.RequireFromString("10")))
}

func TestMovementSummary_SinProducto(t *testing.T) {
	uc := reporting.NewDashboardUseCase(readProductRepo{}, readMovementRepo{})
	_, err := uc.MovementSummary("", nil, nil)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReconcile_LibroConsistente(t *testing.T) {
	uc := reporting.NewDashboardUseCase(
		readProductRepo{products: []*entity.Product{producto("prod-1", "17.5", "5")}},
		readMovementRepo{movements: []*entity.Movement{
			delta("prod-1", "30"),
			delta("prod-1", "-12.5"),
		}},
	)

	rec, err := uc.Reconcile("prod-1")
	require.NoError(t, err)
	assert.True(t, rec.Consistent)
	assert.True(t, rec.Drift.IsZero())
}

func TestReconcile_DetectaDrift(t *testing.T) {
	// 30 - 12.5 = 17.5 en el libro, pero el producto dice 20: algo escribió
	// stock por fuera del motor.
	uc := reporting.NewDashboardUseCase(
		readProductRepo{products: []*entity.Product{producto("prod-1", "20", "5")}},
		readMovementRepo{movements: []*entity.Movement{
			delta("prod-1", "30"),
			delta("prod-1", "-12.5"),
		}},
	)

	rec, err := uc.Reconcile("prod-1")
	require.NoError(t, err)
	assert.False(t, rec.Consistent)
	assert.True(t, rec.Drift.Equal(decimal.RequireFromString("2.5")))
}

func TestReconcileAll_SoloDevuelveInconsistentes(t *testing.T) {
	uc := reporting.NewDashboardUseCase(
		readProductRepo{products: []*entity.Product{
			producto("ok", "10", "5"),
			producto("drifted", "10", "5"),
		}},
		readMovementRepo{movements: []*entity.Movement{
			delta("ok", "10"),
			delta("drifted", "8"),
		}},
	)

	drifted, err := uc.ReconcileAll()
	require.NoError(t, err)
	require.Len(t, drifted, 1)
	assert.Equal(t, "drifted", drifted[0].ProductID)
}

func TestReconcile_ProductoInexistente(t *testing.T) {
	uc := reporting.NewDashboardUseCase(readProductRepo{}, readMovementRepo{})
	_, err := uc.Reconcile("prod-nope")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
