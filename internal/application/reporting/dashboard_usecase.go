package reporting

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/frescosur/mayorista-api/internal/application/dto"
	"github.com/frescosur/mayorista-api/internal/domain"
	"github.com/frescosur/mayorista-api/internal/domain/entity"
	"github.com/frescosur/mayorista-api/internal/domain/repository"
	"github.com/frescosur/mayorista-api/internal/domain/stock"
)

// DashboardUseCase consultas de solo lectura sobre el libro de movimientos y el
// monitor de umbrales. Nunca aplica movimientos.
type DashboardUseCase struct {
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(productRepo repository.ProductRepository, movementRepo repository.MovementRepository) *DashboardUseCase {
	return &DashboardUseCase{productRepo: productRepo, movementRepo: movementRepo}
}

// LowStockReport clasifica todos los productos y devuelve los agotados y los
// que están bajo su umbral mínimo.
func (uc *DashboardUseCase) LowStockReport() (*dto.LowStockReportDTO, error) {
	products, err := uc.productRepo.ListAll()
	if err != nil {
		return nil, err
	}
	report := &dto.LowStockReportDTO{
		OutOfStock:   []dto.LowStockItemDTO{},
		BelowMinimum: []dto.LowStockItemDTO{},
	}
	for _, p := range products {
		level := stock.Classify(p.QuantityOnHand, p.MinimumThreshold)
		if level == stock.LevelNormal {
			continue
		}
		item := dto.LowStockItemDTO{
			ProductID:        p.ID,
			SKU:              p.SKU,
			Name:             p.Name,
			QuantityOnHand:   p.QuantityOnHand,
			MinimumThreshold: p.MinimumThreshold,
			Level:            string(level),
		}
		if level == stock.LevelOutOfStock {
			report.OutOfStock = append(report.OutOfStock, item)
		} else {
			report.BelowMinimum = append(report.BelowMinimum, item)
		}
	}
	return report, nil
}

// MovementSummary agrega entradas y salidas de un producto en una ventana.
// productID vacío no es válido: el resumen es por producto.
func (uc *DashboardUseCase) MovementSummary(productID string, from, to *time.Time) (*dto.MovementSummaryDTO, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	movements, err := uc.movementRepo.List(repository.MovementFilter{
		ProductID: productID,
		From:      from,
		To:        to,
		Limit:     10000,
	})
	if err != nil {
		return nil, err
	}
	inbound, outbound := decimal.Zero, decimal.Zero
	for _, m := range movements {
		switch {
		case m.QuantityDelta.GreaterThan(decimal.Zero):
			inbound = inbound.Add(m.QuantityDelta)
		case m.QuantityDelta.LessThan(decimal.Zero):
			outbound = outbound.Add(m.QuantityDelta.Neg())
		}
	}
	return &dto.MovementSummaryDTO{
		ProductID:     productID,
		TotalInbound:  inbound,
		TotalOutbound: outbound,
		NetDelta:      inbound.Sub(outbound),
	}, nil
}

// Reconcile reproduce el libro de un producto (suma de deltas desde el origen)
// y lo compara con la cantidad almacenada. Drift distinto de cero indica que
// algo escribió stock por fuera del motor.
func (uc *DashboardUseCase) Reconcile(productID string) (*dto.ReconciliationDTO, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	ledgerQty, err := uc.movementRepo.SumDeltas(productID, nil, nil)
	if err != nil {
		return nil, err
	}
	// Los productos nacen con stock cero, así que el replay completo del libro
	// debe igualar la cantidad almacenada.
	stored := stock.Normalize(product.QuantityOnHand)
	ledgerQty = stock.Normalize(ledgerQty)
	drift := stored.Sub(ledgerQty)
	return &dto.ReconciliationDTO{
		ProductID:      productID,
		StoredQuantity: stored,
		LedgerQuantity: ledgerQty,
		Drift:          drift,
		Consistent:     drift.IsZero(),
	}, nil
}

// ReconcileAll concilia todos los productos y devuelve solo los inconsistentes.
func (uc *DashboardUseCase) ReconcileAll() ([]dto.ReconciliationDTO, error) {
	products, err := uc.productRepo.ListAll()
	if err != nil {
		return nil, err
	}
	var drifted []dto.ReconciliationDTO
	for _, p := range products {
		rec, err := uc.Reconcile(p.ID)
		if err != nil {
			return nil, err
		}
		if !rec.Consistent {
			drifted = append(drifted, *rec)
		}
	}
	return drifted, nil
}

// ListMovements expone el libro con filtros para la UI (orden: CreatedAt desc).
func (uc *DashboardUseCase) ListMovements(filter repository.MovementFilter) ([]*entity.Movement, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	return uc.movementRepo.List(filter)
}
