package jobs

import (
	"github.com/frescosur/mayorista-api/internal/application/reporting"
	"github.com/frescosur/mayorista-api/pkg/logger"
)

// LowStockJob recorre el catálogo y registra en el log los productos agotados
// o bajo su umbral mínimo. Es puramente consultivo: no muta stock.
type LowStockJob struct {
	dashboard *reporting.DashboardUseCase
	schedule  string
	log       *logger.Logger
}

func NewLowStockJob(dashboard *reporting.DashboardUseCase, schedule string, log *logger.Logger) *LowStockJob {
	return &LowStockJob{dashboard: dashboard, schedule: schedule, log: log}
}

func (j *LowStockJob) Name() string     { return "low_stock_report" }
func (j *LowStockJob) Schedule() string { return j.schedule }

func (j *LowStockJob) Run() {
	report, err := j.dashboard.LowStockReport()
	if err != nil {
		j.log.Error().Err(err).Msg("reporte de stock bajo falló")
		return
	}
	for _, item := range report.OutOfStock {
		j.log.Warn().
			Str("product_id", item.ProductID).
			Str("sku", item.SKU).
			Msg("producto agotado")
	}
	for _, item := range report.BelowMinimum {
		j.log.Warn().
			Str("product_id", item.ProductID).
			Str("sku", item.SKU).
			Str("quantity", item.QuantityOnHand.String()).
			Str("minimum", item.MinimumThreshold.String()).
			Msg("stock bajo el mínimo")
	}
	j.log.Info().
		Int("out_of_stock", len(report.OutOfStock)).
		Int("below_minimum", len(report.BelowMinimum)).
		Msg("reporte de stock bajo completado")
}
