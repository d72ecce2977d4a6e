package jobs

import (
	"github.com/frescosur/mayorista-api/internal/application/reporting"
	"github.com/frescosur/mayorista-api/pkg/logger"
)

// ReconcileJob reproduce el libro de movimientos de cada producto y lo compara
// con el stock almacenado. Un drift distinto de cero se reporta pero no se
// corrige: la corrección es una decisión operativa, vía movimiento de ajuste.
type ReconcileJob struct {
	dashboard *reporting.DashboardUseCase
	schedule  string
	log       *logger.Logger
}

func NewReconcileJob(dashboard *reporting.DashboardUseCase, schedule string, log *logger.Logger) *ReconcileJob {
	return &ReconcileJob{dashboard: dashboard, schedule: schedule, log: log}
}

func (j *ReconcileJob) Name() string     { return "ledger_reconcile" }
func (j *ReconcileJob) Schedule() string { return j.schedule }

func (j *ReconcileJob) Run() {
	drifted, err := j.dashboard.ReconcileAll()
	if err != nil {
		j.log.Error().Err(err).Msg("conciliación del libro falló")
		return
	}
	for _, rec := range drifted {
		j.log.Error().
			Str("product_id", rec.ProductID).
			Str("stored", rec.StoredQuantity.String()).
			Str("ledger", rec.LedgerQuantity.String()).
			Str("drift", rec.Drift.String()).
			Msg("stock inconsistente con el libro de movimientos")
	}
	j.log.Info().Int("drifted", len(drifted)).Msg("conciliación completada")
}
