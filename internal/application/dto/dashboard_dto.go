package dto

import "github.com/shopspring/decimal"

// LowStockItemDTO un producto agotado o bajo mínimo en el reporte de stock.
type LowStockItemDTO struct {
	ProductID        string          `json:"product_id"`
	SKU              string          `json:"sku"`
	Name             string          `json:"name"`
	QuantityOnHand   decimal.Decimal `json:"quantity_on_hand"`
	MinimumThreshold decimal.Decimal `json:"minimum_threshold"`
	Level            string          `json:"level"` // OUT_OF_STOCK | BELOW_MINIMUM
}

// LowStockReportDTO reporte agrupado por nivel.
type LowStockReportDTO struct {
	OutOfStock   []LowStockItemDTO `json:"out_of_stock"`
	BelowMinimum []LowStockItemDTO `json:"below_minimum"`
}

// MovementSummaryDTO agregados del libro en una ventana de tiempo.
type MovementSummaryDTO struct {
	ProductID     string          `json:"product_id,omitempty"`
	TotalInbound  decimal.Decimal `json:"total_inbound"`
	TotalOutbound decimal.Decimal `json:"total_outbound"` // magnitud positiva
	NetDelta      decimal.Decimal `json:"net_delta"`
}

// ReconciliationDTO resultado de conciliar el libro contra el stock almacenado.
type ReconciliationDTO struct {
	ProductID      string          `json:"product_id"`
	StoredQuantity decimal.Decimal `json:"stored_quantity"`
	LedgerQuantity decimal.Decimal `json:"ledger_quantity"` // replay del libro
	Drift          decimal.Decimal `json:"drift"`           // stored - ledger, 0 si concilia
	Consistent     bool            `json:"consistent"`
}
