package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU              string          `json:"sku"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	UnitMeasure      string          `json:"unit_measure"`
	Price            decimal.Decimal `json:"price"`
	Cost             decimal.Decimal `json:"cost"`
	MinimumThreshold decimal.Decimal `json:"minimum_threshold"`
	Perishable       bool            `json:"perishable"`
}

// UpdateProductRequest body para PUT /api/products/:id. Campos opcionales.
// No incluye cantidad: el stock solo cambia vía movimientos.
type UpdateProductRequest struct {
	Name             *string          `json:"name,omitempty"`
	Category         *string          `json:"category,omitempty"`
	UnitMeasure      *string          `json:"unit_measure,omitempty"`
	Price            *decimal.Decimal `json:"price,omitempty"`
	Cost             *decimal.Decimal `json:"cost,omitempty"`
	MinimumThreshold *decimal.Decimal `json:"minimum_threshold,omitempty"`
	Perishable       *bool            `json:"perishable,omitempty"`
}

// ProductResponse representación HTTP de un producto.
type ProductResponse struct {
	ID               string          `json:"id"`
	SKU              string          `json:"sku"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	UnitMeasure      string          `json:"unit_measure"`
	Price            decimal.Decimal `json:"price"`
	Cost             decimal.Decimal `json:"cost"`
	QuantityOnHand   decimal.Decimal `json:"quantity_on_hand"`
	MinimumThreshold decimal.Decimal `json:"minimum_threshold"`
	StockLevel       string          `json:"stock_level"` // OUT_OF_STOCK | BELOW_MINIMUM | NORMAL
	Perishable       bool            `json:"perishable"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Page     PageResponse      `json:"page"`
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
