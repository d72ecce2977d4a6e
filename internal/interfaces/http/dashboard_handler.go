package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/frescosur/mayorista-api/internal/application/dto"
	"github.com/frescosur/mayorista-api/internal/application/reporting"
)

// DashboardHandler consultas de solo lectura: stock bajo y conciliación.
type DashboardHandler struct {
	uc *reporting.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *reporting.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// LowStock devuelve los productos agotados y bajo mínimo.
func (h *DashboardHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStockReport()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reconcile concilia el libro de un producto contra su stock almacenado.
func (h *DashboardHandler) Reconcile(c *fiber.Ctx) error {
	out, err := h.uc.Reconcile(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ReconcileAll devuelve los productos cuyo stock no concilia con el libro.
func (h *DashboardHandler) ReconcileAll(c *fiber.Ctx) error {
	drifted, err := h.uc.ReconcileAll()
	if err != nil {
		return writeError(c, err)
	}
	if drifted == nil {
		drifted = []dto.ReconciliationDTO{}
	}
	return c.JSON(drifted)
}
