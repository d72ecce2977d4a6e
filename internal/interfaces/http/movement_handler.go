package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/frescosur/mayorista-api/internal/application/dto"
	"github.com/frescosur/mayorista-api/internal/application/reporting"
	appstock "github.com/frescosur/mayorista-api/internal/application/stock"
	"github.com/frescosur/mayorista-api/internal/application/usecase"
	"github.com/frescosur/mayorista-api/internal/domain/entity"
	"github.com/frescosur/mayorista-api/internal/domain/repository"
)

// MovementHandler expone el registro manual de movimientos y las consultas
// sobre el libro.
type MovementHandler struct {
	engine    *appstock.Engine
	dashboard *reporting.DashboardUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(engine *appstock.Engine, dashboard *reporting.DashboardUseCase) *MovementHandler {
	return &MovementHandler{engine: engine, dashboard: dashboard}
}

// Register aplica un movimiento manual (entrada, salida o ajuste) vía el motor.
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es requerido"})
	}
	res, err := h.engine.ApplyMovement(c.Context(), appstock.ApplyInput{
		ProductID: in.ProductID,
		Kind:      in.Kind,
		Magnitude: in.Magnitude,
		Cause:     in.Cause,
		ActorID:   GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResultResponse{
		Product:  *usecase.ToProductResponse(res.Product),
		Movement: toMovementResponse(res.Movement),
		Warning:  res.Warning,
	})
}

// List expone el libro de movimientos con filtros por producto, tipo, causa y ventana.
func (h *MovementHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	filter := repository.MovementFilter{
		ProductID: c.Query("product_id"),
		Kind:      c.Query("kind"),
		Cause:     c.Query("cause"),
		Limit:     limit,
		Offset:    offset,
	}
	var ok bool
	if filter.From, ok = timeParam(c, "from"); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC3339"})
	}
	if filter.To, ok = timeParam(c, "to"); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC3339"})
	}
	movements, err := h.dashboard.ListMovements(filter)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementResponse(m))
	}
	return c.JSON(out)
}

// Summary agrega entradas y salidas de un producto en una ventana de tiempo.
func (h *MovementHandler) Summary(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es requerido"})
	}
	from, ok := timeParam(c, "from")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC3339"})
	}
	to, ok := timeParam(c, "to")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC3339"})
	}
	out, err := h.dashboard.MovementSummary(productID, from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func toMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		Kind:           m.Kind,
		QuantityDelta:  m.QuantityDelta,
		QuantityBefore: m.QuantityBefore,
		QuantityAfter:  m.QuantityAfter,
		Cause:          m.Cause,
		ActorID:        m.ActorID,
		CreatedAt:      m.CreatedAt,
	}
}

// timeParam parsea un query param RFC3339 opcional. ok=false si está presente
// pero es inválido.
func timeParam(c *fiber.Ctx, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, false
	}
	return &t, true
}
