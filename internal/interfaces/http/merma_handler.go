package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/frescosur/mayorista-api/internal/application/dto"
	"github.com/frescosur/mayorista-api/internal/application/merma"
	"github.com/frescosur/mayorista-api/internal/domain/entity"
)

// MermaHandler maneja el registro y consulta de mermas.
type MermaHandler struct {
	uc *merma.UseCase
}

// NewMermaHandler construye el handler.
func NewMermaHandler(uc *merma.UseCase) *MermaHandler {
	return &MermaHandler{uc: uc}
}

// Register registra una merma descontando stock.
func (h *MermaHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterMermaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.Register(c.Context(), merma.RegisterInput{
		ProductID:     in.ProductID,
		Tipo:          in.Tipo,
		Causa:         in.Causa,
		Clasificacion: in.Clasificacion,
		Quantity:      in.Quantity,
		Notes:         in.Notes,
		UserID:        GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	out := toMermaResponse(res.Merma)
	out.Warning = res.Warning
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List lista mermas con filtros por producto, clasificación y ventana.
func (h *MermaHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	from, ok := timeParam(c, "from")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC3339"})
	}
	to, ok := timeParam(c, "to")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC3339"})
	}
	list, err := h.uc.List(c.Query("product_id"), c.Query("clasificacion"), from, to, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.MermaResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMermaResponse(m))
	}
	return c.JSON(out)
}

func toMermaResponse(m *entity.Merma) dto.MermaResponse {
	return dto.MermaResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		MovementID:    m.MovementID,
		Tipo:          m.Tipo,
		Causa:         m.Causa,
		Clasificacion: m.Clasificacion,
		Quantity:      m.Quantity,
		Notes:         m.Notes,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
	}
}
