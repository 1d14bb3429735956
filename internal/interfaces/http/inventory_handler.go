package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/application/reporting"
)

// InventoryHandler maneja las peticiones HTTP de movimientos (protegido).
type InventoryHandler struct {
	ledger  *inventory.LedgerUseCase
	reports *reporting.ReportingUseCase
}

// NewInventoryHandler construye el handler. reports resuelve nombres de producto en los listados.
func NewInventoryHandler(ledger *inventory.LedgerUseCase, reports *reporting.ReportingUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, reports: reports}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "productId, type (entry|exit), quantity, reason"
// @Success      201   {object}  entity.Movement
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	m, err := h.ledger.ApplyMovement(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(m)
}

// ListMovements godoc
// @Summary      Listar movimientos
// @Description  Más recientes primero. date acepta "today" o AAAA-MM-DD.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        date       query  string  false  "today | AAAA-MM-DD"
// @Param        type       query  string  false  "entry | exit"
// @Param        productId  query  string  false  "Producto"
// @Success      200  {object}  dto.ListResponse[dto.MovementRow]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var f dto.MovementFilter
	if err := c.QueryParser(&f); err != nil {
		return invalidBody(c)
	}
	movs, err := h.ledger.Filter(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	rows, err := h.reports.Movements(c.UserContext(), movs)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(rows))
}

// GetMovement GET /api/movements/:id
func (h *InventoryHandler) GetMovement(c *fiber.Ctx) error {
	m, err := h.ledger.GetMovement(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(m)
}

// Today GET /api/movements/today
func (h *InventoryHandler) Today(c *fiber.Ctx) error {
	agg, err := h.ledger.TodayAggregate(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(agg)
}

// ReverseMovement DELETE /api/movements/:id
// Borra el movimiento y deshace su efecto sobre el stock. Solo admin.
func (h *InventoryHandler) ReverseMovement(c *fiber.Ctx) error {
	if err := h.ledger.ReverseMovement(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
