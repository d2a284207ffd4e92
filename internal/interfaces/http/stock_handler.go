package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/producao-espumas/internal/application/dto"
	"github.com/jhoicas/producao-espumas/internal/application/inventory"
)

// StockHandler saldos, ajustes manuales y libro de movimientos (protegido).
type StockHandler struct {
	uc *inventory.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Adjust godoc
// @Summary      Ajuste manual de stock
// @Description  Registra una entrada o saída manual y actualiza el saldo en la misma transacción.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del componente"
// @Param        body  body  dto.AdjustStockRequest  true  "type (entrada|saida), quantity, date"
// @Success      201   {object}  dto.BalanceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/components/{id}/adjustments [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return respondError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "token inválido")
	}
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AdjustStock(c.Context(), c.Params("id"), userID, in)
	if err != nil {
		return fail(c, err, "componente no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Movements godoc
// @Summary      Movimientos de un componente
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del componente"
// @Param        limit   query  int     false  "default 20"
// @Param        offset  query  int     false  "default 0"
// @Success      200  {array}   dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/components/{id}/movements [get]
func (h *StockHandler) Movements(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	list, err := h.uc.ListMovements(c.Context(), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return fail(c, err, "componente no encontrado")
	}
	return c.JSON(list)
}

// Balances godoc
// @Summary      Saldos de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BalanceResponse
// @Router       /api/stock [get]
func (h *StockHandler) Balances(c *fiber.Ctx) error {
	list, err := h.uc.ListBalances(c.Context())
	if err != nil {
		return fail(c, err, "")
	}
	return c.JSON(list)
}

// Recalculate godoc
// @Summary      Recalcular saldos desde el libro de movimientos
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RecalculateResponse
// @Router       /api/stock/recalculate [post]
func (h *StockHandler) Recalculate(c *fiber.Ctx) error {
	out, err := h.uc.RecalculateBalances(c.Context())
	if err != nil {
		return fail(c, err, "")
	}
	return c.JSON(out)
}
