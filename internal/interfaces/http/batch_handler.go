package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/producao-espumas/internal/application/dto"
	"github.com/jhoicas/producao-espumas/internal/application/production"
)

// Prefijo de los campos de cantidad en el formulario de producción (componente_<id>).
const quantityFieldPrefix = "componente_"

// BatchHandler registro y consulta de blocos (protegido).
type BatchHandler struct {
	uc *production.RegisterBatchUseCase
}

// NewBatchHandler construye el handler.
func NewBatchHandler(uc *production.RegisterBatchUseCase) *BatchHandler {
	return &BatchHandler{uc: uc}
}

// parseQuantities lee los campos componente_<id> del formulario. Valores vacíos se ignoran.
func parseQuantities(c *fiber.Ctx, into map[string]decimal.Decimal) error {
	var parseErr error
	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		k := string(key)
		if parseErr != nil || !strings.HasPrefix(k, quantityFieldPrefix) {
			return
		}
		v := strings.TrimSpace(string(value))
		if v == "" {
			return
		}
		// Se acepta coma decimal
		q, err := decimal.NewFromString(strings.ReplaceAll(v, ",", "."))
		if err != nil {
			parseErr = err
			return
		}
		into[strings.TrimPrefix(k, quantityFieldPrefix)] = q
	})
	return parseErr
}

// Create godoc
// @Summary      Registrar bloco de producción
// @Description  Valida la ficha técnica del tipo de espuma y descuenta el consumo del stock de forma atómica.
// @Description  En formularios las cantidades llegan como campos componente_<id>.
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        body  body  dto.RegisterBatchRequest  true  "code, foam_type_id, color, height, conformity, quantities"
// @Success      201   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/batches [post]
func (h *BatchHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return respondError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "token inválido")
	}
	var in dto.RegisterBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Quantities == nil {
		in.Quantities = map[string]decimal.Decimal{}
	}
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationForm) {
		if err := parseQuantities(c, in.Quantities); err != nil {
			return respondError(c, fiber.StatusBadRequest, "VALIDATION", "cantidad inválida")
		}
	}
	out, err := h.uc.RegisterBatch(c.Context(), userID, in)
	if err != nil {
		return fail(c, err, "tipo de espuma no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar blocos
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "default 20"
// @Param        offset  query  int  false  "default 0"
// @Success      200  {object}  dto.BatchListResponse
// @Router       /api/batches [get]
func (h *BatchHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.ListBatches(c.Context(), page)
	if err != nil {
		return fail(c, err, "")
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener bloco con su consumo
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del bloco"
// @Success      200  {object}  dto.BatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/batches/{id} [get]
func (h *BatchHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetBatch(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err, "")
	}
	if out == nil {
		return notFound(c, "bloco")
	}
	return c.JSON(out)
}
