package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/producao-espumas/internal/application/dto"
	"github.com/jhoicas/producao-espumas/internal/application/inventory"
)

// ComponentHandler catálogo de componentes químicos (protegido).
type ComponentHandler struct {
	uc *inventory.ComponentUseCase
}

// NewComponentHandler construye el handler.
func NewComponentHandler(uc *inventory.ComponentUseCase) *ComponentHandler {
	return &ComponentHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar componente
// @Tags         components
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateComponentRequest  true  "nombre del componente"
// @Success      201   {object}  dto.ComponentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/components [post]
func (h *ComponentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateComponentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return fail(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar componentes con saldo
// @Tags         components
// @Security     Bearer
// @Produce      json
// @Param        active  query  bool  false  "sólo activos"
// @Success      200  {array}   dto.ComponentResponse
// @Router       /api/components [get]
func (h *ComponentHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), c.QueryBool("active", false))
	if err != nil {
		return fail(c, err, "")
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener componente
// @Tags         components
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del componente"
// @Success      200  {object}  dto.ComponentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/components/{id} [get]
func (h *ComponentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err, "")
	}
	if out == nil {
		return notFound(c, "componente")
	}
	return c.JSON(out)
}

// Toggle godoc
// @Summary      Activar o desactivar componente
// @Tags         components
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del componente"
// @Success      200  {object}  dto.ComponentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/components/{id}/toggle [patch]
func (h *ComponentHandler) Toggle(c *fiber.Ctx) error {
	out, err := h.uc.Toggle(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err, "componente no encontrado")
	}
	return c.JSON(out)
}
