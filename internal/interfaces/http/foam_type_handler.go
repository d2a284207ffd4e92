package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/producao-espumas/internal/application/bom"
	"github.com/jhoicas/producao-espumas/internal/application/dto"
)

// FoamTypeHandler tipos de espuma (protegido).
type FoamTypeHandler struct {
	uc *bom.UseCase
}

// NewFoamTypeHandler construye el handler.
func NewFoamTypeHandler(uc *bom.UseCase) *FoamTypeHandler {
	return &FoamTypeHandler{uc: uc}
}

// Create godoc
// @Summary      Crear tipo de espuma
// @Tags         foam-types
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFoamTypeRequest  true  "nombre"
// @Success      201   {object}  dto.FoamTypeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/foam-types [post]
func (h *FoamTypeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFoamTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateFoamType(c.Context(), in)
	if err != nil {
		return fail(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar tipos de espuma
// @Tags         foam-types
// @Security     Bearer
// @Produce      json
// @Param        with_bom  query  bool  false  "sólo tipos con ficha técnica"
// @Success      200  {array}  dto.FoamTypeResponse
// @Router       /api/foam-types [get]
func (h *FoamTypeHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListFoamTypes(c.Context(), c.QueryBool("with_bom", false))
	if err != nil {
		return fail(c, err, "")
	}
	return c.JSON(list)
}

// Rename godoc
// @Summary      Renombrar tipo de espuma
// @Tags         foam-types
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del tipo"
// @Param        body  body  dto.RenameFoamTypeRequest  true  "nuevo nombre"
// @Success      200   {object}  dto.FoamTypeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/foam-types/{id} [put]
func (h *FoamTypeHandler) Rename(c *fiber.Ctx) error {
	var in dto.RenameFoamTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RenameFoamType(c.Context(), c.Params("id"), in)
	if err != nil {
		return fail(c, err, "tipo de espuma no encontrado")
	}
	return c.JSON(out)
}

// Toggle godoc
// @Summary      Activar o desactivar tipo de espuma
// @Tags         foam-types
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del tipo"
// @Success      200  {object}  dto.FoamTypeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/foam-types/{id}/toggle [patch]
func (h *FoamTypeHandler) Toggle(c *fiber.Ctx) error {
	out, err := h.uc.ToggleFoamType(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err, "tipo de espuma no encontrado")
	}
	return c.JSON(out)
}

// Components godoc
// @Summary      Componentes requeridos por un tipo de espuma
// @Description  Lista ordenada de la ficha técnica, usada para armar el formulario de producción.
// @Tags         foam-types
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del tipo"
// @Success      200  {object}  dto.FoamTypeComponentsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/foam-types/{id}/components [get]
func (h *FoamTypeHandler) Components(c *fiber.Ctx) error {
	out, err := h.uc.ResolveComponents(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err, "tipo de espuma no encontrado")
	}
	return c.JSON(out)
}
