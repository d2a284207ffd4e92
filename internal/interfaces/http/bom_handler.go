package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/producao-espumas/internal/application/bom"
	"github.com/jhoicas/producao-espumas/internal/application/dto"
)

// BOMHandler fichas técnicas (protegido).
type BOMHandler struct {
	uc *bom.UseCase
}

// NewBOMHandler construye el handler.
func NewBOMHandler(uc *bom.UseCase) *BOMHandler {
	return &BOMHandler{uc: uc}
}

// parseBOMRequest acepta JSON o formulario; en formularios componentes_ids puede repetirse.
func parseBOMRequest(c *fiber.Ctx) (dto.BOMRequest, error) {
	var in dto.BOMRequest
	if err := c.BodyParser(&in); err != nil {
		return in, err
	}
	if len(in.ComponentIDs) == 0 {
		if args := c.Request().PostArgs(); args != nil {
			for _, v := range args.PeekMulti("componentes_ids") {
				in.ComponentIDs = append(in.ComponentIDs, string(v))
			}
		}
	}
	return in, nil
}

// Create godoc
// @Summary      Crear ficha técnica
// @Tags         boms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BOMRequest  true  "foam_type_id, description, component_ids (en orden)"
// @Success      201   {object}  dto.BOMResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/boms [post]
func (h *BOMHandler) Create(c *fiber.Ctx) error {
	in, err := parseBOMRequest(c)
	if err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateBOM(c.Context(), in)
	if err != nil {
		return fail(c, err, "tipo de espuma no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar ficha técnica
// @Tags         boms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string          true  "ID de la ficha"
// @Param        body  body  dto.BOMRequest  true  "foam_type_id, description, component_ids"
// @Success      200   {object}  dto.BOMResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/boms/{id} [put]
func (h *BOMHandler) Update(c *fiber.Ctx) error {
	in, err := parseBOMRequest(c)
	if err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateBOM(c.Context(), c.Params("id"), in)
	if err != nil {
		return fail(c, err, "ficha técnica no encontrada")
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener ficha técnica
// @Tags         boms
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la ficha"
// @Success      200  {object}  dto.BOMResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/boms/{id} [get]
func (h *BOMHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetBOM(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err, "")
	}
	if out == nil {
		return notFound(c, "ficha técnica")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar fichas técnicas
// @Tags         boms
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BOMResponse
// @Router       /api/boms [get]
func (h *BOMHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListBOMs(c.Context())
	if err != nil {
		return fail(c, err, "")
	}
	return c.JSON(list)
}
