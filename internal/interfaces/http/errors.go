package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/producao-espumas/internal/application/dto"
	"github.com/jhoicas/producao-espumas/internal/domain"
)

// fail responde con el código HTTP y el ErrorResponse correspondiente al error de dominio.
// notFoundMsg personaliza el mensaje de 404 (vacío = mensaje genérico).
func fail(c *fiber.Ctx, err error, notFoundMsg string) error {
	var insufficient *domain.InsufficientStockError
	switch {
	case errors.As(err, &insufficient):
		return respondError(c, fiber.StatusConflict, "INSUFFICIENT_STOCK", insufficient.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return respondError(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		if notFoundMsg == "" {
			notFoundMsg = "recurso no encontrado"
		}
		return respondError(c, fiber.StatusNotFound, "NOT_FOUND", notFoundMsg)
	case errors.Is(err, domain.ErrDuplicateBatchCode):
		return respondError(c, fiber.StatusConflict, "DUPLICATE_BATCH_CODE", err.Error())
	case errors.Is(err, domain.ErrDuplicate):
		return respondError(c, fiber.StatusConflict, "DUPLICATE", err.Error())
	case errors.Is(err, domain.ErrInsufficientStock):
		return respondError(c, fiber.StatusConflict, "INSUFFICIENT_STOCK", err.Error())
	case errors.Is(err, domain.ErrBOMNotConfigured):
		return respondError(c, fiber.StatusUnprocessableEntity, "BOM_NOT_CONFIGURED", err.Error())
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return respondError(c, fiber.StatusConflict, "EMAIL_EXISTS", err.Error())
	case errors.Is(err, domain.ErrPasswordMismatch):
		return respondError(c, fiber.StatusBadRequest, "PASSWORD_MISMATCH", err.Error())
	case errors.Is(err, domain.ErrEmailDomain):
		return respondError(c, fiber.StatusBadRequest, "EMAIL_DOMAIN", err.Error())
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrUnauthorized):
		return respondError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas")
	case errors.Is(err, domain.ErrForbidden):
		return respondError(c, fiber.StatusForbidden, "FORBIDDEN", "cuenta inactiva")
	}
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	return respondError(c, fiber.StatusInternalServerError, "INTERNAL", "error interno")
}

func respondError(c *fiber.Ctx, status int, code, msg string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func badBody(c *fiber.Ctx) error {
	return respondError(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
}

func notFound(c *fiber.Ctx, what string) error {
	return respondError(c, fiber.StatusNotFound, "NOT_FOUND", fmt.Sprintf("%s no encontrado", what))
}
