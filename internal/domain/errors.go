package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("saldo insuficiente")
	ErrDuplicateBatchCode = errors.New("número de bloco ya registrado")
	ErrBOMNotConfigured   = errors.New("ficha técnica no configurada para el tipo de espuma")
	ErrPasswordMismatch   = errors.New("las contraseñas no coinciden")
	ErrEmailDomain        = errors.New("dominio de email no permitido")
)

// InsufficientStockError indica qué componente no tiene saldo suficiente.
// errors.Is(err, ErrInsufficientStock) es verdadero.
type InsufficientStockError struct {
	ComponentID   string
	ComponentName string
	Available     decimal.Decimal
	Requested     decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	name := e.ComponentName
	if name == "" {
		name = e.ComponentID
	}
	return fmt.Sprintf("saldo insuficiente del componente '%s' (disponible %s, solicitado %s)",
		name, e.Available.String(), e.Requested.String())
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
