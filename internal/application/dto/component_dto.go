package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateComponentRequest entrada para registrar un componente químico.
type CreateComponentRequest struct {
	Name string `json:"name" form:"nome"`
}

// ComponentResponse salida de un componente con su saldo actual.
type ComponentResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Active    bool            `json:"active"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

// ComponentRef referencia corta de un componente (para poblar formularios).
type ComponentRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
