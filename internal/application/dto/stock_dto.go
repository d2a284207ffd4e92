package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest body para POST /api/components/:id/adjustments.
type AdjustStockRequest struct {
	Type     string          `json:"type" form:"tipo"` // entrada | saida
	Quantity decimal.Decimal `json:"quantity" form:"quantidade"`
	Date     string          `json:"date,omitempty" form:"data"` // YYYY-MM-DD; por defecto hoy
}

// MovementResponse salida de un movimiento del libro.
type MovementResponse struct {
	ID          string          `json:"id"`
	ComponentID string          `json:"component_id"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	Date        string          `json:"date"`
	BatchID     string          `json:"batch_id,omitempty"`
	CreatedBy   string          `json:"created_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// BalanceResponse saldo de un componente.
type BalanceResponse struct {
	ComponentID   string          `json:"component_id"`
	ComponentName string          `json:"component_name"`
	Active        bool            `json:"active"`
	Quantity      decimal.Decimal `json:"quantity"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// BalanceDrift diferencia corregida por el recálculo.
type BalanceDrift struct {
	ComponentID string          `json:"component_id"`
	Stored      decimal.Decimal `json:"stored"`
	Computed    decimal.Decimal `json:"computed"`
}

// RecalculateResponse resultado de POST /api/stock/recalculate.
type RecalculateResponse struct {
	Checked      int            `json:"checked"`
	Corrected    []BalanceDrift `json:"corrected"`
	Inconsistent []BalanceDrift `json:"inconsistent"` // libro con suma negativa; saldo sin tocar
}
