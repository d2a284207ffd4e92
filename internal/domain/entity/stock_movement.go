package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeEntrada = "entrada" // aumenta el saldo
	MovementTypeSaida   = "saida"   // disminuye el saldo
)

// StockMovement movimiento inmutable de stock de un componente.
// Quantity siempre es positiva; el signo lo determina Type.
type StockMovement struct {
	ID          string
	ComponentID string
	Type        string
	Quantity    decimal.Decimal
	Date        time.Time
	BatchID     string // vacío para ajustes manuales
	CreatedBy   string
	CreatedAt   time.Time
}

// StockBalance saldo materializado de un componente (Σ movimientos con signo).
type StockBalance struct {
	ComponentID string
	Quantity    decimal.Decimal
	UpdatedAt   time.Time
}
