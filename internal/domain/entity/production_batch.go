package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un bloco.
const (
	BatchStatusActive = "ativa"
)

// ConformityOK es el texto de conformidad que cuenta como bloco conforme.
const ConformityOK = "Conforme"

// ProductionBatch representa un bloco producido.
// FoamType guarda el nombre del tipo de espuma al momento del registro.
type ProductionBatch struct {
	ID             string
	Code           string // número de bloco, único
	ProductionDate time.Time
	FoamType       string
	Color          string
	Height         decimal.Decimal // cm
	Conformity     string
	Notes          string
	Status         string
	UserID         string
	CreatedAt      time.Time
}

// IsConforming indica si el bloco fue marcado como conforme.
func (b *ProductionBatch) IsConforming() bool {
	return IsConformity(b.Conformity)
}

// IsConformity indica si el texto de conformidad equivale a "Conforme".
func IsConformity(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), ConformityOK)
}

// ComponentConsumption cantidad de un componente usada por un bloco.
type ComponentConsumption struct {
	ID            string
	BatchID       string
	ComponentID   string
	ComponentName string // sólo lectura (join)
	QuantityUsed  decimal.Decimal
}
