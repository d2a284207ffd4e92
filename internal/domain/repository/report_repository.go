package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ProductionRow fila cruda bloco × consumo (LEFT JOIN). Component y QuantityUsed
// vienen vacíos cuando el bloco no tiene consumo registrado.
type ProductionRow struct {
	BatchID        string
	Code           string
	ProductionDate time.Time
	FoamType       string
	Color          string
	Height         decimal.Decimal
	Conformity     string
	Notes          string
	Component      *string
	QuantityUsed   *decimal.Decimal
}

// ReportRepository consultas de solo lectura para el dashboard de producción.
type ReportRepository interface {
	// LoadProductionRows devuelve todos los blocos con su consumo, fecha de producción descendente.
	LoadProductionRows(ctx context.Context) ([]ProductionRow, error)
}
