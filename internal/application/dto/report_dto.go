package dto

import "github.com/shopspring/decimal"

// Agrupaciones de tiempo para la tendencia de consumo.
const (
	BucketDay   = "dia"
	BucketWeek  = "semana"
	BucketMonth = "mes"
)

// DashboardRequest parámetros para GET /api/reports/dashboard y exportaciones.
type DashboardRequest struct {
	FoamType string `query:"foam_type"`  // vacío o "Todos" = todos
	From     string `query:"start_date"` // YYYY-MM-DD; por defecto la primera producción
	To       string `query:"end_date"`   // YYYY-MM-DD inclusive; por defecto la última producción
	Bucket   string `query:"bucket"`     // dia | semana | mes (default dia)
}

// BatchRow fila de la tabla principal (un registro por bloco).
type BatchRow struct {
	Code           string          `json:"code"`
	ProductionDate string          `json:"production_date"` // YYYY-MM-DD
	FoamType       string          `json:"foam_type"`
	Color          string          `json:"color"`
	Height         decimal.Decimal `json:"height"`
	Conformity     string          `json:"conformity"`
	Notes          string          `json:"notes"`
}

// FoamTypeCount blocos por tipo de espuma.
type FoamTypeCount struct {
	FoamType string `json:"foam_type"`
	Batches  int    `json:"batches"`
}

// ComponentConsumptionTotal consumo total de un componente en el período.
type ComponentConsumptionTotal struct {
	Component string          `json:"component"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// TrendPoint consumo total en un período (bucket).
type TrendPoint struct {
	Period   string          `json:"period"` // dd/mm/yyyy, inicio del bucket
	Quantity decimal.Decimal `json:"quantity"`
}

// ComponentTrendPoint consumo de un componente en un período.
type ComponentTrendPoint struct {
	Period    string          `json:"period"`
	Component string          `json:"component"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// ConsumptionDetail consumo por bloco (tabla de detalle).
type ConsumptionDetail struct {
	Code           string          `json:"code"`
	ProductionDate string          `json:"production_date"` // dd/mm/yyyy
	FoamType       string          `json:"foam_type"`
	Component      string          `json:"component"`
	Quantity       decimal.Decimal `json:"quantity"`
}

// DashboardResponse resultado del dashboard de producción.
type DashboardResponse struct {
	FoamTypes         []string                    `json:"foam_types"` // opciones del filtro
	MinDate           string                      `json:"min_date,omitempty"`
	MaxDate           string                      `json:"max_date,omitempty"`
	From              string                      `json:"from,omitempty"`
	To                string                      `json:"to,omitempty"`
	FoamType          string                      `json:"foam_type"`
	Bucket            string                      `json:"bucket"`
	TotalBatches      int                         `json:"total_batches"`
	ConformingBatches int                         `json:"conforming_batches"`
	ByFoamType        []FoamTypeCount             `json:"by_foam_type,omitempty"`
	ByComponent       []ComponentConsumptionTotal `json:"by_component"`
	Trend             []TrendPoint                `json:"trend"`
	TrendByComponent  []ComponentTrendPoint       `json:"trend_by_component"`
	Consumption       []ConsumptionDetail         `json:"consumption"`
	Batches           []BatchRow                  `json:"batches"`
}
