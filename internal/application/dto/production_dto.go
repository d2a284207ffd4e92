package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterBatchRequest body para POST /api/batches.
// Quantities: componentID → cantidad usada (kg). En formularios llegan como campos componente_<id>.
type RegisterBatchRequest struct {
	Code       string                     `json:"code" form:"producao_id"`
	Date       string                     `json:"production_date,omitempty" form:"data_producao"` // YYYY-MM-DD
	FoamTypeID string                     `json:"foam_type_id" form:"tipo_espuma"`
	Color      string                     `json:"color" form:"cor"`
	Height     decimal.Decimal            `json:"height" form:"altura"`
	Conformity string                     `json:"conformity" form:"conformidade"`
	Notes      string                     `json:"notes" form:"observacoes"`
	Quantities map[string]decimal.Decimal `json:"quantities" form:"-"`
}

// ConsumptionResponse consumo de un componente en un bloco.
type ConsumptionResponse struct {
	ComponentID   string          `json:"component_id"`
	ComponentName string          `json:"component_name"`
	QuantityUsed  decimal.Decimal `json:"quantity_used"`
}

// BatchResponse salida de un bloco.
type BatchResponse struct {
	ID             string                `json:"id"`
	Code           string                `json:"code"`
	ProductionDate string                `json:"production_date"`
	FoamType       string                `json:"foam_type"`
	FoamTypeID     string                `json:"foam_type_id,omitempty"`
	Color          string                `json:"color"`
	Height         decimal.Decimal       `json:"height"`
	Conformity     string                `json:"conformity"`
	Conforming     bool                  `json:"conforming"`
	Notes          string                `json:"notes"`
	Status         string                `json:"status"`
	UserID         string                `json:"user_id,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	Consumption    []ConsumptionResponse `json:"consumption,omitempty"`
	Movements      []MovementResponse    `json:"movements,omitempty"`
}

// BatchListResponse lista paginada de blocos.
type BatchListResponse struct {
	Items []BatchResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
