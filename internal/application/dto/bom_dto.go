package dto

import "time"

// CreateFoamTypeRequest body para crear un tipo de espuma.
type CreateFoamTypeRequest struct {
	Name string `json:"name" form:"nome"`
}

// RenameFoamTypeRequest body para renombrar un tipo de espuma.
type RenameFoamTypeRequest struct {
	Name string `json:"name" form:"novo_nome"`
}

// FoamTypeResponse salida de un tipo de espuma.
type FoamTypeResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// BOMRequest body para crear o actualizar una ficha técnica.
type BOMRequest struct {
	FoamTypeID   string   `json:"foam_type_id" form:"tipo_espuma_id"`
	Description  string   `json:"description" form:"descricao"`
	ComponentIDs []string `json:"component_ids" form:"componentes_ids"`
}

// BOMResponse salida de una ficha técnica con sus componentes en orden.
type BOMResponse struct {
	ID           string         `json:"id"`
	FoamTypeID   string         `json:"foam_type_id"`
	FoamTypeName string         `json:"foam_type_name"`
	Description  string         `json:"description"`
	Components   []ComponentRef `json:"components"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// FoamTypeComponentsResponse respuesta JSON para poblar el formulario de producción.
type FoamTypeComponentsResponse struct {
	FoamTypeID string         `json:"foam_type_id"`
	Components []ComponentRef `json:"components"`
}
