package entity

import "time"

// FoamType tipo de espuma (categoría de producto).
type FoamType struct {
	ID        string
	Name      string
	Active    bool
	CreatedAt time.Time
}

// BillOfMaterials ficha técnica: uno a uno con un tipo de espuma.
type BillOfMaterials struct {
	ID           string
	FoamTypeID   string
	FoamTypeName string // sólo lectura (join)
	Description  string
	Components   []BOMComponent
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BOMComponent componente requerido por una ficha técnica, en orden.
type BOMComponent struct {
	ComponentID   string
	ComponentName string
	Position      int
}

// ComponentIDs devuelve los IDs de componentes en el orden de la ficha.
func (b *BillOfMaterials) ComponentIDs() []string {
	ids := make([]string, 0, len(b.Components))
	for _, c := range b.Components {
		ids = append(ids, c.ComponentID)
	}
	return ids
}
