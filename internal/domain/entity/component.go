package entity

import "time"

// Component representa un insumo químico (componente) consumido en la producción.
type Component struct {
	ID        string
	Name      string // único
	Active    bool
	CreatedAt time.Time
}
