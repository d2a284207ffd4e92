package repository

import (
	"context"

	"github.com/jhoicas/producao-espumas/internal/domain/entity"
)

// BillOfMaterialsRepository persistencia de fichas técnicas y sus componentes ordenados.
type BillOfMaterialsRepository interface {
	// Create persiste la ficha y sus componentes. domain.ErrDuplicate si el tipo ya tiene ficha.
	Create(ctx context.Context, b *entity.BillOfMaterials) error
	// Update reemplaza descripción, tipo de espuma y el conjunto de componentes.
	Update(ctx context.Context, b *entity.BillOfMaterials) error
	GetByID(ctx context.Context, id string) (*entity.BillOfMaterials, error)
	GetByFoamType(ctx context.Context, foamTypeID string) (*entity.BillOfMaterials, error)
	List(ctx context.Context) ([]*entity.BillOfMaterials, error)
}
