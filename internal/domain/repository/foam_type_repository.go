package repository

import (
	"context"

	"github.com/jhoicas/producao-espumas/internal/domain/entity"
)

// FoamTypeRepository persistencia de tipos de espuma.
type FoamTypeRepository interface {
	Create(ctx context.Context, f *entity.FoamType) error
	GetByID(ctx context.Context, id string) (*entity.FoamType, error)
	GetByName(ctx context.Context, name string) (*entity.FoamType, error)
	// List ordenado por nombre. withBOM filtra los tipos que tienen ficha técnica.
	List(ctx context.Context, withBOM bool) ([]*entity.FoamType, error)
	Update(ctx context.Context, f *entity.FoamType) error
}
