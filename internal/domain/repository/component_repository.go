package repository

import (
	"context"

	"github.com/jhoicas/producao-espumas/internal/domain/entity"
)

// ComponentRepository define el puerto de persistencia para componentes.
type ComponentRepository interface {
	Create(ctx context.Context, c *entity.Component) error
	GetByID(ctx context.Context, id string) (*entity.Component, error)
	GetByName(ctx context.Context, name string) (*entity.Component, error)
	// GetByIDs devuelve los componentes encontrados (los IDs inexistentes se omiten).
	GetByIDs(ctx context.Context, ids []string) ([]*entity.Component, error)
	List(ctx context.Context, onlyActive bool) ([]*entity.Component, error)
	SetActive(ctx context.Context, id string, active bool) error
}
