package repository

import (
	"context"

	"github.com/jhoicas/producao-espumas/internal/domain/entity"
)

// ProductionBatchRepository persistencia de blocos y su consumo de componentes.
type ProductionBatchRepository interface {
	// Create persiste el bloco. Devuelve domain.ErrDuplicateBatchCode si el código ya existe.
	Create(ctx context.Context, b *entity.ProductionBatch) error
	AddConsumption(ctx context.Context, c *entity.ComponentConsumption) error
	GetByID(ctx context.Context, id string) (*entity.ProductionBatch, error)
	GetByCode(ctx context.Context, code string) (*entity.ProductionBatch, error)
	List(ctx context.Context, limit, offset int) ([]*entity.ProductionBatch, error)
	ListConsumption(ctx context.Context, batchID string) ([]*entity.ComponentConsumption, error)
}
