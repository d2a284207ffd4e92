package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/producao-espumas/internal/domain/entity"
)

// StockMovementRepository libro de movimientos (solo inserción).
type StockMovementRepository interface {
	Create(ctx context.Context, m *entity.StockMovement) error
	ListByComponent(ctx context.Context, componentID string, limit, offset int) ([]*entity.StockMovement, error)
	ListByBatch(ctx context.Context, batchID string) ([]*entity.StockMovement, error)
	// SignedTotals devuelve Σ entradas − Σ saídas agrupado por componente.
	SignedTotals(ctx context.Context) (map[string]decimal.Decimal, error)
}
