package production

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/producao-espumas/internal/application/dto"
	"github.com/jhoicas/producao-espumas/internal/domain/entity"
	"github.com/jhoicas/producao-espumas/internal/domain/repository"
)

// ProductionTxRunner ejecuta una función dentro de una transacción que incluye repos de stock y de blocos.
type ProductionTxRunner interface {
	RunProduction(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		balanceRepo repository.StockBalanceRepository,
		batchRepo repository.ProductionBatchRepository,
	) error) error
}

// InventoryUseCase integración de producción con el libro de stock.
// RegisterSaidaInTx ejecuta una saída usando los repositorios del caller (misma transacción).
type InventoryUseCase interface {
	RegisterSaidaInTx(
		ctx context.Context,
		movRepo repository.StockMovementRepository,
		balanceRepo repository.StockBalanceRepository,
		component *entity.Component,
		quantity decimal.Decimal,
		date time.Time,
		batchID, userID string,
	) error
	BatchMovements(ctx context.Context, batchID string) ([]dto.MovementResponse, error)
}

// BOMResolver resuelve el tipo de espuma y su ficha técnica.
type BOMResolver interface {
	Resolve(ctx context.Context, foamTypeID string) (*entity.FoamType, *entity.BillOfMaterials, error)
	// FoamTypeByName nil si no existe (el bloco guarda el nombre, no el ID).
	FoamTypeByName(ctx context.Context, name string) (*entity.FoamType, error)
}
