package production

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/producao-espumas/internal/application/dto"
	"github.com/jhoicas/producao-espumas/internal/domain"
	"github.com/jhoicas/producao-espumas/internal/domain/entity"
	"github.com/jhoicas/producao-espumas/internal/domain/repository"
	"github.com/jhoicas/producao-espumas/pkg/metrics"
)

// RegisterBatchUseCase registra blocos y descuenta el consumo de componentes en una sola transacción.
type RegisterBatchUseCase struct {
	txRunner    ProductionTxRunner
	inventoryUC InventoryUseCase
	bomResolver BOMResolver
	batchRepo   repository.ProductionBatchRepository
	log         zerolog.Logger
}

// NewRegisterBatchUseCase construye el caso de uso.
func NewRegisterBatchUseCase(
	txRunner ProductionTxRunner,
	inventoryUC InventoryUseCase,
	bomResolver BOMResolver,
	batchRepo repository.ProductionBatchRepository,
	log zerolog.Logger,
) *RegisterBatchUseCase {
	return &RegisterBatchUseCase{
		txRunner:    txRunner,
		inventoryUC: inventoryUC,
		bomResolver: bomResolver,
		batchRepo:   batchRepo,
		log:         log,
	}
}

// RegisterBatch valida el bloco, resuelve la ficha técnica del tipo de espuma y, en una transacción,
// inserta el bloco, su consumo y una saída por componente. Cualquier fallo deja la base sin cambios.
func (uc *RegisterBatchUseCase) RegisterBatch(ctx context.Context, userID string, in dto.RegisterBatchRequest) (*dto.BatchResponse, error) {
	code := strings.TrimSpace(in.Code)
	color := strings.TrimSpace(in.Color)
	conformity := strings.TrimSpace(in.Conformity)
	if code == "" || strings.TrimSpace(in.FoamTypeID) == "" || color == "" || conformity == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Height.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	for _, q := range in.Quantities {
		if q.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}
	date, err := dto.ParseDate(in.Date, time.Now())
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.batchRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		metrics.BatchesRejected.WithLabelValues("duplicate_code").Inc()
		return nil, domain.ErrDuplicateBatchCode
	}

	foam, bom, err := uc.bomResolver.Resolve(ctx, in.FoamTypeID)
	if err != nil {
		if errors.Is(err, domain.ErrBOMNotConfigured) {
			metrics.BatchesRejected.WithLabelValues("bom_not_configured").Inc()
		}
		return nil, err
	}
	if !foam.Active {
		return nil, domain.ErrInvalidInput
	}

	// Sólo los componentes de la ficha con cantidad > 0, en el orden de la ficha.
	type line struct {
		component *entity.Component
		quantity  decimal.Decimal
	}
	lines := make([]line, 0, len(bom.Components))
	for _, c := range bom.Components {
		q, ok := in.Quantities[c.ComponentID]
		if !ok || q.IsZero() {
			continue
		}
		lines = append(lines, line{
			component: &entity.Component{ID: c.ComponentID, Name: c.ComponentName, Active: true},
			quantity:  q,
		})
	}
	// Los saldos se bloquean en orden de ID (orden fijo de bloqueo entre transacciones).
	lockOrder := append([]line(nil), lines...)
	sort.Slice(lockOrder, func(i, j int) bool { return lockOrder[i].component.ID < lockOrder[j].component.ID })

	now := time.Now()
	batch := &entity.ProductionBatch{
		ID:             uuid.New().String(),
		Code:           code,
		ProductionDate: date,
		FoamType:       foam.Name,
		Color:          color,
		Height:         in.Height,
		Conformity:     conformity,
		Notes:          strings.TrimSpace(in.Notes),
		Status:         entity.BatchStatusActive,
		UserID:         userID,
		CreatedAt:      now,
	}
	consumption := make([]*entity.ComponentConsumption, 0, len(lines))

	err = uc.txRunner.RunProduction(ctx, func(
		movRepo repository.StockMovementRepository,
		balanceRepo repository.StockBalanceRepository,
		batchRepo repository.ProductionBatchRepository,
	) error {
		if err := batchRepo.Create(ctx, batch); err != nil {
			return err
		}
		available := make(map[string]decimal.Decimal, len(lockOrder))
		for _, l := range lockOrder {
			b, err := balanceRepo.GetForUpdate(ctx, l.component.ID)
			if err != nil {
				return err
			}
			available[l.component.ID] = b.Quantity
		}
		// El faltante informado es el primero según la ficha. Se retorna y se hace rollback de todo el bloco.
		for _, l := range lines {
			if l.quantity.GreaterThan(available[l.component.ID]) {
				return &domain.InsufficientStockError{
					ComponentID:   l.component.ID,
					ComponentName: l.component.Name,
					Available:     available[l.component.ID],
					Requested:     l.quantity,
				}
			}
		}
		for _, l := range lockOrder {
			if err := uc.inventoryUC.RegisterSaidaInTx(ctx, movRepo, balanceRepo, l.component, l.quantity, date, batch.ID, userID); err != nil {
				return err
			}
			cc := &entity.ComponentConsumption{
				ID:            uuid.New().String(),
				BatchID:       batch.ID,
				ComponentID:   l.component.ID,
				ComponentName: l.component.Name,
				QuantityUsed:  l.quantity,
			}
			if err := batchRepo.AddConsumption(ctx, cc); err != nil {
				return err
			}
			consumption = append(consumption, cc)
		}
		return nil
	})
	if err != nil {
		metrics.BatchesRejected.WithLabelValues(rejectReason(err)).Inc()
		uc.log.Warn().Err(err).Str("code", code).Str("foam_type", foam.Name).Msg("bloco rechazado")
		return nil, err
	}

	metrics.BatchesRegistered.Inc()
	for _, cc := range consumption {
		metrics.StockMovements.WithLabelValues(entity.MovementTypeSaida, "producao").Inc()
		f, _ := cc.QuantityUsed.Float64()
		metrics.ComponentConsumedKg.WithLabelValues(cc.ComponentName).Add(f)
	}
	uc.log.Info().
		Str("code", code).
		Str("foam_type", foam.Name).
		Int("components", len(consumption)).
		Msg("bloco registrado")

	resp := toBatchResponse(batch, consumption)
	resp.FoamTypeID = foam.ID
	return resp, nil
}

// rejectReason etiqueta de métrica para un bloco rechazado dentro de la transacción.
func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrDuplicateBatchCode):
		return "duplicate_code"
	default:
		return "error"
	}
}
