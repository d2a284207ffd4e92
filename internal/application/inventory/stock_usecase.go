package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/producao-espumas/internal/application/dto"
	"github.com/jhoicas/producao-espumas/internal/domain"
	"github.com/jhoicas/producao-espumas/internal/domain/entity"
	"github.com/jhoicas/producao-espumas/internal/domain/repository"
	"github.com/jhoicas/producao-espumas/internal/domain/stock"
	"github.com/jhoicas/producao-espumas/pkg/metrics"
)

// StockUseCase libro de movimientos de stock: ajustes manuales, consultas y recálculo de saldos.
// Cada movimiento se inserta en la misma transacción que actualiza el saldo, con la fila
// del saldo bloqueada (SELECT FOR UPDATE).
type StockUseCase struct {
	txRunner      TxRunner
	componentRepo repository.ComponentRepository
	movRepo       repository.StockMovementRepository
	balanceRepo   repository.StockBalanceRepository
	log           zerolog.Logger
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	txRunner TxRunner,
	componentRepo repository.ComponentRepository,
	movRepo repository.StockMovementRepository,
	balanceRepo repository.StockBalanceRepository,
	log zerolog.Logger,
) *StockUseCase {
	return &StockUseCase{
		txRunner:      txRunner,
		componentRepo: componentRepo,
		movRepo:       movRepo,
		balanceRepo:   balanceRepo,
		log:           log,
	}
}

// AdjustStock registra un ajuste manual (entrada o saida) y devuelve el saldo resultante.
// Una saida mayor que el saldo se rechaza sin cambios (InsufficientStockError).
func (uc *StockUseCase) AdjustStock(ctx context.Context, componentID, userID string, in dto.AdjustStockRequest) (*dto.BalanceResponse, error) {
	if componentID == "" || !stock.ValidType(in.Type) || !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	date, err := dto.ParseDate(in.Date, time.Now())
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	component, err := uc.componentRepo.GetByID(ctx, componentID)
	if err != nil {
		return nil, err
	}
	if component == nil {
		return nil, domain.ErrNotFound
	}

	var result *entity.StockBalance
	err = uc.txRunner.Run(ctx, func(
		_ repository.ComponentRepository,
		movRepo repository.StockMovementRepository,
		balanceRepo repository.StockBalanceRepository,
	) error {
		balance, err := uc.applyInTx(ctx, movRepo, balanceRepo, component, in.Type, in.Quantity, date, "", userID)
		if err != nil {
			return err
		}
		result = balance
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.StockMovements.WithLabelValues(in.Type, "ajuste").Inc()
	uc.log.Info().
		Str("component", component.Name).
		Str("type", in.Type).
		Str("quantity", in.Quantity.String()).
		Str("balance", result.Quantity.String()).
		Msg("ajuste de stock registrado")

	return &dto.BalanceResponse{
		ComponentID:   component.ID,
		ComponentName: component.Name,
		Active:        component.Active,
		Quantity:      result.Quantity,
		UpdatedAt:     result.UpdatedAt,
	}, nil
}

// RegisterSaidaInTx descuenta quantity del saldo usando los repositorios del caller (misma transacción).
// Si retorna error (ej: InsufficientStockError), el caller debe hacer rollback.
func (uc *StockUseCase) RegisterSaidaInTx(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	balanceRepo repository.StockBalanceRepository,
	component *entity.Component,
	quantity decimal.Decimal,
	date time.Time,
	batchID, userID string,
) error {
	_, err := uc.applyInTx(ctx, movRepo, balanceRepo, component, entity.MovementTypeSaida, quantity, date, batchID, userID)
	return err
}

// applyInTx bloquea el saldo, aplica el movimiento, persiste el nuevo saldo y el movimiento.
func (uc *StockUseCase) applyInTx(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	balanceRepo repository.StockBalanceRepository,
	component *entity.Component,
	movementType string,
	quantity decimal.Decimal,
	date time.Time,
	batchID, userID string,
) (*entity.StockBalance, error) {
	balance, err := balanceRepo.GetForUpdate(ctx, component.ID)
	if err != nil {
		return nil, err
	}
	newQty, err := stock.Apply(balance.Quantity, movementType, quantity)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			return nil, &domain.InsufficientStockError{
				ComponentID:   component.ID,
				ComponentName: component.Name,
				Available:     balance.Quantity,
				Requested:     quantity,
			}
		}
		return nil, err
	}
	now := time.Now()
	balance.Quantity = newQty
	balance.UpdatedAt = now
	if err := balanceRepo.Upsert(ctx, balance); err != nil {
		return nil, err
	}
	mov := &entity.StockMovement{
		ComponentID: component.ID,
		Type:        movementType,
		Quantity:    quantity,
		Date:        date,
		BatchID:     batchID,
		CreatedBy:   userID,
		CreatedAt:   now,
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	return balance, nil
}

// ListMovements lista los movimientos de un componente, más recientes primero.
func (uc *StockUseCase) ListMovements(ctx context.Context, componentID string, limit, offset int) ([]dto.MovementResponse, error) {
	component, err := uc.componentRepo.GetByID(ctx, componentID)
	if err != nil {
		return nil, err
	}
	if component == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.movRepo.ListByComponent(ctx, componentID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementResponse(m))
	}
	return out, nil
}

// BatchMovements saídas generadas por un bloco.
func (uc *StockUseCase) BatchMovements(ctx context.Context, batchID string) ([]dto.MovementResponse, error) {
	list, err := uc.movRepo.ListByBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementResponse(m))
	}
	return out, nil
}

// ListBalances devuelve el saldo de todos los componentes.
func (uc *StockUseCase) ListBalances(ctx context.Context) ([]dto.BalanceResponse, error) {
	rows, err := uc.balanceRepo.ListWithComponents(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BalanceResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.BalanceResponse{
			ComponentID:   r.Component.ID,
			ComponentName: r.Component.Name,
			Active:        r.Component.Active,
			Quantity:      r.Balance.Quantity,
			UpdatedAt:     r.Balance.UpdatedAt,
		})
	}
	return out, nil
}

// RecalculateBalances recalcula todos los saldos desde el libro de movimientos
// (Σ entradas − Σ saídas; cero para componentes sin movimientos) y corrige las diferencias.
// Es idempotente: una segunda ejecución no encuentra diferencias.
func (uc *StockUseCase) RecalculateBalances(ctx context.Context) (*dto.RecalculateResponse, error) {
	out := &dto.RecalculateResponse{Corrected: []dto.BalanceDrift{}, Inconsistent: []dto.BalanceDrift{}}
	err := uc.txRunner.Run(ctx, func(
		componentRepo repository.ComponentRepository,
		movRepo repository.StockMovementRepository,
		balanceRepo repository.StockBalanceRepository,
	) error {
		locked, err := balanceRepo.LockAll(ctx)
		if err != nil {
			return err
		}
		stored := make(map[string]decimal.Decimal, len(locked))
		for _, b := range locked {
			stored[b.ComponentID] = b.Quantity
		}
		totals, err := movRepo.SignedTotals(ctx)
		if err != nil {
			return err
		}
		components, err := componentRepo.List(ctx, false)
		if err != nil {
			return err
		}
		now := time.Now()
		out.Checked = len(components)
		out.Corrected = out.Corrected[:0]
		out.Inconsistent = out.Inconsistent[:0]
		for _, c := range components {
			computed := totals[c.ID]
			prev, ok := stored[c.ID]
			if ok && prev.Equal(computed) {
				continue
			}
			// Un libro que suma negativo no es un saldo válido: se informa y el saldo queda como está.
			if computed.IsNegative() {
				out.Inconsistent = append(out.Inconsistent, dto.BalanceDrift{
					ComponentID: c.ID,
					Stored:      prev,
					Computed:    computed,
				})
				continue
			}
			if err := balanceRepo.Upsert(ctx, &entity.StockBalance{
				ComponentID: c.ID,
				Quantity:    computed,
				UpdatedAt:   now,
			}); err != nil {
				return err
			}
			out.Corrected = append(out.Corrected, dto.BalanceDrift{
				ComponentID: c.ID,
				Stored:      prev,
				Computed:    computed,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, d := range out.Inconsistent {
		uc.log.Error().
			Str("component_id", d.ComponentID).
			Str("computed", d.Computed.String()).
			Msg("movimientos suman saldo negativo; saldo no corregido")
	}
	if n := len(out.Corrected); n > 0 {
		metrics.BalanceDriftCorrections.Add(float64(n))
		uc.log.Warn().Int("corrected", n).Int("checked", out.Checked).Msg("saldos corregidos desde los movimientos")
	} else {
		uc.log.Debug().Int("checked", out.Checked).Msg("saldos consistentes con los movimientos")
	}
	return out, nil
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:          m.ID,
		ComponentID: m.ComponentID,
		Type:        m.Type,
		Quantity:    m.Quantity,
		Date:        m.Date.Format(dto.DateLayout),
		BatchID:     m.BatchID,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
	}
}
