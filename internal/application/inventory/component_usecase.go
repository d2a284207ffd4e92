package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/producao-espumas/internal/application/dto"
	"github.com/jhoicas/producao-espumas/internal/domain"
	"github.com/jhoicas/producao-espumas/internal/domain/entity"
	"github.com/jhoicas/producao-espumas/internal/domain/repository"
)

// ComponentUseCase catálogo de componentes químicos. El saldo se maneja vía movimientos.
type ComponentUseCase struct {
	txRunner      TxRunner
	componentRepo repository.ComponentRepository
	balanceRepo   repository.StockBalanceRepository
}

// NewComponentUseCase construye el caso de uso.
func NewComponentUseCase(
	txRunner TxRunner,
	componentRepo repository.ComponentRepository,
	balanceRepo repository.StockBalanceRepository,
) *ComponentUseCase {
	return &ComponentUseCase{txRunner: txRunner, componentRepo: componentRepo, balanceRepo: balanceRepo}
}

// Create registra un componente activo y su saldo inicial cero en la misma transacción.
func (uc *ComponentUseCase) Create(ctx context.Context, in dto.CreateComponentRequest) (*dto.ComponentResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.componentRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	component := &entity.Component{
		ID:        uuid.New().String(),
		Name:      name,
		Active:    true,
		CreatedAt: now,
	}
	err = uc.txRunner.Run(ctx, func(
		componentRepo repository.ComponentRepository,
		_ repository.StockMovementRepository,
		balanceRepo repository.StockBalanceRepository,
	) error {
		if err := componentRepo.Create(ctx, component); err != nil {
			return err
		}
		return balanceRepo.Upsert(ctx, &entity.StockBalance{
			ComponentID: component.ID,
			Quantity:    decimal.Zero,
			UpdatedAt:   now,
		})
	})
	if err != nil {
		return nil, err
	}
	return toComponentResponse(component, decimal.Zero), nil
}

// GetByID obtiene un componente con su saldo. nil si no existe.
func (uc *ComponentUseCase) GetByID(ctx context.Context, id string) (*dto.ComponentResponse, error) {
	component, err := uc.componentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if component == nil {
		return nil, nil
	}
	balance, err := uc.balanceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toComponentResponse(component, balance.Quantity), nil
}

// List lista componentes con su saldo; onlyActive filtra los inactivos.
func (uc *ComponentUseCase) List(ctx context.Context, onlyActive bool) ([]dto.ComponentResponse, error) {
	rows, err := uc.balanceRepo.ListWithComponents(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ComponentResponse, 0, len(rows))
	for _, r := range rows {
		if onlyActive && !r.Component.Active {
			continue
		}
		c := r.Component
		out = append(out, *toComponentResponse(&c, r.Balance.Quantity))
	}
	return out, nil
}

// Toggle alterna el estado activo/inactivo. Los componentes nunca se eliminan.
func (uc *ComponentUseCase) Toggle(ctx context.Context, id string) (*dto.ComponentResponse, error) {
	component, err := uc.componentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if component == nil {
		return nil, domain.ErrNotFound
	}
	component.Active = !component.Active
	if err := uc.componentRepo.SetActive(ctx, id, component.Active); err != nil {
		return nil, err
	}
	balance, err := uc.balanceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toComponentResponse(component, balance.Quantity), nil
}

func toComponentResponse(c *entity.Component, balance decimal.Decimal) *dto.ComponentResponse {
	return &dto.ComponentResponse{
		ID:        c.ID,
		Name:      c.Name,
		Active:    c.Active,
		Balance:   balance,
		CreatedAt: c.CreatedAt,
	}
}
