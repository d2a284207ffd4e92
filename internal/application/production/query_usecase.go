package production

import (
	"context"

	"github.com/jhoicas/producao-espumas/internal/application/dto"
	"github.com/jhoicas/producao-espumas/internal/domain/entity"
)

// ListBatches lista blocos, más recientes primero.
func (uc *RegisterBatchUseCase) ListBatches(ctx context.Context, page dto.PageRequest) (*dto.BatchListResponse, error) {
	page.DefaultPage()
	list, err := uc.batchRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BatchResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBatchResponse(b, nil))
	}
	return &dto.BatchListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// GetBatch obtiene un bloco con su consumo y sus saídas. El tipo de espuma se resuelve por nombre;
// FoamTypeID queda vacío si el tipo fue renombrado después del registro. nil si no existe.
func (uc *RegisterBatchUseCase) GetBatch(ctx context.Context, id string) (*dto.BatchResponse, error) {
	b, err := uc.batchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, nil
	}
	consumption, err := uc.batchRepo.ListConsumption(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toBatchResponse(b, consumption)
	foam, err := uc.bomResolver.FoamTypeByName(ctx, b.FoamType)
	if err != nil {
		return nil, err
	}
	if foam != nil {
		resp.FoamTypeID = foam.ID
	}
	if resp.Movements, err = uc.inventoryUC.BatchMovements(ctx, b.ID); err != nil {
		return nil, err
	}
	return resp, nil
}

func toBatchResponse(b *entity.ProductionBatch, consumption []*entity.ComponentConsumption) *dto.BatchResponse {
	resp := &dto.BatchResponse{
		ID:             b.ID,
		Code:           b.Code,
		ProductionDate: b.ProductionDate.Format(dto.DateLayout),
		FoamType:       b.FoamType,
		Color:          b.Color,
		Height:         b.Height,
		Conformity:     b.Conformity,
		Conforming:     b.IsConforming(),
		Notes:          b.Notes,
		Status:         b.Status,
		UserID:         b.UserID,
		CreatedAt:      b.CreatedAt,
	}
	for _, c := range consumption {
		resp.Consumption = append(resp.Consumption, dto.ConsumptionResponse{
			ComponentID:   c.ComponentID,
			ComponentName: c.ComponentName,
			QuantityUsed:  c.QuantityUsed,
		})
	}
	return resp
}
