package bom

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/producao-espumas/internal/application/dto"
	"github.com/jhoicas/producao-espumas/internal/domain"
	"github.com/jhoicas/producao-espumas/internal/domain/entity"
	"github.com/jhoicas/producao-espumas/internal/domain/repository"
)

// UseCase tipos de espuma y fichas técnicas (BOM). Resuelve qué componentes requiere un bloco.
type UseCase struct {
	foamRepo      repository.FoamTypeRepository
	bomRepo       repository.BillOfMaterialsRepository
	componentRepo repository.ComponentRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	foamRepo repository.FoamTypeRepository,
	bomRepo repository.BillOfMaterialsRepository,
	componentRepo repository.ComponentRepository,
) *UseCase {
	return &UseCase{foamRepo: foamRepo, bomRepo: bomRepo, componentRepo: componentRepo}
}

// ── Tipos de espuma ──────────────────────────────────────────────────────────

// CreateFoamType crea un tipo de espuma activo. Nombre requerido y único.
func (uc *UseCase) CreateFoamType(ctx context.Context, in dto.CreateFoamTypeRequest) (*dto.FoamTypeResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.foamRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	f := &entity.FoamType{
		ID:        uuid.New().String(),
		Name:      name,
		Active:    true,
		CreatedAt: time.Now(),
	}
	if err := uc.foamRepo.Create(ctx, f); err != nil {
		return nil, err
	}
	return toFoamTypeResponse(f), nil
}

// RenameFoamType cambia el nombre; debe seguir siendo único (excluyendo el propio tipo).
func (uc *UseCase) RenameFoamType(ctx context.Context, id string, in dto.RenameFoamTypeRequest) (*dto.FoamTypeResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	f, err := uc.foamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNotFound
	}
	other, err := uc.foamRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if other != nil && other.ID != f.ID {
		return nil, domain.ErrDuplicate
	}
	f.Name = name
	if err := uc.foamRepo.Update(ctx, f); err != nil {
		return nil, err
	}
	return toFoamTypeResponse(f), nil
}

// ToggleFoamType alterna activo/inactivo. Los tipos inactivos no aceptan blocos nuevos.
func (uc *UseCase) ToggleFoamType(ctx context.Context, id string) (*dto.FoamTypeResponse, error) {
	f, err := uc.foamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNotFound
	}
	f.Active = !f.Active
	if err := uc.foamRepo.Update(ctx, f); err != nil {
		return nil, err
	}
	return toFoamTypeResponse(f), nil
}

// ListFoamTypes lista por nombre. onlyWithBOM deja sólo los tipos con ficha técnica.
func (uc *UseCase) ListFoamTypes(ctx context.Context, onlyWithBOM bool) ([]dto.FoamTypeResponse, error) {
	list, err := uc.foamRepo.List(ctx, onlyWithBOM)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FoamTypeResponse, 0, len(list))
	for _, f := range list {
		out = append(out, *toFoamTypeResponse(f))
	}
	return out, nil
}

// ── Fichas técnicas ──────────────────────────────────────────────────────────

// CreateBOM crea la ficha técnica de un tipo de espuma (una por tipo).
func (uc *UseCase) CreateBOM(ctx context.Context, in dto.BOMRequest) (*dto.BOMResponse, error) {
	foam, components, err := uc.validateBOM(ctx, in)
	if err != nil {
		return nil, err
	}
	existing, err := uc.bomRepo.GetByFoamType(ctx, foam.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	b := &entity.BillOfMaterials{
		ID:           uuid.New().String(),
		FoamTypeID:   foam.ID,
		FoamTypeName: foam.Name,
		Description:  strings.TrimSpace(in.Description),
		Components:   components,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.bomRepo.Create(ctx, b); err != nil {
		return nil, err
	}
	return toBOMResponse(b), nil
}

// UpdateBOM reemplaza tipo de espuma, descripción y componentes de una ficha.
func (uc *UseCase) UpdateBOM(ctx context.Context, id string, in dto.BOMRequest) (*dto.BOMResponse, error) {
	b, err := uc.bomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	foam, components, err := uc.validateBOM(ctx, in)
	if err != nil {
		return nil, err
	}
	if foam.ID != b.FoamTypeID {
		other, err := uc.bomRepo.GetByFoamType(ctx, foam.ID)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, domain.ErrDuplicate
		}
	}
	b.FoamTypeID = foam.ID
	b.FoamTypeName = foam.Name
	b.Description = strings.TrimSpace(in.Description)
	b.Components = components
	b.UpdatedAt = time.Now()
	if err := uc.bomRepo.Update(ctx, b); err != nil {
		return nil, err
	}
	return toBOMResponse(b), nil
}

// GetBOM obtiene una ficha por ID. nil si no existe.
func (uc *UseCase) GetBOM(ctx context.Context, id string) (*dto.BOMResponse, error) {
	b, err := uc.bomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, nil
	}
	return toBOMResponse(b), nil
}

// ListBOMs lista todas las fichas técnicas.
func (uc *UseCase) ListBOMs(ctx context.Context) ([]dto.BOMResponse, error) {
	list, err := uc.bomRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BOMResponse, 0, len(list))
	for _, b := range list {
		out = append(out, *toBOMResponse(b))
	}
	return out, nil
}

// ── Resolución ───────────────────────────────────────────────────────────────

// Resolve devuelve el tipo de espuma y su ficha técnica.
// domain.ErrNotFound si el tipo no existe, domain.ErrBOMNotConfigured si no tiene ficha.
func (uc *UseCase) Resolve(ctx context.Context, foamTypeID string) (*entity.FoamType, *entity.BillOfMaterials, error) {
	foam, err := uc.foamRepo.GetByID(ctx, foamTypeID)
	if err != nil {
		return nil, nil, err
	}
	if foam == nil {
		return nil, nil, domain.ErrNotFound
	}
	b, err := uc.bomRepo.GetByFoamType(ctx, foam.ID)
	if err != nil {
		return nil, nil, err
	}
	if b == nil || len(b.Components) == 0 {
		return foam, nil, domain.ErrBOMNotConfigured
	}
	return foam, b, nil
}

// FoamTypeByName busca un tipo de espuma por nombre exacto. nil si no existe.
func (uc *UseCase) FoamTypeByName(ctx context.Context, name string) (*entity.FoamType, error) {
	return uc.foamRepo.GetByName(ctx, name)
}

// ResolveComponents lista ordenada de componentes requeridos por el tipo de espuma.
func (uc *UseCase) ResolveComponents(ctx context.Context, foamTypeID string) (*dto.FoamTypeComponentsResponse, error) {
	_, b, err := uc.Resolve(ctx, foamTypeID)
	if err != nil {
		return nil, err
	}
	return &dto.FoamTypeComponentsResponse{
		FoamTypeID: foamTypeID,
		Components: toComponentRefs(b.Components),
	}, nil
}

// validateBOM verifica tipo de espuma y componentes; colapsa duplicados conservando la primera posición.
func (uc *UseCase) validateBOM(ctx context.Context, in dto.BOMRequest) (*entity.FoamType, []entity.BOMComponent, error) {
	if strings.TrimSpace(in.FoamTypeID) == "" || len(in.ComponentIDs) == 0 {
		return nil, nil, domain.ErrInvalidInput
	}
	foam, err := uc.foamRepo.GetByID(ctx, in.FoamTypeID)
	if err != nil {
		return nil, nil, err
	}
	if foam == nil {
		return nil, nil, domain.ErrNotFound
	}

	ids := make([]string, 0, len(in.ComponentIDs))
	seen := make(map[string]bool, len(in.ComponentIDs))
	for _, id := range in.ComponentIDs {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, nil, domain.ErrInvalidInput
	}
	found, err := uc.componentRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	byID := make(map[string]*entity.Component, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}
	components := make([]entity.BOMComponent, 0, len(ids))
	for i, id := range ids {
		c, ok := byID[id]
		if !ok || !c.Active {
			return nil, nil, domain.ErrInvalidInput
		}
		components = append(components, entity.BOMComponent{
			ComponentID:   c.ID,
			ComponentName: c.Name,
			Position:      i + 1,
		})
	}
	return foam, components, nil
}

func toFoamTypeResponse(f *entity.FoamType) *dto.FoamTypeResponse {
	return &dto.FoamTypeResponse{ID: f.ID, Name: f.Name, Active: f.Active}
}

func toBOMResponse(b *entity.BillOfMaterials) *dto.BOMResponse {
	return &dto.BOMResponse{
		ID:           b.ID,
		FoamTypeID:   b.FoamTypeID,
		FoamTypeName: b.FoamTypeName,
		Description:  b.Description,
		Components:   toComponentRefs(b.Components),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func toComponentRefs(list []entity.BOMComponent) []dto.ComponentRef {
	out := make([]dto.ComponentRef, 0, len(list))
	for _, c := range list {
		out = append(out, dto.ComponentRef{ID: c.ComponentID, Name: c.ComponentName})
	}
	return out
}
