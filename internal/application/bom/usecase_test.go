package bom_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/producao-espumas/internal/application/bom"
	"github.com/jhoicas/producao-espumas/internal/application/dto"
	"github.com/jhoicas/producao-espumas/internal/domain"
	"github.com/jhoicas/producao-espumas/internal/testutil/memstore"
)

func newUC(store *memstore.Store) *bom.UseCase {
	return bom.NewUseCase(store.FoamTypes(), store.BOMs(), store.Components())
}

func TestFoamTypes_CrearRenombrarToggle(t *testing.T) {
	store := memstore.New()
	uc := newUC(store)
	ctx := context.Background()

	d28, err := uc.CreateFoamType(ctx, dto.CreateFoamTypeRequest{Name: " D28 "})
	require.NoError(t, err)
	assert.Equal(t, "D28", d28.Name)
	assert.True(t, d28.Active)

	_, err = uc.CreateFoamType(ctx, dto.CreateFoamTypeRequest{Name: "D28"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = uc.CreateFoamType(ctx, dto.CreateFoamTypeRequest{Name: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	d33, err := uc.CreateFoamType(ctx, dto.CreateFoamTypeRequest{Name: "D33"})
	require.NoError(t, err)

	_, err = uc.RenameFoamType(ctx, d33.ID, dto.RenameFoamTypeRequest{Name: "D28"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "el nombre debe seguir siendo único")

	renamed, err := uc.RenameFoamType(ctx, d33.ID, dto.RenameFoamTypeRequest{Name: "D33 Soft"})
	require.NoError(t, err)
	assert.Equal(t, "D33 Soft", renamed.Name)

	// renombrar con el mismo nombre no es conflicto
	_, err = uc.RenameFoamType(ctx, d28.ID, dto.RenameFoamTypeRequest{Name: "D28"})
	assert.NoError(t, err)

	_, err = uc.RenameFoamType(ctx, "no-existe", dto.RenameFoamTypeRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	toggled, err := uc.ToggleFoamType(ctx, d28.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Active)

	byName, err := uc.FoamTypeByName(ctx, "D33 Soft")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, d33.ID, byName.ID)
	gone, err := uc.FoamTypeByName(ctx, "D33")
	require.NoError(t, err)
	assert.Nil(t, gone, "el nombre anterior ya no resuelve")
}

func TestBOM_CrearResolverYListar(t *testing.T) {
	store := memstore.New()
	uc := newUC(store)
	ctx := context.Background()
	poliol := store.SeedComponent("POLIOL", decimal.Zero)
	tdi := store.SeedComponent("TDI", decimal.Zero)
	foam := store.SeedFoamType("D23")
	store.SeedFoamType("D45")

	_, _, err := uc.Resolve(ctx, foam.ID)
	assert.ErrorIs(t, err, domain.ErrBOMNotConfigured)

	created, err := uc.CreateBOM(ctx, dto.BOMRequest{
		FoamTypeID:   foam.ID,
		Description:  " padrão ",
		ComponentIDs: []string{tdi.ID, poliol.ID, tdi.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "padrão", created.Description)
	require.Len(t, created.Components, 2)
	assert.Equal(t, "TDI", created.Components[0].Name)

	_, b, err := uc.Resolve(ctx, foam.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, b.Components[0].Position)
	assert.Equal(t, 2, b.Components[1].Position)

	_, err = uc.CreateBOM(ctx, dto.BOMRequest{FoamTypeID: foam.ID, ComponentIDs: []string{poliol.ID}})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "una ficha por tipo")

	withBOM, err := uc.ListFoamTypes(ctx, true)
	require.NoError(t, err)
	require.Len(t, withBOM, 1)
	assert.Equal(t, "D23", withBOM[0].Name)

	all, err := uc.ListFoamTypes(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	list, err := uc.ListBOMs(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, _, err = uc.Resolve(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBOM_ComponentesInvalidos(t *testing.T) {
	store := memstore.New()
	uc := newUC(store)
	ctx := context.Background()
	poliol := store.SeedComponent("POLIOL", decimal.Zero)
	foam := store.SeedFoamType("D23")

	_, err := uc.CreateBOM(ctx, dto.BOMRequest{FoamTypeID: foam.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin componentes")

	_, err = uc.CreateBOM(ctx, dto.BOMRequest{FoamTypeID: foam.ID, ComponentIDs: []string{poliol.ID, "no-existe"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "componente inexistente")

	require.NoError(t, store.Components().SetActive(ctx, poliol.ID, false))
	_, err = uc.CreateBOM(ctx, dto.BOMRequest{FoamTypeID: foam.ID, ComponentIDs: []string{poliol.ID}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "componente inactivo")

	_, err = uc.CreateBOM(ctx, dto.BOMRequest{FoamTypeID: "no-existe", ComponentIDs: []string{poliol.ID}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBOM_Update(t *testing.T) {
	store := memstore.New()
	uc := newUC(store)
	ctx := context.Background()
	poliol := store.SeedComponent("POLIOL", decimal.Zero)
	tdi := store.SeedComponent("TDI", decimal.Zero)
	d23 := store.SeedFoamType("D23", poliol)
	d28 := store.SeedFoamType("D28", poliol)

	list, err := uc.ListBOMs(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	id := list[0].ID
	require.Equal(t, "D23", list[0].FoamTypeName)

	updated, err := uc.UpdateBOM(ctx, id, dto.BOMRequest{FoamTypeID: d23.ID, ComponentIDs: []string{poliol.ID, tdi.ID}})
	require.NoError(t, err)
	assert.Len(t, updated.Components, 2)

	_, err = uc.UpdateBOM(ctx, id, dto.BOMRequest{FoamTypeID: d28.ID, ComponentIDs: []string{poliol.ID}})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "D28 ya tiene ficha")

	_, err = uc.UpdateBOM(ctx, "no-existe", dto.BOMRequest{FoamTypeID: d23.ID, ComponentIDs: []string{poliol.ID}})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := uc.GetBOM(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got.Components, 2)

	comps, err := uc.ResolveComponents(ctx, d23.ID)
	require.NoError(t, err)
	assert.Equal(t, []dto.ComponentRef{{ID: poliol.ID, Name: "POLIOL"}, {ID: tdi.ID, Name: "TDI"}}, comps.Components)
}
