package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/producao-espumas/internal/application/dto"
	"github.com/jhoicas/producao-espumas/internal/application/inventory"
	"github.com/jhoicas/producao-espumas/internal/domain"
	"github.com/jhoicas/producao-espumas/internal/domain/entity"
	"github.com/jhoicas/producao-espumas/internal/domain/stock"
	"github.com/jhoicas/producao-espumas/internal/testutil/memstore"
)

func kg(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func newStockUC(store *memstore.Store) *inventory.StockUseCase {
	return inventory.NewStockUseCase(store, store.Components(), store.MovementsRepo(), store.Balances(), zerolog.Nop())
}

// ledgerSum Σ entradas − Σ saídas del componente según el libro.
func ledgerSum(store *memstore.Store, componentID string) decimal.Decimal {
	var list []*entity.StockMovement
	for _, m := range store.Movements() {
		if m.ComponentID == componentID {
			m := m
			list = append(list, &m)
		}
	}
	return stock.Sum(list)
}

func TestAdjustStock_EntradaYSaida(t *testing.T) {
	store := memstore.New()
	uc := newStockUC(store)
	resina := store.SeedComponent("RESINA", kg(100))
	ctx := context.Background()

	out, err := uc.AdjustStock(ctx, resina.ID, "u1", dto.AdjustStockRequest{Type: entity.MovementTypeEntrada, Quantity: kg(50), Date: "2024-01-10"})
	require.NoError(t, err)
	assert.True(t, kg(150).Equal(out.Quantity))
	assert.Equal(t, "RESINA", out.ComponentName)

	out, err = uc.AdjustStock(ctx, resina.ID, "u1", dto.AdjustStockRequest{Type: entity.MovementTypeSaida, Quantity: kg(150)})
	require.NoError(t, err)
	assert.True(t, out.Quantity.IsZero(), "saída igual al saldo deja cero")

	assert.True(t, ledgerSum(store, resina.ID).Equal(store.Balance(resina.ID)), "saldo = suma del libro")
}

func TestAdjustStock_SaidaMayorQueSaldo_SinCambios(t *testing.T) {
	store := memstore.New()
	uc := newStockUC(store)
	resina := store.SeedComponent("RESINA", kg(100))
	before := len(store.Movements())

	_, err := uc.AdjustStock(context.Background(), resina.ID, "u1", dto.AdjustStockRequest{Type: entity.MovementTypeSaida, Quantity: kg(150)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, "RESINA", ise.ComponentName)
	assert.True(t, kg(100).Equal(ise.Available))
	assert.True(t, kg(150).Equal(ise.Requested))

	assert.True(t, kg(100).Equal(store.Balance(resina.ID)))
	assert.Len(t, store.Movements(), before)
}

func TestAdjustStock_EntradaInvalida(t *testing.T) {
	store := memstore.New()
	uc := newStockUC(store)
	resina := store.SeedComponent("RESINA", kg(10))
	ctx := context.Background()

	cases := map[string]dto.AdjustStockRequest{
		"tipo desconocido":  {Type: "transferencia", Quantity: kg(1)},
		"cantidad cero":     {Type: entity.MovementTypeEntrada, Quantity: decimal.Zero},
		"cantidad negativa": {Type: entity.MovementTypeEntrada, Quantity: kg(-5)},
		"fecha inválida":    {Type: entity.MovementTypeEntrada, Quantity: kg(1), Date: "10/01/2024"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.AdjustStock(ctx, resina.ID, "u1", in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	_, err := uc.AdjustStock(ctx, "no-existe", "u1", dto.AdjustStockRequest{Type: entity.MovementTypeEntrada, Quantity: kg(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdjustStock_FalloAlInsertarMovimiento_Rollback(t *testing.T) {
	store := memstore.New()
	uc := newStockUC(store)
	resina := store.SeedComponent("RESINA", kg(100))
	store.MovementCreateErr = errors.New("conexión perdida")

	_, err := uc.AdjustStock(context.Background(), resina.ID, "u1", dto.AdjustStockRequest{Type: entity.MovementTypeSaida, Quantity: kg(30)})
	require.Error(t, err)
	assert.True(t, kg(100).Equal(store.Balance(resina.ID)), "el saldo vuelve al valor previo")
}

func TestListMovements(t *testing.T) {
	store := memstore.New()
	uc := newStockUC(store)
	resina := store.SeedComponent("RESINA", kg(100))
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := uc.AdjustStock(ctx, resina.ID, "u1", dto.AdjustStockRequest{Type: entity.MovementTypeSaida, Quantity: kg(10)})
		require.NoError(t, err)
	}

	list, err := uc.ListMovements(ctx, resina.ID, 2, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, entity.MovementTypeSaida, list[0].Type, "más recientes primero")

	_, err = uc.ListMovements(ctx, "no-existe", 10, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecalculateBalances_CorrigeDesvioYEsIdempotente(t *testing.T) {
	store := memstore.New()
	uc := newStockUC(store)
	resina := store.SeedComponent("RESINA", kg(100))
	tdi := store.SeedComponent("TDI", kg(40))
	ctx := context.Background()

	_, err := uc.AdjustStock(ctx, resina.ID, "u1", dto.AdjustStockRequest{Type: entity.MovementTypeSaida, Quantity: kg(30)})
	require.NoError(t, err)
	store.SetBalance(resina.ID, kg(999))

	out, err := uc.RecalculateBalances(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Checked)
	require.Len(t, out.Corrected, 1)
	assert.Equal(t, resina.ID, out.Corrected[0].ComponentID)
	assert.True(t, kg(999).Equal(out.Corrected[0].Stored))
	assert.True(t, kg(70).Equal(out.Corrected[0].Computed))
	assert.True(t, kg(70).Equal(store.Balance(resina.ID)))
	assert.True(t, kg(40).Equal(store.Balance(tdi.ID)))

	out, err = uc.RecalculateBalances(ctx)
	require.NoError(t, err)
	assert.Empty(t, out.Corrected, "la segunda ejecución no encuentra diferencias")
}

func TestRecalculateBalances_LibroNegativoSeInformaSinBloquearElResto(t *testing.T) {
	store := memstore.New()
	uc := newStockUC(store)
	resina := store.SeedComponent("RESINA", kg(20))
	tdi := store.SeedComponent("TDI", kg(40))
	ctx := context.Background()

	// saída importada sin su entrada: el libro de RESINA suma -30
	require.NoError(t, store.MovementsRepo().Create(ctx, &entity.StockMovement{
		ID: "m-importado", ComponentID: resina.ID, Type: entity.MovementTypeSaida, Quantity: kg(50),
	}))
	store.SetBalance(tdi.ID, kg(999))

	out, err := uc.RecalculateBalances(ctx)
	require.NoError(t, err)
	require.Len(t, out.Corrected, 1, "el desvío de TDI se corrige igual")
	assert.Equal(t, tdi.ID, out.Corrected[0].ComponentID)
	assert.True(t, kg(40).Equal(store.Balance(tdi.ID)))

	require.Len(t, out.Inconsistent, 1)
	assert.Equal(t, resina.ID, out.Inconsistent[0].ComponentID)
	assert.True(t, kg(-30).Equal(out.Inconsistent[0].Computed))
	assert.True(t, kg(20).Equal(store.Balance(resina.ID)), "saldo sin tocar")

	out, err = uc.RecalculateBalances(ctx)
	require.NoError(t, err)
	assert.Empty(t, out.Corrected)
	assert.Len(t, out.Inconsistent, 1, "sigue informándose hasta corregir el libro")
}

func TestBatchMovements(t *testing.T) {
	store := memstore.New()
	uc := newStockUC(store)
	resina := store.SeedComponent("RESINA", kg(100))
	ctx := context.Background()
	require.NoError(t, store.MovementsRepo().Create(ctx, &entity.StockMovement{
		ID: "m1", ComponentID: resina.ID, Type: entity.MovementTypeSaida, Quantity: kg(30), BatchID: "b1",
	}))

	list, err := uc.BatchMovements(ctx, "b1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.MovementTypeSaida, list[0].Type)
	assert.Equal(t, "b1", list[0].BatchID)

	list, err = uc.BatchMovements(ctx, "otro")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListBalances(t *testing.T) {
	store := memstore.New()
	uc := newStockUC(store)
	store.SeedComponent("TDI", kg(5))
	store.SeedComponent("AGUA", kg(0))

	list, err := uc.ListBalances(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "AGUA", list[0].ComponentName)
	assert.True(t, kg(5).Equal(list[1].Quantity))
}
