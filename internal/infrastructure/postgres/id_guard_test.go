package postgres_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/producao-espumas/internal/infrastructure/postgres"
)

// Los ids mal formados se resuelven como inexistentes sin llegar a la base:
// los repositorios se construyen sin conexión y no deben usarla.
func TestRepositorios_IDMalFormadoEsInexistente(t *testing.T) {
	ctx := context.Background()
	bad := []string{"not-a-uuid", "", "123", "abc'; DROP TABLE users; --"}

	for _, id := range bad {
		batch, err := postgres.NewBatchRepository(nil).GetByID(ctx, id)
		require.NoError(t, err, id)
		assert.Nil(t, batch)

		consumption, err := postgres.NewBatchRepository(nil).ListConsumption(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, consumption)

		component, err := postgres.NewComponentRepository(nil).GetByID(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, component)

		foam, err := postgres.NewFoamTypeRepository(nil).GetByID(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, foam)

		bom, err := postgres.NewBOMRepository(nil).GetByID(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, bom)

		bom, err = postgres.NewBOMRepository(nil).GetByFoamType(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, bom)

		user, err := postgres.NewUserRepository(nil).GetByID(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, user)

		balance, err := postgres.NewStockBalanceRepository(nil).GetForUpdate(ctx, id)
		require.NoError(t, err)
		assert.True(t, balance.Quantity.IsZero())

		movs, err := postgres.NewStockMovementRepository(nil).ListByComponent(ctx, id, 10, 0)
		require.NoError(t, err)
		assert.Empty(t, movs)

		movs, err = postgres.NewStockMovementRepository(nil).ListByBatch(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, movs)
	}
}

func TestComponentRepo_GetByIDs_SinIDsValidos(t *testing.T) {
	list, err := postgres.NewComponentRepository(nil).GetByIDs(context.Background(), []string{"x", "no-existe"})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRepositorios_IDValidoLlegaALaBase(t *testing.T) {
	// con un UUID válido el repositorio sí consulta; sin conexión eso entra en pánico
	assert.Panics(t, func() {
		_, _ = postgres.NewBatchRepository(nil).GetByID(context.Background(), uuid.NewString())
	})
}
