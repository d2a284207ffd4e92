package postgres_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/producao-espumas/internal/application/auth"
	"github.com/jhoicas/producao-espumas/internal/application/bom"
	"github.com/jhoicas/producao-espumas/internal/application/dto"
	"github.com/jhoicas/producao-espumas/internal/application/inventory"
	"github.com/jhoicas/producao-espumas/internal/application/production"
	"github.com/jhoicas/producao-espumas/internal/application/report"
	"github.com/jhoicas/producao-espumas/internal/domain"
	"github.com/jhoicas/producao-espumas/internal/domain/entity"
	"github.com/jhoicas/producao-espumas/internal/infrastructure/postgres"
	"github.com/jhoicas/producao-espumas/pkg/config"
)

// Requiere una base PostgreSQL vacía o dedicada: TEST_DATABASE_URL=postgres://...
func TestIntegration_FlujoDeProduccion(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	log := zerolog.Nop()

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url, MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, postgres.Migrate(ctx, pool, log))
	require.NoError(t, postgres.Migrate(ctx, pool, log), "las migraciones ya aplicadas se saltan")

	tx := postgres.NewTxRunner(pool)
	componentRepo := postgres.NewComponentRepository(pool)
	movRepo := postgres.NewStockMovementRepository(pool)
	balanceRepo := postgres.NewStockBalanceRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)

	authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{Secret: "s", ExpMinutes: 5}, "")
	componentUC := inventory.NewComponentUseCase(tx, componentRepo, balanceRepo)
	stockUC := inventory.NewStockUseCase(tx, componentRepo, movRepo, balanceRepo, log)
	bomUC := bom.NewUseCase(postgres.NewFoamTypeRepository(pool), postgres.NewBOMRepository(pool), componentRepo)
	batchUC := production.NewRegisterBatchUseCase(tx, stockUC, bomUC, batchRepo, log)
	dashUC := report.NewDashboardUseCase(postgres.NewReportRepository(pool))

	suffix := uuid.NewString()[:8]
	user, err := authUC.RegisterUser(ctx, dto.RegisterUserRequest{
		Name: "Operador", Email: "op-" + suffix + "@bonsono.com.br", Password: "x", ConfirmPassword: "x",
	})
	require.NoError(t, err)

	resina, err := componentUC.Create(ctx, dto.CreateComponentRequest{Name: "RESINA-" + suffix})
	require.NoError(t, err)
	tdi, err := componentUC.Create(ctx, dto.CreateComponentRequest{Name: "TDI-" + suffix})
	require.NoError(t, err)
	_, err = componentUC.Create(ctx, dto.CreateComponentRequest{Name: "TDI-" + suffix})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = stockUC.AdjustStock(ctx, resina.ID, user.ID, dto.AdjustStockRequest{
		Type: entity.MovementTypeEntrada, Quantity: decimal.NewFromInt(100), Date: "2024-05-01",
	})
	require.NoError(t, err)
	_, err = stockUC.AdjustStock(ctx, tdi.ID, user.ID, dto.AdjustStockRequest{
		Type: entity.MovementTypeEntrada, Quantity: decimal.RequireFromString("10.5"), Date: "2024-05-01",
	})
	require.NoError(t, err)

	foam, err := bomUC.CreateFoamType(ctx, dto.CreateFoamTypeRequest{Name: "D28-" + suffix})
	require.NoError(t, err)
	_, err = bomUC.CreateBOM(ctx, dto.BOMRequest{FoamTypeID: foam.ID, ComponentIDs: []string{resina.ID, tdi.ID}})
	require.NoError(t, err)

	batch, err := batchUC.RegisterBatch(ctx, user.ID, dto.RegisterBatchRequest{
		Code:       "B-" + suffix,
		Date:       "2024-05-02",
		FoamTypeID: foam.ID,
		Color:      "Branca",
		Height:     decimal.NewFromInt(60),
		Conformity: entity.ConformityOK,
		Quantities: map[string]decimal.Decimal{resina.ID: decimal.NewFromInt(40), tdi.ID: decimal.NewFromInt(4)},
	})
	require.NoError(t, err)
	assert.Len(t, batch.Consumption, 2)

	// TDI queda en 6.5: pedir 7 rechaza el bloco completo
	_, err = batchUC.RegisterBatch(ctx, user.ID, dto.RegisterBatchRequest{
		Code:       "B2-" + suffix,
		Date:       "2024-05-03",
		FoamTypeID: foam.ID,
		Color:      "Branca",
		Conformity: entity.ConformityOK,
		Quantities: map[string]decimal.Decimal{resina.ID: decimal.NewFromInt(10), tdi.ID: decimal.NewFromInt(7)},
	})
	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))

	got, err := componentUC.GetByID(ctx, resina.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(60)), "la resina del bloco rechazado no se descuenta")
	got, err = componentUC.GetByID(ctx, tdi.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.RequireFromString("6.5")))

	movs, err := stockUC.ListMovements(ctx, resina.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, movs, 2)

	_, err = batchUC.RegisterBatch(ctx, user.ID, dto.RegisterBatchRequest{
		Code: "B-" + suffix, Date: "2024-05-03", FoamTypeID: foam.ID, Color: "Branca", Conformity: entity.ConformityOK,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateBatchCode)

	rec, err := stockUC.RecalculateBalances(ctx)
	require.NoError(t, err)
	assert.Empty(t, rec.Corrected, "los saldos coinciden con el libro")
	assert.Empty(t, rec.Inconsistent)

	detail, err := batchUC.GetBatch(ctx, batch.ID)
	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Equal(t, foam.ID, detail.FoamTypeID)
	assert.Len(t, detail.Movements, 2)

	// ids mal formados: inexistentes, nunca error de la base
	missing, err := batchUC.GetBatch(ctx, "not-a-uuid")
	require.NoError(t, err)
	assert.Nil(t, missing)
	missingComp, err := componentUC.GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, missingComp)
	_, err = stockUC.ListMovements(ctx, "abc", 10, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	other, err := bomUC.CreateFoamType(ctx, dto.CreateFoamTypeRequest{Name: "D33-" + suffix})
	require.NoError(t, err)
	_, err = bomUC.CreateBOM(ctx, dto.BOMRequest{FoamTypeID: other.ID, ComponentIDs: []string{"abc"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	d, err := dashUC.Build(ctx, dto.DashboardRequest{FoamType: foam.Name})
	require.NoError(t, err)
	assert.Equal(t, 1, d.TotalBatches)
	assert.Len(t, d.Consumption, 2)
}
