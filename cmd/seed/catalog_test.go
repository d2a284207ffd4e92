package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/producao-espumas/internal/application/bom"
	"github.com/jhoicas/producao-espumas/internal/application/inventory"
	"github.com/jhoicas/producao-espumas/internal/testutil/memstore"
)

const catalogCSV = `tipo;componente;saldo_inicial
D28;POLIOL;1000
D28;TDI;500,5
D33;POLIOL;
D33;ÁGUA;
`

func newSeeder(store *memstore.Store) *seeder {
	log := zerolog.Nop()
	return &seeder{
		components:    inventory.NewComponentUseCase(store, store.Components(), store.Balances()),
		stock:         inventory.NewStockUseCase(store, store.Components(), store.MovementsRepo(), store.Balances(), log),
		boms:          bom.NewUseCase(store.FoamTypes(), store.BOMs(), store.Components()),
		componentRepo: store.Components(),
		foamRepo:      store.FoamTypes(),
		log:           log,
	}
}

func TestReadCatalog_UTF8(t *testing.T) {
	rows, err := readCatalog(strings.NewReader(catalogCSV), false, ';')
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "D28", rows[0].FoamType)
	assert.True(t, decimal.RequireFromString("500.5").Equal(rows[1].Initial), "acepta coma decimal")
	assert.True(t, rows[2].Initial.IsZero())
	assert.Equal(t, "ÁGUA", rows[3].Component)
}

func TestReadCatalog_Latin1(t *testing.T) {
	encoded, err := charmap.ISO8859_1.NewEncoder().String(catalogCSV)
	require.NoError(t, err)

	rows, err := readCatalog(bytes.NewReader([]byte(encoded)), true, ';')
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "ÁGUA", rows[3].Component)
}

func TestReadCatalog_Errores(t *testing.T) {
	_, err := readCatalog(strings.NewReader("D28\n"), false, ';')
	assert.Error(t, err, "falta la columna componente")

	_, err = readCatalog(strings.NewReader("D28;TDI;-3\n"), false, ';')
	assert.Error(t, err, "saldo inicial negativo")
}

func TestSeeder_CreaCatalogoYEsIdempotente(t *testing.T) {
	store := memstore.New()
	s := newSeeder(store)
	rows, err := readCatalog(strings.NewReader(catalogCSV), false, ';')
	require.NoError(t, err)

	res, err := s.run(context.Background(), rows)
	require.NoError(t, err)
	assert.Equal(t, seedResult{Components: 3, FoamTypes: 2, BOMs: 2}, res)

	poliol, err := store.Components().GetByName(context.Background(), "POLIOL")
	require.NoError(t, err)
	require.NotNil(t, poliol)
	assert.True(t, decimal.NewFromInt(1000).Equal(store.Balance(poliol.ID)))

	foam, err := store.FoamTypes().GetByName(context.Background(), "D33")
	require.NoError(t, err)
	b, err := store.BOMs().GetByFoamType(context.Background(), foam.ID)
	require.NoError(t, err)
	require.Len(t, b.Components, 2)
	assert.Equal(t, "POLIOL", b.Components[0].ComponentName)
	assert.Equal(t, "ÁGUA", b.Components[1].ComponentName)

	// segunda corrida: nada nuevo y sin entradas duplicadas
	movements := len(store.Movements())
	res, err = s.run(context.Background(), rows)
	require.NoError(t, err)
	assert.Equal(t, seedResult{}, res)
	assert.Len(t, store.Movements(), movements)
}
