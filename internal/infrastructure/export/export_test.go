package export_test

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/producao-espumas/internal/application/dto"
	"github.com/jhoicas/producao-espumas/internal/infrastructure/export"
)

func sampleRows() []dto.BatchRow {
	return []dto.BatchRow{
		{Code: "B-002", ProductionDate: "2024-03-15", FoamType: "D28", Color: "Branca", Height: decimal.RequireFromString("55.5"), Conformity: "Conforme", Notes: "ok"},
		{Code: "B-001", ProductionDate: "2024-03-01", FoamType: "D33", Color: "Azul", Height: decimal.NewFromInt(60), Conformity: "Não conforme", Notes: "bolhas, topo"},
	}
}

// ── CSV ──────────────────────────────────────────────────────────────────────

func TestWriteBatchesCSV_UTF8(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteBatchesCSV(&buf, sampleRows(), false))

	want := "Bloco,Data,Tipo,Cor,Altura (cm),Conformidade,Observações\n" +
		"B-002,03/15/2024,D28,Branca,55.5,Conforme,ok\n" +
		"B-001,03/01/2024,D33,Azul,60,Não conforme,\"bolhas, topo\"\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteBatchesCSV_Latin1(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteBatchesCSV(&buf, sampleRows(), true))

	// "ç" y "õ" de "Observações" en ISO-8859-1 ocupan un byte cada uno.
	assert.Contains(t, buf.String(), "Observa\xe7\xf5es")
	assert.NotContains(t, buf.String(), "ç")
}

func TestWriteBatchesCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteBatchesCSV(&buf, nil, false))
	assert.Equal(t, "Bloco,Data,Tipo,Cor,Altura (cm),Conformidade,Observações\n", buf.String())
}

// ── XLSX ─────────────────────────────────────────────────────────────────────

func TestWriteBatchesXLSX(t *testing.T) {
	var buf bytes.Buffer
	consumption := []dto.ComponentConsumptionTotal{{Component: "RESINA", Quantity: decimal.NewFromInt(30)}}
	require.NoError(t, export.WriteBatchesXLSX(&buf, sampleRows(), consumption))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("Blocos", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Bloco", v)

	v, err = f.GetCellValue("Blocos", "A3")
	require.NoError(t, err)
	assert.Equal(t, "B-001", v)

	v, err = f.GetCellValue("Consumo", "A2")
	require.NoError(t, err)
	assert.Equal(t, "RESINA", v)
}
