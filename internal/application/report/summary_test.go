package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/producao-espumas/internal/application/dto"
	"github.com/jhoicas/producao-espumas/internal/application/report"
	"github.com/jhoicas/producao-espumas/internal/domain"
	"github.com/jhoicas/producao-espumas/internal/domain/entity"
	"github.com/jhoicas/producao-espumas/internal/domain/repository"
	"github.com/jhoicas/producao-espumas/internal/testutil/memstore"
)

func date(s string) time.Time {
	t, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func row(code, d, foam, conformity string, component string, q int64) repository.ProductionRow {
	r := repository.ProductionRow{
		BatchID:        "id-" + code,
		Code:           code,
		ProductionDate: date(d),
		FoamType:       foam,
		Height:         decimal.NewFromInt(60),
		Conformity:     conformity,
	}
	if component != "" {
		qty := decimal.NewFromInt(q)
		r.Component = &component
		r.QuantityUsed = &qty
	}
	return r
}

// fixture: B1 y B2 (D28) con consumo, B3 (D33) sin consumo, B4 (D33) en abril.
func fixture() []repository.ProductionRow {
	return []repository.ProductionRow{
		row("B4", "2024-04-02", "D33", entity.ConformityOK, "TDI", 7),
		row("B3", "2024-03-11", "D33", entity.ConformityOK, "", 0),
		row("B2", "2024-03-06", "D28", "Não conforme", "RESINA", 20),
		row("B1", "2024-03-04", "D28", entity.ConformityOK, "RESINA", 10),
		row("B1", "2024-03-04", "D28", entity.ConformityOK, "TDI", 5),
	}
}

func mustFilter(t *testing.T, req dto.DashboardRequest) report.Filter {
	t.Helper()
	f, err := report.ParseFilter(req)
	require.NoError(t, err)
	return f
}

func TestSummarize_SinFiltros(t *testing.T) {
	d := report.Summarize(fixture(), mustFilter(t, dto.DashboardRequest{}))

	assert.Equal(t, []string{"D28", "D33"}, d.FoamTypes)
	assert.Equal(t, "2024-03-04", d.MinDate)
	assert.Equal(t, "2024-04-02", d.MaxDate)
	assert.Equal(t, dto.BucketDay, d.Bucket)
	assert.Equal(t, 4, d.TotalBatches, "B1 aparece en dos filas pero cuenta una vez")
	assert.Equal(t, 3, d.ConformingBatches)
	assert.Len(t, d.Batches, 4)
	assert.Len(t, d.Consumption, 4)

	assert.Equal(t, []dto.FoamTypeCount{{FoamType: "D28", Batches: 2}, {FoamType: "D33", Batches: 2}}, d.ByFoamType)

	require.Len(t, d.ByComponent, 2)
	assert.Equal(t, "RESINA", d.ByComponent[0].Component)
	assert.Equal(t, "30", d.ByComponent[0].Quantity.String())
	assert.Equal(t, "TDI", d.ByComponent[1].Component)
	assert.Equal(t, "12", d.ByComponent[1].Quantity.String())

	require.Len(t, d.Trend, 3)
	assert.Equal(t, "04/03/2024", d.Trend[0].Period)
	assert.Equal(t, "15", d.Trend[0].Quantity.String())
	assert.Equal(t, "02/04/2024", d.Trend[2].Period)

	require.Len(t, d.TrendByComponent, 4)
	assert.Equal(t, "RESINA", d.TrendByComponent[0].Component)
	assert.Equal(t, "TDI", d.TrendByComponent[1].Component)
	assert.Equal(t, "04/03/2024", d.TrendByComponent[1].Period)
}

func TestSummarize_FiltroPorTipo(t *testing.T) {
	d := report.Summarize(fixture(), mustFilter(t, dto.DashboardRequest{FoamType: "D28"}))

	assert.Equal(t, 2, d.TotalBatches)
	assert.Equal(t, 1, d.ConformingBatches)
	assert.Nil(t, d.ByFoamType, "el reparto por tipo sólo aplica sin filtro")
	assert.Equal(t, []string{"D28", "D33"}, d.FoamTypes, "las opciones del filtro no dependen del filtro")
	require.Len(t, d.ByComponent, 2)
	assert.Equal(t, "30", d.ByComponent[0].Quantity.String())
}

func TestSummarize_RangoInclusivo(t *testing.T) {
	d := report.Summarize(fixture(), mustFilter(t, dto.DashboardRequest{From: "2024-03-05", To: "2024-03-11"}))

	assert.Equal(t, 2, d.TotalBatches)
	assert.Equal(t, "2024-03-05", d.From)
	assert.Equal(t, "2024-03-11", d.To)
	require.Len(t, d.ByComponent, 1)
	assert.Equal(t, "RESINA", d.ByComponent[0].Component)
	assert.Equal(t, "20", d.ByComponent[0].Quantity.String())
}

func TestSummarize_Buckets(t *testing.T) {
	week := report.Summarize(fixture(), mustFilter(t, dto.DashboardRequest{Bucket: dto.BucketWeek}))
	require.Len(t, week.Trend, 2)
	assert.Equal(t, "04/03/2024", week.Trend[0].Period)
	assert.Equal(t, "35", week.Trend[0].Quantity.String())
	assert.Equal(t, "01/04/2024", week.Trend[1].Period)

	month := report.Summarize(fixture(), mustFilter(t, dto.DashboardRequest{Bucket: dto.BucketMonth}))
	require.Len(t, month.Trend, 2)
	assert.Equal(t, "01/03/2024", month.Trend[0].Period)
	assert.Equal(t, "35", month.Trend[0].Quantity.String())
	assert.Equal(t, "01/04/2024", month.Trend[1].Period)
	assert.Equal(t, "7", month.Trend[1].Quantity.String())
}

func TestSummarize_SinFilas(t *testing.T) {
	d := report.Summarize(nil, report.Filter{})
	assert.Equal(t, 0, d.TotalBatches)
	assert.NotNil(t, d.Batches)
	assert.NotNil(t, d.FoamTypes)
	assert.Empty(t, d.MinDate)
}

func TestBucketStart(t *testing.T) {
	tests := []struct {
		in     string
		bucket string
		want   string
	}{
		{"2024-03-06", dto.BucketDay, "2024-03-06"},
		{"2024-03-06", dto.BucketWeek, "2024-03-04"},
		{"2024-03-10", dto.BucketWeek, "2024-03-04"}, // domingo
		{"2024-03-04", dto.BucketWeek, "2024-03-04"},
		{"2024-02-29", dto.BucketMonth, "2024-02-01"},
	}
	for _, tt := range tests {
		got := report.BucketStart(date(tt.in), tt.bucket)
		assert.Equal(t, tt.want, got.Format(dto.DateLayout), "%s/%s", tt.in, tt.bucket)
	}
}

func TestParseFilter(t *testing.T) {
	f := mustFilter(t, dto.DashboardRequest{FoamType: "Todos"})
	assert.Empty(t, f.FoamType)
	assert.Equal(t, dto.BucketDay, f.Bucket)

	_, err := report.ParseFilter(dto.DashboardRequest{Bucket: "ano"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = report.ParseFilter(dto.DashboardRequest{From: "2024-03-10", To: "2024-03-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = report.ParseFilter(dto.DashboardRequest{From: "10/03/2024"})
	assert.Error(t, err)
}

func TestBuild_FechaInvalida(t *testing.T) {
	uc := report.NewDashboardUseCase(memstore.New().Reports())
	_, err := uc.Build(context.Background(), dto.DashboardRequest{To: "ayer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	d, err := uc.Build(context.Background(), dto.DashboardRequest{})
	require.NoError(t, err)
	assert.Equal(t, 0, d.TotalBatches)
}
