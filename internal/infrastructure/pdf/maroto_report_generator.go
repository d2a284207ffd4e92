// Package pdf genera el relatorio de producción en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + período         │  Tipo de espuma + fecha │
//	│  ─────────────────────────────────────────────────────────  │
//	│  INDICADORES: blocos / conformes / % conformidad            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CONSUMO: Componente | kg                                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BLOCOS: Bloco | Data | Tipo | Cor | Altura | Conformidade  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/producao-espumas/internal/application/dto"
	"github.com/jhoicas/producao-espumas/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorOK      = &props.Color{Red: 0, Green: 120, Blue: 60}
	colorNOK     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ReportGenerator genera el relatorio de producción usando Maroto v2.
type ReportGenerator struct {
	Company string
}

// NewReportGenerator construye el generador. company aparece como autor del documento.
func NewReportGenerator(company string) *ReportGenerator {
	return &ReportGenerator{Company: company}
}

// GenerateProductionReport genera el PDF del dashboard filtrado y devuelve sus bytes.
func (g *ReportGenerator) GenerateProductionReport(_ context.Context, d *dto.DashboardResponse, generatedAt time.Time) ([]byte, error) {
	if d == nil {
		return nil, fmt.Errorf("pdf: dashboard vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório de Produção de Espumas", true).
		WithAuthor(nonEmpty(g.Company, "producao-espumas"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(d, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(kpiRow(d))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("CONSUMO POR COMPONENTE (kg)"))
	m.AddRows(consumptionRows(d.ByComponent)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("BLOCOS PRODUZIDOS"))
	m.AddRows(batchHeaderRow())
	m.AddRows(batchRows(d.Batches)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(d *dto.DashboardResponse, generatedAt time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("RELATÓRIO DE PRODUÇÃO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Período: "+period(d), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Tipo: "+nonEmpty(d.FoamType, "Todos"), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2,
			}),
			text.New("Gerado em "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

func kpiRow(d *dto.DashboardResponse) core.Row {
	rate := "-"
	if d.TotalBatches > 0 {
		rate = decimal.NewFromInt(int64(d.ConformingBatches)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(d.TotalBatches))).
			StringFixed(1) + "%"
	}
	kpi := func(label, value string, c *props.Color) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 14, Align: align.Center, Color: c, Top: 6}),
		)
	}
	return row.New(16).Add(
		kpi("Blocos", fmt.Sprintf("%d", d.TotalBatches), colorPrimary),
		kpi("Conformes", fmt.Sprintf("%d", d.ConformingBatches), colorOK),
		kpi("Conformidade", rate, colorPrimary),
	)
}

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

func consumptionRows(list []dto.ComponentConsumptionTotal) []core.Row {
	if len(list) == 0 {
		return []core.Row{row.New(6).Add(col.New(12).Add(
			text.New("Sem consumo registrado no período.", props.Text{Size: 8, Color: colorGray, Top: 1}),
		))}
	}
	rows := make([]core.Row, 0, len(list))
	for _, c := range list {
		rows = append(rows, row.New(6).Add(
			col.New(8).Add(text.New(c.Component, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(c.Quantity.StringFixed(3), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func batchHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		h("Bloco", 2, align.Left),
		h("Data", 2, align.Center),
		h("Tipo", 2, align.Left),
		h("Cor", 2, align.Left),
		h("Altura (cm)", 2, align.Right),
		h("Conformidade", 2, align.Center),
	)
}

func batchRows(list []dto.BatchRow) []core.Row {
	rows := make([]core.Row, 0, len(list))
	for _, b := range list {
		c := colorNOK
		if entity.IsConformity(b.Conformity) {
			c = colorOK
		}
		rows = append(rows, row.New(6).Add(
			col.New(2).Add(text.New(b.Code, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(displayDate(b.ProductionDate), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(b.FoamType, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(b.Color, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(b.Height.StringFixed(1), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(b.Conformity, props.Text{Size: 8, Align: align.Center, Top: 1, Color: c})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func period(d *dto.DashboardResponse) string {
	if d.From == "" && d.To == "" {
		return "sem dados"
	}
	return displayDate(d.From) + " a " + displayDate(d.To)
}

// displayDate YYYY-MM-DD → dd/mm/yyyy (si no parsea, devuelve s).
func displayDate(s string) string {
	t, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		return s
	}
	return t.Format("02/01/2006")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
