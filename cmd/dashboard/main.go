// Comando dashboard: resumen de producción de espumas en consola y exportaciones.
// Se conecta en modo solo lectura.
//
// Uso:
//
//	go run ./cmd/dashboard -foam D28 -from 2024-03-01 -to 2024-03-31 -bucket semana -csv blocos.csv -latin1
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/jhoicas/producao-espumas/internal/application/dto"
	"github.com/jhoicas/producao-espumas/internal/application/report"
	"github.com/jhoicas/producao-espumas/internal/infrastructure/export"
	infrapdf "github.com/jhoicas/producao-espumas/internal/infrastructure/pdf"
	"github.com/jhoicas/producao-espumas/internal/infrastructure/postgres"
	"github.com/jhoicas/producao-espumas/pkg/config"
	"github.com/jhoicas/producao-espumas/pkg/logger"
)

func main() {
	foam := flag.String("foam", report.AllFoamTypes, "tipo de espuma (Todos = todos)")
	from := flag.String("from", "", "fecha inicial YYYY-MM-DD (default: primera producción)")
	to := flag.String("to", "", "fecha final YYYY-MM-DD inclusive (default: última producción)")
	bucket := flag.String("bucket", dto.BucketDay, "agrupación de la tendencia: dia | semana | mes")
	csvPath := flag.String("csv", "", "exportar la tabla de blocos a CSV")
	xlsxPath := flag.String("xlsx", "", "exportar la tabla de blocos a XLSX")
	pdfPath := flag.String("pdf", "", "generar el informe PDF")
	latin1 := flag.Bool("latin1", false, "CSV en ISO-8859-1 en lugar de UTF-8")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB, postgres.ReadOnly())
	if err != nil {
		// Sin base no hay nada que mostrar: se detiene con el diagnóstico visible.
		log.Fatal().Err(err).
			Str("host", cfg.DB.Host).
			Int("port", cfg.DB.Port).
			Str("database", cfg.DB.DBName).
			Msg("no fue posible conectar a la base de datos; verifique DATABASE_URL o DB_HOST/DB_PORT/DB_USER/DB_PASSWORD")
	}
	defer pool.Close()

	uc := report.NewDashboardUseCase(postgres.NewReportRepository(pool))
	d, err := uc.Build(ctx, dto.DashboardRequest{FoamType: *foam, From: *from, To: *to, Bucket: *bucket})
	if err != nil {
		log.Fatal().Err(err).Msg("armar dashboard")
	}

	printSummary(os.Stdout, d)

	if *csvPath != "" {
		err := writeFile(*csvPath, func(w io.Writer) error { return export.WriteBatchesCSV(w, d.Batches, *latin1) })
		if err != nil {
			log.Fatal().Err(err).Str("file", *csvPath).Msg("exportar CSV")
		}
		log.Info().Str("file", *csvPath).Int("rows", len(d.Batches)).Msg("CSV generado")
	}
	if *xlsxPath != "" {
		err := writeFile(*xlsxPath, func(w io.Writer) error { return export.WriteBatchesXLSX(w, d.Batches, d.ByComponent) })
		if err != nil {
			log.Fatal().Err(err).Str("file", *xlsxPath).Msg("exportar XLSX")
		}
		log.Info().Str("file", *xlsxPath).Msg("XLSX generado")
	}
	if *pdfPath != "" {
		body, err := infrapdf.NewReportGenerator(cfg.App.Name).GenerateProductionReport(ctx, d, time.Now())
		if err == nil {
			err = os.WriteFile(*pdfPath, body, 0o644)
		}
		if err != nil {
			log.Fatal().Err(err).Str("file", *pdfPath).Msg("generar PDF")
		}
		log.Info().Str("file", *pdfPath).Msg("PDF generado")
	}
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printSummary(out io.Writer, d *dto.DashboardResponse) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	foam := d.FoamType
	if foam == "" {
		foam = report.AllFoamTypes
	}
	fmt.Fprintf(w, "Tipo de espuma:\t%s\n", foam)
	fmt.Fprintf(w, "Período:\t%s a %s\n", d.From, d.To)
	fmt.Fprintf(w, "Blocos produzidos:\t%d\n", d.TotalBatches)
	fmt.Fprintf(w, "Blocos conformes:\t%d\n", d.ConformingBatches)

	if len(d.ByFoamType) > 0 {
		fmt.Fprintln(w, "\nTIPO\tBLOCOS")
		for _, r := range d.ByFoamType {
			fmt.Fprintf(w, "%s\t%d\n", r.FoamType, r.Batches)
		}
	}

	fmt.Fprintln(w, "\nCOMPONENTE\tCONSUMO (kg)")
	for _, r := range d.ByComponent {
		fmt.Fprintf(w, "%s\t%s\n", r.Component, r.Quantity.StringFixed(2))
	}

	fmt.Fprintf(w, "\nPERÍODO (%s)\tCONSUMO (kg)\n", d.Bucket)
	for _, p := range d.Trend {
		fmt.Fprintf(w, "%s\t%s\n", p.Period, p.Quantity.StringFixed(2))
	}
}
