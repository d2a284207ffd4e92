// seed importa el catálogo de fichas técnicas (tipo de espuma → componentes en orden)
// desde un CSV, típicamente exportado de una planilla.
//
// Uso: go run ./cmd/seed -file fichas.csv [-latin1] [-sep ';']
//
// Columnas: tipo;componente;saldo_inicial (opcional, kg). Lo ya existente se conserva.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/jhoicas/producao-espumas/internal/application/bom"
	"github.com/jhoicas/producao-espumas/internal/application/inventory"
	"github.com/jhoicas/producao-espumas/internal/infrastructure/postgres"
	"github.com/jhoicas/producao-espumas/pkg/config"
	"github.com/jhoicas/producao-espumas/pkg/logger"
)

func main() {
	file := flag.String("file", "fichas.csv", "CSV de fichas técnicas")
	latin1 := flag.Bool("latin1", false, "el archivo está en ISO-8859-1")
	sep := flag.String("sep", ";", "separador de columnas")
	flag.Parse()

	r, size := utf8.DecodeRuneInString(*sep)
	if size == 0 || size != len(*sep) {
		fmt.Fprintf(os.Stderr, "separador inválido: %q\n", *sep)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("abrir CSV")
	}
	defer f.Close()

	rows, err := readCatalog(f, *latin1, r)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("leer CSV")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if cfg.DB.Migrate {
		if err := postgres.Migrate(ctx, pool, log.Named("migrate")); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	componentRepo := postgres.NewComponentRepository(pool)
	balanceRepo := postgres.NewStockBalanceRepository(pool)
	foamRepo := postgres.NewFoamTypeRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	s := &seeder{
		components:    inventory.NewComponentUseCase(txRunner, componentRepo, balanceRepo),
		stock:         inventory.NewStockUseCase(txRunner, componentRepo, postgres.NewStockMovementRepository(pool), balanceRepo, log.Named("stock")),
		boms:          bom.NewUseCase(foamRepo, postgres.NewBOMRepository(pool), componentRepo),
		componentRepo: componentRepo,
		foamRepo:      foamRepo,
		log:           log.Named("seed"),
	}
	res, err := s.run(ctx, rows)
	if err != nil {
		log.Fatal().Err(err).Msg("importar catálogo")
	}
	fmt.Printf("Importado %s: %d componentes, %d tipos de espuma, %d fichas técnicas nuevas\n",
		*file, res.Components, res.FoamTypes, res.BOMs)
}
