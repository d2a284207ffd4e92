package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/producao-espumas/internal/application/bom"
	"github.com/jhoicas/producao-espumas/internal/application/dto"
	"github.com/jhoicas/producao-espumas/internal/application/inventory"
	"github.com/jhoicas/producao-espumas/internal/domain"
	"github.com/jhoicas/producao-espumas/internal/domain/entity"
	"github.com/jhoicas/producao-espumas/internal/domain/repository"
)

// catalogRow una línea del CSV: tipo de espuma, componente y saldo inicial opcional (kg).
type catalogRow struct {
	FoamType  string
	Component string
	Initial   decimal.Decimal
}

// readCatalog lee el CSV de fichas técnicas. El orden de las filas define la posición
// del componente en la ficha. Una primera fila cuyo primer campo es "tipo" se toma como encabezado.
func readCatalog(r io.Reader, latin1 bool, sep rune) ([]catalogRow, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.Comma = sep
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows []catalogRow
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if line == 1 && len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "tipo") {
			continue
		}
		if len(rec) < 2 {
			return nil, fmt.Errorf("línea %d: se esperan al menos 2 columnas (tipo, componente)", line)
		}
		row := catalogRow{FoamType: strings.TrimSpace(rec[0]), Component: strings.TrimSpace(rec[1])}
		if row.FoamType == "" || row.Component == "" {
			return nil, fmt.Errorf("línea %d: tipo y componente son obligatorios", line)
		}
		if len(rec) > 2 && strings.TrimSpace(rec[2]) != "" {
			q, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(rec[2]), ",", "."))
			if err != nil || q.IsNegative() {
				return nil, fmt.Errorf("línea %d: saldo inicial inválido %q", line, rec[2])
			}
			row.Initial = q
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// seedResult conteo de lo creado en una corrida.
type seedResult struct {
	Components int
	FoamTypes  int
	BOMs       int
}

// seeder crea componentes, tipos de espuma y fichas que aún no existen.
// Volver a correrlo con el mismo archivo no cambia nada.
type seeder struct {
	components    *inventory.ComponentUseCase
	stock         *inventory.StockUseCase
	boms          *bom.UseCase
	componentRepo repository.ComponentRepository
	foamRepo      repository.FoamTypeRepository
	log           zerolog.Logger
}

func (s *seeder) run(ctx context.Context, rows []catalogRow) (seedResult, error) {
	var res seedResult

	componentIDs := map[string]string{}
	for _, r := range rows {
		if _, ok := componentIDs[r.Component]; ok {
			continue
		}
		existing, err := s.componentRepo.GetByName(ctx, r.Component)
		if err != nil {
			return res, err
		}
		if existing != nil {
			componentIDs[r.Component] = existing.ID
			continue
		}
		created, err := s.components.Create(ctx, dto.CreateComponentRequest{Name: r.Component})
		if err != nil {
			return res, fmt.Errorf("componente %s: %w", r.Component, err)
		}
		componentIDs[r.Component] = created.ID
		res.Components++
		// El saldo inicial sólo se registra al crear el componente.
		if r.Initial.GreaterThan(decimal.Zero) {
			_, err := s.stock.AdjustStock(ctx, created.ID, "", dto.AdjustStockRequest{
				Type:     entity.MovementTypeEntrada,
				Quantity: r.Initial,
			})
			if err != nil {
				return res, fmt.Errorf("saldo inicial %s: %w", r.Component, err)
			}
		}
	}

	// Tipos en orden de aparición, con sus componentes en orden.
	var order []string
	byFoam := map[string][]string{}
	for _, r := range rows {
		if _, ok := byFoam[r.FoamType]; !ok {
			order = append(order, r.FoamType)
		}
		byFoam[r.FoamType] = append(byFoam[r.FoamType], componentIDs[r.Component])
	}
	for _, name := range order {
		foam, err := s.foamRepo.GetByName(ctx, name)
		if err != nil {
			return res, err
		}
		foamID := ""
		if foam != nil {
			foamID = foam.ID
		} else {
			created, err := s.boms.CreateFoamType(ctx, dto.CreateFoamTypeRequest{Name: name})
			if err != nil {
				return res, fmt.Errorf("tipo %s: %w", name, err)
			}
			foamID = created.ID
			res.FoamTypes++
		}
		_, err = s.boms.CreateBOM(ctx, dto.BOMRequest{
			FoamTypeID:   foamID,
			Description:  "importada",
			ComponentIDs: byFoam[name],
		})
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			s.log.Info().Str("foam_type", name).Msg("ficha técnica ya existe, se conserva")
		case err != nil:
			return res, fmt.Errorf("ficha %s: %w", name, err)
		default:
			res.BOMs++
		}
	}
	return res, nil
}
