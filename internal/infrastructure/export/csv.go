// Package export escribe la tabla de blocos del dashboard en CSV y XLSX.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/producao-espumas/internal/application/dto"
)

// CSVFileName nombre sugerido del archivo descargado.
const CSVFileName = "historico_producao_espumas.csv"

// BatchHeader columnas de la exportación de blocos.
var BatchHeader = []string{"Bloco", "Data", "Tipo", "Cor", "Altura (cm)", "Conformidade", "Observações"}

// csvDateLayout fecha en la exportación CSV (mm/dd/yyyy).
const csvDateLayout = "01/02/2006"

// WriteBatchesCSV escribe encabezado + una fila por bloco. latin1 codifica en ISO-8859-1
// (caracteres no representables se reemplazan) para planillas que no leen UTF-8.
func WriteBatchesCSV(w io.Writer, rows []dto.BatchRow, latin1 bool) error {
	var tw *transform.Writer
	if latin1 {
		tw = transform.NewWriter(w, encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder()))
		w = tw
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(BatchHeader); err != nil {
		return fmt.Errorf("csv: encabezado: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(batchRecord(r)); err != nil {
			return fmt.Errorf("csv: bloco %s: %w", r.Code, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv: flush: %w", err)
	}
	if tw != nil {
		if err := tw.Close(); err != nil {
			return fmt.Errorf("csv: latin1: %w", err)
		}
	}
	return nil
}

func batchRecord(r dto.BatchRow) []string {
	date := r.ProductionDate
	if t, err := time.Parse(dto.DateLayout, r.ProductionDate); err == nil {
		date = t.Format(csvDateLayout)
	}
	return []string{
		r.Code,
		date,
		r.FoamType,
		r.Color,
		r.Height.String(),
		r.Conformity,
		r.Notes,
	}
}
