package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/producao-espumas/internal/application/dto"
)

// XLSXFileName nombre sugerido del archivo descargado.
const XLSXFileName = "historico_producao_espumas.xlsx"

const xlsxSheet = "Blocos"

// WriteBatchesXLSX escribe la tabla de blocos y una hoja de consumo por componente.
func WriteBatchesXLSX(w io.Writer, rows []dto.BatchRow, consumption []dto.ComponentConsumptionTotal) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 1}},
	})
	dateStyle, _ := f.NewStyle(&excelize.Style{NumFmt: 14})

	for i, h := range BatchHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(xlsxSheet, cell, h)
		f.SetCellStyle(xlsxSheet, cell, cell, boldStyle)
	}
	for i, r := range rows {
		n := i + 2
		f.SetCellValue(xlsxSheet, fmt.Sprintf("A%d", n), r.Code)
		if t, err := time.Parse(dto.DateLayout, r.ProductionDate); err == nil {
			f.SetCellValue(xlsxSheet, fmt.Sprintf("B%d", n), t)
			f.SetCellStyle(xlsxSheet, fmt.Sprintf("B%d", n), fmt.Sprintf("B%d", n), dateStyle)
		} else {
			f.SetCellValue(xlsxSheet, fmt.Sprintf("B%d", n), r.ProductionDate)
		}
		f.SetCellValue(xlsxSheet, fmt.Sprintf("C%d", n), r.FoamType)
		f.SetCellValue(xlsxSheet, fmt.Sprintf("D%d", n), r.Color)
		height, _ := r.Height.Float64()
		f.SetCellValue(xlsxSheet, fmt.Sprintf("E%d", n), height)
		f.SetCellValue(xlsxSheet, fmt.Sprintf("F%d", n), r.Conformity)
		f.SetCellValue(xlsxSheet, fmt.Sprintf("G%d", n), r.Notes)
	}
	f.SetColWidth(xlsxSheet, "A", "F", 14)
	f.SetColWidth(xlsxSheet, "G", "G", 40)

	if len(consumption) > 0 {
		const sheet = "Consumo"
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("xlsx: hoja consumo: %w", err)
		}
		f.SetCellValue(sheet, "A1", "Componente")
		f.SetCellValue(sheet, "B1", "Quantidade (kg)")
		f.SetCellStyle(sheet, "A1", "B1", boldStyle)
		for i, c := range consumption {
			q, _ := c.Quantity.Float64()
			f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), c.Component)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), q)
		}
		f.SetColWidth(sheet, "A", "B", 20)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx: escribir: %w", err)
	}
	return nil
}
