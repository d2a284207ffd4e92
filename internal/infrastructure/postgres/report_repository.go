package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/producao-espumas/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura del dashboard.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador. Pasar pool (puede ser de solo lectura).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// LoadProductionRows blocos LEFT JOIN consumo y componente, fecha de producción descendente.
func (r *ReportRepo) LoadProductionRows(ctx context.Context) ([]repository.ProductionRow, error) {
	rows, err := r.q.Query(ctx, `
		SELECT b.id, b.code, b.production_date, b.foam_type, b.color, b.height,
		       b.conformity, b.notes, c.name, cc.quantity_used
		FROM production_batches b
		LEFT JOIN component_consumptions cc ON cc.batch_id = b.id
		LEFT JOIN components c ON c.id = cc.component_id
		ORDER BY b.production_date DESC, b.code, c.name`)
	if err != nil {
		return nil, fmt.Errorf("load production rows: %w", err)
	}
	defer rows.Close()
	var list []repository.ProductionRow
	for rows.Next() {
		var pr repository.ProductionRow
		if err := rows.Scan(
			&pr.BatchID, &pr.Code, &pr.ProductionDate, &pr.FoamType, &pr.Color, &pr.Height,
			&pr.Conformity, &pr.Notes, &pr.Component, &pr.QuantityUsed,
		); err != nil {
			return nil, fmt.Errorf("scan production row: %w", err)
		}
		list = append(list, pr)
	}
	return list, rows.Err()
}
