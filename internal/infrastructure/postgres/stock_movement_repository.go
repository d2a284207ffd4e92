package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/producao-espumas/internal/domain/entity"
	"github.com/jhoicas/producao-espumas/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de movimientos (solo inserción). Usable con pool o tx.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta un movimiento. Asigna ID si viene vacío.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_movements (id, component_id, movement_type, quantity, movement_date, batch_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		m.ID, m.ComponentID, m.Type, m.Quantity, m.Date, nullable(m.BatchID), nullable(m.CreatedBy), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

const movementColumns = `id, component_id, movement_type, quantity, movement_date, batch_id::text, created_by::text, created_at`

// ListByComponent movimientos de un componente, más recientes primero.
func (r *StockMovementRepo) ListByComponent(ctx context.Context, componentID string, limit, offset int) ([]*entity.StockMovement, error) {
	if !validID(componentID) {
		return nil, nil
	}
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.q.Query(ctx, `
		SELECT `+movementColumns+`
		FROM stock_movements WHERE component_id = $1
		ORDER BY movement_date DESC, created_at DESC
		LIMIT $2 OFFSET $3`, componentID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by component: %w", err)
	}
	return scanMovements(rows)
}

// ListByBatch movimientos generados por un bloco.
func (r *StockMovementRepo) ListByBatch(ctx context.Context, batchID string) ([]*entity.StockMovement, error) {
	if !validID(batchID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT `+movementColumns+`
		FROM stock_movements WHERE batch_id = $1
		ORDER BY component_id`, batchID)
	if err != nil {
		return nil, fmt.Errorf("list movements by batch: %w", err)
	}
	return scanMovements(rows)
}

// SignedTotals Σ entradas − Σ saídas por componente.
func (r *StockMovementRepo) SignedTotals(ctx context.Context) (map[string]decimal.Decimal, error) {
	rows, err := r.q.Query(ctx, `
		SELECT component_id::text,
		       SUM(CASE WHEN movement_type = 'entrada' THEN quantity ELSE -quantity END)
		FROM stock_movements
		GROUP BY component_id`)
	if err != nil {
		return nil, fmt.Errorf("sum movements: %w", err)
	}
	defer rows.Close()
	out := make(map[string]decimal.Decimal)
	for rows.Next() {
		var id string
		var total decimal.Decimal
		if err := rows.Scan(&id, &total); err != nil {
			return nil, fmt.Errorf("scan movement total: %w", err)
		}
		out[id] = total
	}
	return out, rows.Err()
}

func scanMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var batchID, createdBy *string
		if err := rows.Scan(&m.ID, &m.ComponentID, &m.Type, &m.Quantity, &m.Date, &batchID, &createdBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		m.BatchID = deref(batchID)
		m.CreatedBy = deref(createdBy)
		list = append(list, &m)
	}
	return list, rows.Err()
}
