package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/producao-espumas/internal/domain"
	"github.com/jhoicas/producao-espumas/internal/domain/entity"
	"github.com/jhoicas/producao-espumas/internal/domain/repository"
)

var _ repository.ProductionBatchRepository = (*BatchRepo)(nil)

// BatchRepo blocos y consumo de componentes sobre PostgreSQL (usable con pool o tx).
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

const batchColumns = `id, code, production_date, foam_type, color, height, conformity, notes, status, user_id::text, created_at`

// Create inserta el bloco. domain.ErrDuplicateBatchCode si el código ya existe.
func (r *BatchRepo) Create(ctx context.Context, b *entity.ProductionBatch) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO production_batches (id, code, production_date, foam_type, color, height, conformity, notes, status, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		b.ID, b.Code, b.ProductionDate, b.FoamType, b.Color, b.Height, b.Conformity, b.Notes, b.Status,
		nullable(b.UserID), b.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateBatchCode
		}
		return fmt.Errorf("insert production batch: %w", err)
	}
	return nil
}

// AddConsumption registra la cantidad usada de un componente.
func (r *BatchRepo) AddConsumption(ctx context.Context, c *entity.ComponentConsumption) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO component_consumptions (id, batch_id, component_id, quantity_used)
		VALUES ($1, $2, $3, $4)`,
		c.ID, c.BatchID, c.ComponentID, c.QuantityUsed,
	)
	if err != nil {
		return fmt.Errorf("insert component consumption: %w", err)
	}
	return nil
}

// GetByID obtiene un bloco. nil si no existe.
func (r *BatchRepo) GetByID(ctx context.Context, id string) (*entity.ProductionBatch, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+batchColumns+` FROM production_batches WHERE id = $1`, id)
}

// GetByCode obtiene un bloco por número. nil si no existe.
func (r *BatchRepo) GetByCode(ctx context.Context, code string) (*entity.ProductionBatch, error) {
	return r.getOne(ctx, `SELECT `+batchColumns+` FROM production_batches WHERE code = $1`, code)
}

func (r *BatchRepo) getOne(ctx context.Context, query, arg string) (*entity.ProductionBatch, error) {
	b, err := scanBatch(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production batch: %w", err)
	}
	return b, nil
}

// List blocos por fecha de producción descendente.
func (r *BatchRepo) List(ctx context.Context, limit, offset int) ([]*entity.ProductionBatch, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+batchColumns+`
		FROM production_batches
		ORDER BY production_date DESC, created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list production batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductionBatch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan production batch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// ListConsumption consumo del bloco con nombre del componente.
func (r *BatchRepo) ListConsumption(ctx context.Context, batchID string) ([]*entity.ComponentConsumption, error) {
	if !validID(batchID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT cc.id, cc.batch_id, cc.component_id, c.name, cc.quantity_used
		FROM component_consumptions cc
		JOIN components c ON c.id = cc.component_id
		WHERE cc.batch_id = $1
		ORDER BY c.name`, batchID)
	if err != nil {
		return nil, fmt.Errorf("list consumption: %w", err)
	}
	defer rows.Close()
	var list []*entity.ComponentConsumption
	for rows.Next() {
		var c entity.ComponentConsumption
		if err := rows.Scan(&c.ID, &c.BatchID, &c.ComponentID, &c.ComponentName, &c.QuantityUsed); err != nil {
			return nil, fmt.Errorf("scan consumption: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

func scanBatch(row pgx.Row) (*entity.ProductionBatch, error) {
	var b entity.ProductionBatch
	var userID *string
	if err := row.Scan(
		&b.ID, &b.Code, &b.ProductionDate, &b.FoamType, &b.Color, &b.Height,
		&b.Conformity, &b.Notes, &b.Status, &userID, &b.CreatedAt,
	); err != nil {
		return nil, err
	}
	b.UserID = deref(userID)
	return &b, nil
}
