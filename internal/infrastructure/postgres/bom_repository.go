package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/producao-espumas/internal/domain"
	"github.com/jhoicas/producao-espumas/internal/domain/entity"
	"github.com/jhoicas/producao-espumas/internal/domain/repository"
)

var _ repository.BillOfMaterialsRepository = (*BOMRepo)(nil)

// BOMRepo fichas técnicas. Create/Update escriben cabecera y componentes en una transacción propia.
type BOMRepo struct {
	pool *pgxpool.Pool
}

// NewBOMRepository construye el adaptador.
func NewBOMRepository(pool *pgxpool.Pool) *BOMRepo {
	return &BOMRepo{pool: pool}
}

// Create persiste la ficha y sus componentes. domain.ErrDuplicate si el tipo ya tiene ficha.
func (r *BOMRepo) Create(ctx context.Context, b *entity.BillOfMaterials) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO bills_of_materials (id, foam_type_id, description, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)`,
			b.ID, b.FoamTypeID, b.Description, b.CreatedAt, b.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert bom: %w", err)
		}
		return insertBOMComponents(ctx, tx, b)
	})
}

// Update reemplaza descripción, tipo de espuma y componentes.
func (r *BOMRepo) Update(ctx context.Context, b *entity.BillOfMaterials) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE bills_of_materials SET foam_type_id = $2, description = $3, updated_at = $4
			WHERE id = $1`,
			b.ID, b.FoamTypeID, b.Description, b.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("update bom: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		if _, err := tx.Exec(ctx, `DELETE FROM bom_components WHERE bom_id = $1`, b.ID); err != nil {
			return fmt.Errorf("delete bom components: %w", err)
		}
		return insertBOMComponents(ctx, tx, b)
	})
}

func insertBOMComponents(ctx context.Context, tx pgx.Tx, b *entity.BillOfMaterials) error {
	batch := &pgx.Batch{}
	for _, c := range b.Components {
		batch.Queue(`INSERT INTO bom_components (bom_id, component_id, position) VALUES ($1, $2, $3)`,
			b.ID, c.ComponentID, c.Position)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert bom components: %w", err)
	}
	return nil
}

const bomSelect = `
	SELECT b.id, b.foam_type_id, f.name, b.description, b.created_at, b.updated_at
	FROM bills_of_materials b
	JOIN foam_types f ON f.id = b.foam_type_id`

func (r *BOMRepo) GetByID(ctx context.Context, id string) (*entity.BillOfMaterials, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, bomSelect+` WHERE b.id = $1`, id)
}

func (r *BOMRepo) GetByFoamType(ctx context.Context, foamTypeID string) (*entity.BillOfMaterials, error) {
	if !validID(foamTypeID) {
		return nil, nil
	}
	return r.getOne(ctx, bomSelect+` WHERE b.foam_type_id = $1`, foamTypeID)
}

func (r *BOMRepo) getOne(ctx context.Context, query, arg string) (*entity.BillOfMaterials, error) {
	var b entity.BillOfMaterials
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&b.ID, &b.FoamTypeID, &b.FoamTypeName, &b.Description, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bom: %w", err)
	}
	if b.Components, err = r.components(ctx, b.ID); err != nil {
		return nil, err
	}
	return &b, nil
}

// List todas las fichas, por nombre del tipo de espuma.
func (r *BOMRepo) List(ctx context.Context) ([]*entity.BillOfMaterials, error) {
	rows, err := r.pool.Query(ctx, bomSelect+` ORDER BY f.name`)
	if err != nil {
		return nil, fmt.Errorf("list boms: %w", err)
	}
	var list []*entity.BillOfMaterials
	for rows.Next() {
		var b entity.BillOfMaterials
		if err := rows.Scan(&b.ID, &b.FoamTypeID, &b.FoamTypeName, &b.Description, &b.CreatedAt, &b.UpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan bom: %w", err)
		}
		list = append(list, &b)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list boms: %w", err)
	}
	for _, b := range list {
		if b.Components, err = r.components(ctx, b.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *BOMRepo) components(ctx context.Context, bomID string) ([]entity.BOMComponent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT bc.component_id, c.name, bc.position
		FROM bom_components bc
		JOIN components c ON c.id = bc.component_id
		WHERE bc.bom_id = $1
		ORDER BY bc.position`, bomID)
	if err != nil {
		return nil, fmt.Errorf("list bom components: %w", err)
	}
	defer rows.Close()
	var list []entity.BOMComponent
	for rows.Next() {
		var c entity.BOMComponent
		if err := rows.Scan(&c.ComponentID, &c.ComponentName, &c.Position); err != nil {
			return nil, fmt.Errorf("scan bom component: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
