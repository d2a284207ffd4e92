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

var _ repository.FoamTypeRepository = (*FoamTypeRepo)(nil)

// FoamTypeRepo tipos de espuma sobre PostgreSQL.
type FoamTypeRepo struct {
	q Querier
}

// NewFoamTypeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFoamTypeRepository(q Querier) *FoamTypeRepo {
	return &FoamTypeRepo{q: q}
}

func (r *FoamTypeRepo) Create(ctx context.Context, f *entity.FoamType) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO foam_types (id, name, active, created_at) VALUES ($1, $2, $3, $4)`,
		f.ID, f.Name, f.Active, f.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert foam type: %w", err)
	}
	return nil
}

func (r *FoamTypeRepo) GetByID(ctx context.Context, id string) (*entity.FoamType, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT id, name, active, created_at FROM foam_types WHERE id = $1`, id)
}

func (r *FoamTypeRepo) GetByName(ctx context.Context, name string) (*entity.FoamType, error) {
	return r.getOne(ctx, `SELECT id, name, active, created_at FROM foam_types WHERE name = $1`, name)
}

func (r *FoamTypeRepo) getOne(ctx context.Context, query, arg string) (*entity.FoamType, error) {
	var f entity.FoamType
	if err := r.q.QueryRow(ctx, query, arg).Scan(&f.ID, &f.Name, &f.Active, &f.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get foam type: %w", err)
	}
	return &f, nil
}

// List ordenado por nombre; withBOM deja sólo los tipos con ficha técnica.
func (r *FoamTypeRepo) List(ctx context.Context, withBOM bool) ([]*entity.FoamType, error) {
	query := `SELECT f.id, f.name, f.active, f.created_at FROM foam_types f`
	if withBOM {
		query += ` WHERE EXISTS (SELECT 1 FROM bills_of_materials b WHERE b.foam_type_id = f.id)`
	}
	rows, err := r.q.Query(ctx, query+` ORDER BY f.name`)
	if err != nil {
		return nil, fmt.Errorf("list foam types: %w", err)
	}
	defer rows.Close()
	var list []*entity.FoamType
	for rows.Next() {
		var f entity.FoamType
		if err := rows.Scan(&f.ID, &f.Name, &f.Active, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan foam type: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}

// Update nombre y estado. domain.ErrDuplicate si el nombre ya lo usa otro tipo.
func (r *FoamTypeRepo) Update(ctx context.Context, f *entity.FoamType) error {
	tag, err := r.q.Exec(ctx, `UPDATE foam_types SET name = $2, active = $3 WHERE id = $1`, f.ID, f.Name, f.Active)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update foam type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
