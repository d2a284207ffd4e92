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

var _ repository.ComponentRepository = (*ComponentRepo)(nil)

// ComponentRepo implementación de ComponentRepository sobre PostgreSQL (usable con pool o tx).
type ComponentRepo struct {
	q Querier
}

// NewComponentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewComponentRepository(q Querier) *ComponentRepo {
	return &ComponentRepo{q: q}
}

const componentColumns = `id, name, active, created_at`

// Create persiste un componente. domain.ErrDuplicate si el nombre ya existe.
func (r *ComponentRepo) Create(ctx context.Context, c *entity.Component) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO components (id, name, active, created_at) VALUES ($1, $2, $3, $4)`,
		c.ID, c.Name, c.Active, c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert component: %w", err)
	}
	return nil
}

// GetByID obtiene un componente por ID. nil si no existe.
func (r *ComponentRepo) GetByID(ctx context.Context, id string) (*entity.Component, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+componentColumns+` FROM components WHERE id = $1`, id)
}

// GetByName busca por nombre exacto. nil si no existe.
func (r *ComponentRepo) GetByName(ctx context.Context, name string) (*entity.Component, error) {
	return r.getOne(ctx, `SELECT `+componentColumns+` FROM components WHERE name = $1`, name)
}

func (r *ComponentRepo) getOne(ctx context.Context, query string, arg any) (*entity.Component, error) {
	var c entity.Component
	err := r.q.QueryRow(ctx, query, arg).Scan(&c.ID, &c.Name, &c.Active, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get component: %w", err)
	}
	return &c, nil
}

// GetByIDs devuelve los componentes existentes entre ids. Los ids mal formados no existen.
func (r *ComponentRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.Component, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if validID(id) {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return nil, nil
	}
	ids = valid
	rows, err := r.q.Query(ctx,
		`SELECT `+componentColumns+` FROM components WHERE id = ANY($1::uuid[]) ORDER BY name`, ids)
	if err != nil {
		return nil, fmt.Errorf("get components by ids: %w", err)
	}
	return scanComponents(rows)
}

// List lista componentes ordenados por nombre.
func (r *ComponentRepo) List(ctx context.Context, onlyActive bool) ([]*entity.Component, error) {
	query := `SELECT ` + componentColumns + ` FROM components`
	if onlyActive {
		query += ` WHERE active`
	}
	rows, err := r.q.Query(ctx, query+` ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list components: %w", err)
	}
	return scanComponents(rows)
}

// SetActive activa o desactiva el componente.
func (r *ComponentRepo) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := r.q.Exec(ctx, `UPDATE components SET active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set component active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanComponents(rows pgx.Rows) ([]*entity.Component, error) {
	defer rows.Close()
	var list []*entity.Component
	for rows.Next() {
		var c entity.Component
		if err := rows.Scan(&c.ID, &c.Name, &c.Active, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan component: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
