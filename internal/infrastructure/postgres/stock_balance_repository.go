package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/producao-espumas/internal/domain/entity"
	"github.com/jhoicas/producao-espumas/internal/domain/repository"
)

var _ repository.StockBalanceRepository = (*StockBalanceRepo)(nil)

// StockBalanceRepo saldo materializado por componente (usable con pool o tx).
type StockBalanceRepo struct {
	q Querier
}

// NewStockBalanceRepository construye el adaptador de saldos. Pasar pool o tx (Querier).
func NewStockBalanceRepository(q Querier) *StockBalanceRepo {
	return &StockBalanceRepo{q: q}
}

// Get obtiene el saldo actual de un componente (cero si no hay fila).
func (r *StockBalanceRepo) Get(ctx context.Context, componentID string) (*entity.StockBalance, error) {
	return r.get(ctx, `
		SELECT component_id, quantity, updated_at
		FROM stock_balances WHERE component_id = $1`, componentID)
}

// GetForUpdate obtiene el saldo y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockBalanceRepo) GetForUpdate(ctx context.Context, componentID string) (*entity.StockBalance, error) {
	return r.get(ctx, `
		SELECT component_id, quantity, updated_at
		FROM stock_balances WHERE component_id = $1
		FOR UPDATE`, componentID)
}

func (r *StockBalanceRepo) get(ctx context.Context, query, componentID string) (*entity.StockBalance, error) {
	if !validID(componentID) {
		return &entity.StockBalance{ComponentID: componentID, Quantity: decimal.Zero}, nil
	}
	var b entity.StockBalance
	err := r.q.QueryRow(ctx, query, componentID).Scan(&b.ComponentID, &b.Quantity, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockBalance{ComponentID: componentID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock balance: %w", err)
	}
	return &b, nil
}

// Upsert inserta o actualiza el saldo del componente.
func (r *StockBalanceRepo) Upsert(ctx context.Context, b *entity.StockBalance) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_balances (component_id, quantity, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (component_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`,
		b.ComponentID, b.Quantity,
	)
	if err != nil {
		return fmt.Errorf("upsert stock balance: %w", err)
	}
	return nil
}

// LockAll bloquea y devuelve todas las filas de saldo.
func (r *StockBalanceRepo) LockAll(ctx context.Context) ([]*entity.StockBalance, error) {
	rows, err := r.q.Query(ctx, `
		SELECT component_id, quantity, updated_at
		FROM stock_balances ORDER BY component_id
		FOR UPDATE`)
	if err != nil {
		return nil, fmt.Errorf("lock stock balances: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockBalance
	for rows.Next() {
		var b entity.StockBalance
		if err := rows.Scan(&b.ComponentID, &b.Quantity, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock balance: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// ListWithComponents todos los componentes con su saldo (cero si no hay fila), por nombre.
func (r *StockBalanceRepo) ListWithComponents(ctx context.Context) ([]repository.ComponentBalance, error) {
	rows, err := r.q.Query(ctx, `
		SELECT c.id, c.name, c.active, c.created_at,
		       COALESCE(b.quantity, 0), COALESCE(b.updated_at, c.created_at)
		FROM components c
		LEFT JOIN stock_balances b ON b.component_id = c.id
		ORDER BY c.name`)
	if err != nil {
		return nil, fmt.Errorf("list stock balances: %w", err)
	}
	defer rows.Close()
	var list []repository.ComponentBalance
	for rows.Next() {
		var cb repository.ComponentBalance
		if err := rows.Scan(
			&cb.Component.ID, &cb.Component.Name, &cb.Component.Active, &cb.Component.CreatedAt,
			&cb.Balance.Quantity, &cb.Balance.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock balance: %w", err)
		}
		cb.Balance.ComponentID = cb.Component.ID
		list = append(list, cb)
	}
	return list, rows.Err()
}
