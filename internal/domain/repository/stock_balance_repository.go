package repository

import (
	"context"

	"github.com/jhoicas/producao-espumas/internal/domain/entity"
)

// ComponentBalance componente con su saldo actual (lectura).
type ComponentBalance struct {
	Component entity.Component
	Balance   entity.StockBalance
}

// StockBalanceRepository saldo materializado por componente.
// Usado dentro de transacciones para garantizar consistencia con los movimientos.
type StockBalanceRepository interface {
	Get(ctx context.Context, componentID string) (*entity.StockBalance, error)
	// GetForUpdate bloquea la fila del saldo (SELECT FOR UPDATE). Si no existe devuelve saldo cero.
	GetForUpdate(ctx context.Context, componentID string) (*entity.StockBalance, error)
	Upsert(ctx context.Context, b *entity.StockBalance) error
	// LockAll bloquea todas las filas de saldo (recálculo completo).
	LockAll(ctx context.Context) ([]*entity.StockBalance, error)
	ListWithComponents(ctx context.Context) ([]ComponentBalance, error)
}
