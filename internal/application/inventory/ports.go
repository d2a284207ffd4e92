package inventory

import (
	"context"

	"github.com/jhoicas/producao-espumas/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad entre el movimiento y el saldo del componente.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		componentRepo repository.ComponentRepository,
		movRepo repository.StockMovementRepository,
		balanceRepo repository.StockBalanceRepository,
	) error) error
}
