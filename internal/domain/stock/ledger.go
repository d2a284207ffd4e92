// Package stock contiene las reglas puras del libro de movimientos (servicio de dominio).
// Saldo = Σ entradas − Σ saídas de cada componente.
package stock

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/producao-espumas/internal/domain"
	"github.com/jhoicas/producao-espumas/internal/domain/entity"
)

// ValidType indica si t es un tipo de movimiento aceptado.
func ValidType(t string) bool {
	return t == entity.MovementTypeEntrada || t == entity.MovementTypeSaida
}

// SignedQuantity devuelve la cantidad con signo: positiva para entrada, negativa para saída.
// Tipos desconocidos no afectan el saldo.
func SignedQuantity(movementType string, quantity decimal.Decimal) decimal.Decimal {
	switch movementType {
	case entity.MovementTypeEntrada:
		return quantity
	case entity.MovementTypeSaida:
		return quantity.Neg()
	default:
		return decimal.Zero
	}
}

// Apply aplica un movimiento al saldo actual y devuelve el nuevo saldo.
// Una saída mayor que el saldo devuelve ErrInsufficientStock y el saldo sin cambios.
func Apply(balance decimal.Decimal, movementType string, quantity decimal.Decimal) (decimal.Decimal, error) {
	if !ValidType(movementType) || !quantity.GreaterThan(decimal.Zero) {
		return balance, domain.ErrInvalidInput
	}
	if movementType == entity.MovementTypeSaida && balance.LessThan(quantity) {
		return balance, domain.ErrInsufficientStock
	}
	return balance.Add(SignedQuantity(movementType, quantity)), nil
}

// Sum suma con signo una lista de movimientos.
func Sum(movements []*entity.StockMovement) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		total = total.Add(SignedQuantity(m.Type, m.Quantity))
	}
	return total
}
