package entity

import "time"

// User representa un usuario del sistema. Es dueño de los blocos que registra.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
