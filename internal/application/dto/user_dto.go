package dto

import "time"

// RegisterUserRequest entrada para registro de usuario (password en texto, se hashea en use case).
type RegisterUserRequest struct {
	Name            string `json:"name" form:"nome"`
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"senha"`
	ConfirmPassword string `json:"confirm_password" form:"confirmar_senha"`
}

// ChangePasswordRequest body para PUT /api/users/:id/password.
type ChangePasswordRequest struct {
	NewPassword     string `json:"new_password" form:"nova_senha"`
	ConfirmPassword string `json:"confirm_password" form:"confirma_senha"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"senha"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
