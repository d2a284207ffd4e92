package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/producao-espumas/internal/application/auth"
	"github.com/jhoicas/producao-espumas/internal/application/dto"
	"github.com/jhoicas/producao-espumas/internal/domain"
	"github.com/jhoicas/producao-espumas/internal/testutil/memstore"
	pkgjwt "github.com/jhoicas/producao-espumas/pkg/jwt"
)

const secret = "test-secret"

func newUC(store *memstore.Store, domainSuffix string) *auth.AuthUseCase {
	return auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "test"}, domainSuffix)
}

func register(name, email, pass, confirm string) dto.RegisterUserRequest {
	return dto.RegisterUserRequest{Name: name, Email: email, Password: pass, ConfirmPassword: confirm}
}

func TestRegisterUser(t *testing.T) {
	store := memstore.New()
	uc := newUC(store, "@bonsono.com.br")
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, register("Ana", " Ana@Bonsono.com.br ", "s3nha", "s3nha"))
	require.NoError(t, err)
	assert.Equal(t, "ana@bonsono.com.br", u.Email)
	assert.True(t, u.Active)

	stored, err := store.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "s3nha", stored.PasswordHash, "la contraseña se guarda hasheada")

	_, err = uc.RegisterUser(ctx, register("Ana", "ana@bonsono.com.br", "x", "x"))
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.RegisterUser(ctx, register("Ana", "ana@gmail.com", "x", "x"))
	assert.ErrorIs(t, err, domain.ErrEmailDomain)

	_, err = uc.RegisterUser(ctx, register("Ana", "bia@bonsono.com.br", "x", "y"))
	assert.ErrorIs(t, err, domain.ErrPasswordMismatch)

	_, err = uc.RegisterUser(ctx, register("", "bia@bonsono.com.br", "x", "x"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterUser_SinRestriccionDeDominio(t *testing.T) {
	uc := newUC(memstore.New(), "")
	_, err := uc.RegisterUser(context.Background(), register("Ana", "ana@gmail.com", "x", "x"))
	assert.NoError(t, err)
}

func TestLogin(t *testing.T) {
	store := memstore.New()
	uc := newUC(store, "")
	ctx := context.Background()
	u, err := uc.RegisterUser(ctx, register("Ana", "ana@bonsono.com.br", "s3nha", "s3nha"))
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ANA@bonsono.com.br", Password: "s3nha"})
	require.NoError(t, err)
	userID, email, err := pkgjwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
	assert.Equal(t, "ana@bonsono.com.br", email)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@bonsono.com.br", Password: "errada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@bonsono.com.br", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.ToggleUser(ctx, u.ID)
	require.NoError(t, err)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@bonsono.com.br", Password: "s3nha"})
	assert.ErrorIs(t, err, domain.ErrForbidden, "usuario inactivo no inicia sesión")
}

func TestChangePasswordYListUsers(t *testing.T) {
	store := memstore.New()
	uc := newUC(store, "")
	ctx := context.Background()
	u, err := uc.RegisterUser(ctx, register("Bia", "bia@bonsono.com.br", "vieja", "vieja"))
	require.NoError(t, err)
	_, err = uc.RegisterUser(ctx, register("Ana", "ana@bonsono.com.br", "x", "x"))
	require.NoError(t, err)

	err = uc.ChangePassword(ctx, u.ID, dto.ChangePasswordRequest{NewPassword: "nueva", ConfirmPassword: "otra"})
	assert.ErrorIs(t, err, domain.ErrPasswordMismatch)

	require.NoError(t, uc.ChangePassword(ctx, u.ID, dto.ChangePasswordRequest{NewPassword: "nueva", ConfirmPassword: "nueva"}))
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "bia@bonsono.com.br", Password: "nueva"})
	assert.NoError(t, err)

	err = uc.ChangePassword(ctx, "no-existe", dto.ChangePasswordRequest{NewPassword: "a", ConfirmPassword: "a"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	users, err := uc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Ana", users[0].Name, "ordenados por nombre")
}
