package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/pkg/jwt"
)

const testSecret = "secreto-de-prueba"

func newSigner(t *testing.T) *jwt.Signer {
	t.Helper()
	s, err := jwt.NewSigner(testSecret, "bodega-api", 30*time.Minute)
	require.NoError(t, err)
	return s
}

func newUseCase(t *testing.T) *AuthUseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("clave123"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthUseCase(
		[]entity.Operator{{Username: "ana", Role: jwt.RoleBodeguero, PasswordHash: string(hash)}},
		newSigner(t),
	)
}

func TestLogin_OK(t *testing.T) {
	uc := newUseCase(t)

	out, err := uc.Login(dto.LoginRequest{Username: "ana", Password: "clave123"})
	require.NoError(t, err)
	assert.Equal(t, "ana", out.Username)
	assert.Equal(t, jwt.RoleBodeguero, out.Role)
	assert.Equal(t, 1800, out.ExpiresIn)

	claims, err := newSigner(t).Verify(out.Token)
	require.NoError(t, err)
	assert.Equal(t, "ana", claims.Subject)
	assert.Equal(t, jwt.RoleBodeguero, claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	uc := newUseCase(t)

	_, err := uc.Login(dto.LoginRequest{Username: "ana", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UnknownOperator(t *testing.T) {
	uc := newUseCase(t)

	_, err := uc.Login(dto.LoginRequest{Username: "luis", Password: "clave123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_InvalidInput(t *testing.T) {
	uc := newUseCase(t)

	_, err := uc.Login(dto.LoginRequest{Username: "ana"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("clave123")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("clave123")))

	_, err = HashPassword("")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
