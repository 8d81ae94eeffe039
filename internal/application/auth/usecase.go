package auth

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// TokenSigner emite los tokens de operador (lo implementa *jwt.Signer).
type TokenSigner interface {
	Sign(subject, role string) (string, error)
	TTL() time.Duration
}

// AuthUseCase login de operadores declarados en configuración.
type AuthUseCase struct {
	operators map[string]entity.Operator
	tokens    TokenSigner
}

// NewAuthUseCase construye el caso de uso de auth. Un username repetido conserva el último.
func NewAuthUseCase(operators []entity.Operator, tokens TokenSigner) *AuthUseCase {
	m := make(map[string]entity.Operator, len(operators))
	for _, op := range operators {
		m[op.Username] = op
	}
	return &AuthUseCase{operators: m, tokens: tokens}
}

// Login verifica username/password y genera el JWT. Usuario desconocido y password
// incorrecto devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	op, ok := uc.operators[in.Username]
	if !ok {
		log.Debug().Str("username", in.Username).Msg("login: operador desconocido")
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(in.Password)); err != nil {
		log.Debug().Str("username", in.Username).Msg("login: password incorrecto")
		return nil, domain.ErrUnauthorized
	}
	token, err := uc.tokens.Sign(op.Username, op.Role)
	if err != nil {
		return nil, fmt.Errorf("generar token: %w", err)
	}
	return &dto.LoginResponse{
		Token:     token,
		Username:  op.Username,
		Role:      op.Role,
		ExpiresIn: int(uc.tokens.TTL().Seconds()),
	}, nil
}

// HashPassword genera el hash bcrypt para declarar un operador en AUTH_OPERATORS.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: password vacío", domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
