package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSigner(t *testing.T, secret, issuer string) *Signer {
	t.Helper()
	s, err := NewSigner(secret, issuer, 5*time.Minute)
	require.NoError(t, err)
	return s
}

func TestSignVerify(t *testing.T) {
	s := newSigner(t, "secret", "bodega-api")

	tok, err := s.Sign("ana", RoleBodeguero)
	require.NoError(t, err)

	claims, err := s.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "ana", claims.Subject)
	assert.Equal(t, RoleBodeguero, claims.Role)
	assert.Equal(t, "bodega-api", claims.Issuer)
	assert.Equal(t, 5*time.Minute, s.TTL())
}

func TestVerify_FirmaIncorrecta(t *testing.T) {
	tok, err := newSigner(t, "secret", "bodega-api").Sign("ana", RoleAdmin)
	require.NoError(t, err)

	_, err = newSigner(t, "otro", "bodega-api").Verify(tok)
	assert.Error(t, err)
}

func TestVerify_OtroEmisor(t *testing.T) {
	tok, err := newSigner(t, "secret", "otra-api").Sign("ana", RoleAdmin)
	require.NoError(t, err)

	_, err = newSigner(t, "secret", "bodega-api").Verify(tok)
	assert.Error(t, err)

	_, err = newSigner(t, "secret", "").Verify(tok)
	assert.NoError(t, err, "sin emisor configurado no se verifica")
}

func TestVerify_Expirado(t *testing.T) {
	s := newSigner(t, "secret", "bodega-api")
	s.now = func() time.Time { return time.Now().Add(-time.Hour) }
	tok, err := s.Sign("ana", RoleAdmin)
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.Verify(tok)
	assert.Error(t, err)
}

func TestNewSigner_Invalido(t *testing.T) {
	_, err := NewSigner("", "i", time.Minute)
	assert.ErrorIs(t, err, ErrEmptySecret)
	_, err = NewSigner("s", "i", 0)
	assert.Error(t, err)
}
