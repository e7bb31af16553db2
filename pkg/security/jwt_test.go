package security_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/meukanban/kanban-api/pkg/security"
)

func newKeyManager(t *testing.T) *security.KeyManager {
	t.Setenv("JWT_SECRET_KEY", "um-segredo-de-teste-com-mais-de-32-bytes")

	km, err := security.NewKeyManager(zaptest.NewLogger(t))
	require.NoError(t, err)
	return km
}

func TestGenerateAndVerifyToken(t *testing.T) {
	km := newKeyManager(t)

	token, err := km.GenerateToken("u1", "maria@example.com", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := km.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "maria@example.com", claims.Email)
}

func TestVerifyExpiredToken(t *testing.T) {
	km := newKeyManager(t)

	token, err := km.GenerateToken("u1", "maria@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = km.VerifyToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expirado")
}

func TestVerifyGarbageToken(t *testing.T) {
	km := newKeyManager(t)

	_, err := km.VerifyToken("isto.não.é-um-token")
	assert.Error(t, err)
}

func TestShortSecretIsRejected(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "curta")

	_, err := security.NewKeyManager(zaptest.NewLogger(t))
	assert.Error(t, err)
}
