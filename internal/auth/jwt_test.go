package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SangamithraMB/Sport-buddy-backend/internal/domain"
)

func TestNewTokenManager_RequiresSecret(t *testing.T) {
	_, err := NewTokenManager("", time.Hour)
	assert.Error(t, err)
}

func TestTokenManager_RoundTrip(t *testing.T) {
	m, err := NewTokenManager("secret", time.Hour)
	require.NoError(t, err)

	user := &domain.User{ID: 7, Username: "alice", FirstName: "Alice"}
	token, err := m.Issue(user)
	require.NoError(t, err)

	identity, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), identity.UserID)
	assert.Equal(t, "alice", identity.Username)
	assert.Equal(t, "Alice", identity.DisplayName)
}

func TestTokenManager_DisplayNameFallsBackToUsername(t *testing.T) {
	m, err := NewTokenManager("secret", time.Hour)
	require.NoError(t, err)

	token, err := m.Issue(&domain.User{ID: 1, Username: "bob"})
	require.NoError(t, err)

	identity, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "bob", identity.DisplayName)
}

func TestTokenManager_VerifyRejectsGarbage(t *testing.T) {
	m, err := NewTokenManager("secret", time.Hour)
	require.NoError(t, err)

	for _, token := range []string{"", "not.a.token", "aaaa.bbbb.cccc"} {
		_, err := m.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestTokenManager_VerifyRejectsWrongSecret(t *testing.T) {
	issuer, err := NewTokenManager("secret-one", time.Hour)
	require.NoError(t, err)
	verifier, err := NewTokenManager("secret-two", time.Hour)
	require.NoError(t, err)

	token, err := issuer.Issue(&domain.User{ID: 1, Username: "alice"})
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_VerifyRejectsExpired(t *testing.T) {
	m, err := NewTokenManager("secret", time.Hour)
	require.NoError(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1,
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	token, err := expired.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, CheckPassword(hash, "correct horse battery staple"))
	assert.False(t, CheckPassword(hash, "wrong password"))
}
