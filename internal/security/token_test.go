package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenManager(t *testing.T) {
	manager := NewTokenManager("test-secret", 60, 10080)

	t.Run("AccessTokenRoundTrip", func(t *testing.T) {
		token, err := manager.GenerateAccessToken(7, "user@test.com")
		assert.NoError(t, err)

		claims, err := manager.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, int32(7), claims.UserID)
		assert.Equal(t, "user@test.com", claims.Email)
		assert.Equal(t, TokenTypeAccess, claims.Type)
	})

	t.Run("RefreshTokenCarriesType", func(t *testing.T) {
		token, err := manager.GenerateRefreshToken(7, "user@test.com")
		assert.NoError(t, err)

		claims, err := manager.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, TokenTypeRefresh, claims.Type)
	})

	t.Run("RejectsWrongSecret", func(t *testing.T) {
		other := NewTokenManager("other-secret", 60, 10080)
		token, err := other.GenerateAccessToken(7, "user@test.com")
		assert.NoError(t, err)

		_, err = manager.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("RejectsExpiredToken", func(t *testing.T) {
		expired := NewTokenManager("test-secret", 0, 0)
		token, err := expired.GenerateAccessToken(7, "user@test.com")
		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
		_, err = manager.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("RejectsGarbage", func(t *testing.T) {
		_, err := manager.ValidateToken("not.a.token")
		assert.Error(t, err)
	})
}
