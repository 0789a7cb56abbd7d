package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret")

	token, err := tm.GenerateToken("user-1", "user@example.com", time.Minute)
	assert.NoError(t, err)

	claims, err := tm.ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.SubjectID)
	assert.Equal(t, "user@example.com", claims.Email)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a").GenerateToken("user-1", "", time.Minute)
	assert.NoError(t, err)

	_, err = NewTokenManager("secret-b").ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	tm := NewTokenManager("test-secret")
	token, err := tm.GenerateToken("user-1", "", -time.Minute)
	assert.NoError(t, err)

	_, err = tm.ParseToken(token)
	assert.Error(t, err)
}
