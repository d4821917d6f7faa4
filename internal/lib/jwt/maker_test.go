package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret_key_1234567890"

func TestJWTMaker_GenerateAndParseToken(t *testing.T) {
	tokenTTL := 15 * time.Minute
	maker := NewJWTMaker(testSecret, tokenTTL)

	tests := []struct {
		name    string
		userUID string
		email   string
	}{
		{name: "regular user", userUID: "0b6f1c1e-8a51-4f0e-9a55-2c3c8c2d1f10", email: "ana@example.com"},
		{name: "plus address", userUID: "5d1b7f4e-1111-4c2e-8f0e-000000000001", email: "joao+quiz@example.com.br"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := maker.GenerateToken(tt.userUID, tt.email)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			claims, err := maker.ParseToken(token)
			require.NoError(t, err)

			assert.Equal(t, tt.userUID, claims.UserUID)
			assert.Equal(t, tt.email, claims.Email)
			assert.Equal(t, tt.userUID, claims.Subject)
			assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, time.Second)
			assert.WithinDuration(t, time.Now().Add(tokenTTL), claims.ExpiresAt.Time, time.Second)
		})
	}
}

func TestJWTMaker_ParseToken_InvalidTokens(t *testing.T) {
	maker := NewJWTMaker(testSecret, 15*time.Minute)

	validToken, err := maker.GenerateToken("u-1", "ana@example.com")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "malformed token", token: "invalid.token.here"},
		{name: "expired token", token: mustToken(t, NewJWTMaker(testSecret, -time.Hour), "u-1")},
		{name: "wrong secret key", token: mustToken(t, NewJWTMaker("wrong_secret_key", time.Hour), "u-1")},
		{name: "tampered token", token: validToken + "tampered"},
		{name: "missing user uid", token: mustToken(t, maker, "")},
		{name: "unexpected algorithm", token: signedWith(t, jwt.SigningMethodHS512)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.ParseToken(tt.token)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidToken))
			assert.Nil(t, claims)
		})
	}
}

func TestJWTMaker_TokenExpiration(t *testing.T) {
	maker := NewJWTMaker(testSecret, time.Minute)
	issued := time.Now().Add(-2 * time.Minute)
	maker.now = func() time.Time { return issued }

	token, err := maker.GenerateToken("u-1", "ana@example.com")
	require.NoError(t, err)

	_, err = maker.ParseToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func mustToken(t *testing.T, m *MakerImpl, userUID string) string {
	t.Helper()
	token, err := m.GenerateToken(userUID, "ana@example.com")
	require.NoError(t, err)
	return token
}

func signedWith(t *testing.T, method jwt.SigningMethod) string {
	t.Helper()
	claims := Claims{
		UserUID: "u-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}
