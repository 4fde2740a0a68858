package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndValidateToken(t *testing.T) {
	subject := TokenSubject{
		UserID:    "user-1",
		Username:  "somchai",
		Email:     "somchai@example.com",
		FirstName: "Somchai",
		LastName:  "Jaidee",
		Role:      "user",
	}

	token, expiresAt, err := GenerateToken(subject, testSecret, time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	user, err := ValidateToken("Bearer "+token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "somchai", user.Username)
	assert.Equal(t, "Somchai", user.FirstName)
	assert.Equal(t, "Jaidee", user.LastName)
	assert.NotEmpty(t, user.TokenID)
	assert.WithinDuration(t, expiresAt, user.ExpiresAt, time.Second)

	exp, err := TokenExpiry(token)
	require.NoError(t, err)
	assert.WithinDuration(t, expiresAt, exp, time.Second)
}

func TestGenerateTokenUniqueIDs(t *testing.T) {
	subject := TokenSubject{UserID: "user-1"}
	a, _, err := GenerateToken(subject, testSecret, time.Hour)
	require.NoError(t, err)
	b, _, err := GenerateToken(subject, testSecret, time.Hour)
	require.NoError(t, err)

	ua, err := ValidateToken(a, testSecret)
	require.NoError(t, err)
	ub, err := ValidateToken(b, testSecret)
	require.NoError(t, err)
	assert.NotEqual(t, ua.TokenID, ub.TokenID)
}

func TestValidateTokenErrors(t *testing.T) {
	valid, _, err := GenerateToken(TokenSubject{UserID: "user-1"}, testSecret, time.Hour)
	require.NoError(t, err)
	expired, _, err := GenerateToken(TokenSubject{UserID: "user-1"}, testSecret, -time.Minute)
	require.NoError(t, err)
	noUser, _, err := GenerateToken(TokenSubject{}, testSecret, time.Hour)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, JWTClaims{UserID: "user-1"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret string
		want   error
	}{
		{"empty", "", testSecret, ErrMissingToken},
		{"bearer only", "Bearer ", testSecret, ErrMissingToken},
		{"wrong secret", valid, "other-secret", ErrInvalidToken},
		{"expired", expired, testSecret, ErrExpiredToken},
		{"garbage", "not.a.token", testSecret, ErrInvalidToken},
		{"no user id", noUser, testSecret, ErrInvalidToken},
		{"alg none", unsigned, testSecret, ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateToken(tt.token, tt.secret)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc", ExtractTokenFromHeader("Bearer abc"))
	assert.Empty(t, ExtractTokenFromHeader("Basic abc"))
	assert.Empty(t, ExtractTokenFromHeader("Bearer"))
	assert.Empty(t, ExtractTokenFromHeader(""))
}

func TestGenerateOAuthState(t *testing.T) {
	a := GenerateOAuthState()
	b := GenerateOAuthState()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
