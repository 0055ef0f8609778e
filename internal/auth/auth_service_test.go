package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndValidate(t *testing.T) {
	svc, err := NewAuthService("secret", time.Hour)
	require.NoError(t, err)

	token, err := svc.IssueToken("sess-1")
	require.NoError(t, err)

	id, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", id)
}

func TestValidateRejectsOtherSecret(t *testing.T) {
	a, _ := NewAuthService("secret-a", time.Hour)
	b, _ := NewAuthService("secret-b", time.Hour)

	token, err := a.IssueToken("sess-1")
	require.NoError(t, err)

	_, err = b.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpired(t *testing.T) {
	svc, _ := NewAuthService("secret", time.Hour)
	claims := TokenClaims{
		SessionID: "sess-1",
		TokenType: tokenTypeSession,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsNoneAlgorithm(t *testing.T) {
	svc, _ := NewAuthService("secret", time.Hour)
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, TokenClaims{SessionID: "x", TokenType: tokenTypeSession}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestNewAuthServiceValidates(t *testing.T) {
	_, err := NewAuthService("", time.Hour)
	assert.Error(t, err)
	_, err = NewAuthService("s", 0)
	assert.Error(t, err)
}
