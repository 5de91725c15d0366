package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testIdentity = IdentityClaims{
	UserID: "64b7f0c2e1a4b2c3d4e5f601",
	Email:  "alice@example.com",
	Name:   "Alice",
	Role:   "user",
}

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	svc, err := NewTokenService("test_secret_key", time.Hour, "notes-manager")
	require.NoError(t, err)
	return svc
}

func TestNewTokenService_RequiresSecret(t *testing.T) {
	_, err := NewTokenService("", time.Hour, "notes-manager")
	assert.Error(t, err)

	_, err = NewTokenService("secret", 0, "notes-manager")
	assert.Error(t, err)
}

func TestTokenService_IssueVerify(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.Issue(testIdentity)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, testIdentity, claims.IdentityClaims)
	assert.Equal(t, "notes-manager", claims.Issuer)
	assert.Equal(t, testIdentity.UserID, claims.Subject)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenService_VerifyRejects(t *testing.T) {
	svc := newTestTokenService(t)

	expired := newTestTokenService(t)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.Issue(testIdentity)
	require.NoError(t, err)

	other, err := NewTokenService("another_secret", time.Hour, "notes-manager")
	require.NoError(t, err)
	wrongSig, err := other.Issue(testIdentity)
	require.NoError(t, err)

	foreign, err := NewTokenService("test_secret_key", time.Hour, "someone-else")
	require.NoError(t, err)
	wrongIssuer, err := foreign.Issue(testIdentity)
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{IdentityClaims: testIdentity}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		IdentityClaims: testIdentity,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "notes-manager",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("test_secret_key"))
	require.NoError(t, err)

	noUser, err := svc.Issue(IdentityClaims{Email: "x@example.com"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{"expired", expiredToken},
		{"wrong signature", wrongSig},
		{"wrong issuer", wrongIssuer},
		{"alg none", noneAlg},
		{"unexpected alg", hs512},
		{"missing user id", noUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}
