package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/aticket/internal/shared/biztime"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "aticket", 30)

	token, exp, err := svc.Generate(7, "alice")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), exp, 5*time.Second)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "aticket", claims.Issuer)
}

func TestJWTService_Rejects(t *testing.T) {
	svc := NewJWTService("test-secret", "aticket", 30)
	good, _, err := svc.Generate(7, "alice")
	require.NoError(t, err)

	expired := NewJWTService("test-secret", "aticket", 1)
	expired.clock = biztime.FixedClock(time.Now().Add(-time.Hour))
	old, _, err := expired.Generate(7, "alice")
	require.NoError(t, err)

	otherIssuer, _, err := NewJWTService("test-secret", "someone-else", 30).Generate(7, "alice")
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 7, TokenType: TokenTypeAccess}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		svc   *JWTService
		token string
	}{
		{"garbage", svc, "not-a-token"},
		{"wrong secret", NewJWTService("other-secret", "aticket", 30), good},
		{"expired", svc, old},
		{"wrong issuer", svc, otherIssuer},
		{"alg none", svc, unsigned},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.svc.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
