package testutils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/linskybing/engagement-go/internal/config"
	"github.com/linskybing/engagement-go/internal/domain/user"
	"github.com/linskybing/engagement-go/pkg/types"
)

const TestJWTSecret = "test-secret"

// Token signs claims for actor the way the identity service would.
// Callers must have set config.JwtSecret (see UseTestSecret).
func Token(t testing.TB, actor user.Actor, ttl time.Duration) string {
	t.Helper()
	claims := &types.Claims{
		UserID:   actor.ID,
		Username: "user",
		Role:     actor.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    config.Issuer,
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(config.JwtSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

// UseTestSecret points config.JwtSecret at TestJWTSecret for the test.
func UseTestSecret(t testing.TB) {
	t.Helper()
	prev := config.JwtSecret
	config.JwtSecret = TestJWTSecret
	t.Cleanup(func() { config.JwtSecret = prev })
}
