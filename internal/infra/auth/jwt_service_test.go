package auth

import (
	"testing"
	"time"

	"campus/config"
	"campus/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T, secret string) *jwtService {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = secret

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc.(*jwtService)
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	cfg := &config.Config{}

	svc, err := NewJWTService(cfg)
	assert.Nil(t, svc)
	assert.Error(t, err)
}

func TestJWTService_GenerateAndValidateRoundTrip(t *testing.T) {
	svc := newTestTokenService(t, "test-secret")

	user := &entity.User{
		ID:    uuid.New(),
		Email: "ada@example.com",
		Name:  "Ada",
		Role:  entity.RoleInstructor,
	}

	tokenString, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := svc.ValidateAccessToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, "INSTRUCTOR", claims.Role)
	assert.Equal(t, user.ID.String(), claims.Subject)
}

func TestJWTService_RejectsTokenSignedWithOtherSecret(t *testing.T) {
	issuer := newTestTokenService(t, "secret-one")
	verifier := newTestTokenService(t, "secret-two")

	tokenString, err := issuer.GenerateAccessToken(&entity.User{ID: uuid.New()})
	require.NoError(t, err)

	claims, err := verifier.ValidateAccessToken(tokenString)
	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test-secret"
	cfg.Auth = &config.AuthConfig{AccessTokenTTL: -time.Minute}

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	// Negative TTL falls back to the default, so force expiry directly.
	expired := svc.(*jwtService)
	expired.accessTTL = -time.Minute

	tokenString, err := expired.GenerateAccessToken(&entity.User{ID: uuid.New()})
	require.NoError(t, err)

	claims, err := expired.ValidateAccessToken(tokenString)
	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestJWTService_OpaqueTokensAreUniqueHex(t *testing.T) {
	svc := newTestTokenService(t, "test-secret")

	first, err := svc.NewOpaqueToken()
	require.NoError(t, err)
	second, err := svc.NewOpaqueToken()
	require.NoError(t, err)

	assert.Len(t, first, 80)
	assert.NotEqual(t, first, second)
}

func TestJWTService_HashTokenIsDeterministicDigest(t *testing.T) {
	svc := newTestTokenService(t, "test-secret")

	hash := svc.HashToken("raw-token")
	assert.Len(t, hash, 64)
	assert.Equal(t, hash, svc.HashToken("raw-token"))
	assert.NotEqual(t, hash, svc.HashToken("other-token"))
}
