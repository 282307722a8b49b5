package auth

import (
	"testing"
	"time"

	"fullapp/config"
	"fullapp/internal/domain/entity"
	domainerrors "fullapp/internal/domain/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSigningKey = "test-signing-key-with-enough-length-0123456789"

func newTestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Key:      testSigningKey,
			Issuer:   "FullApp.Api",
			Audience: "FullApp.Client",
			TTL:      time.Hour,
		},
	}
}

func newTestJWTService(t *testing.T, cfg *config.Config) *jwtService {
	t.Helper()

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	impl, ok := svc.(*jwtService)
	require.True(t, ok)

	return impl
}

func TestNewJWTService_RequiresKey(t *testing.T) {
	cfg := newTestConfig()
	cfg.JWT.Key = ""

	svc, err := NewJWTService(cfg)
	assert.Nil(t, svc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrConfiguration))
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	svc := newTestJWTService(t, newTestConfig())
	userID := uuid.Must(uuid.NewV7())

	token, err := svc.IssueToken(userID, "alice@example.com", entity.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)

	gotID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, gotID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "Admin", claims.Role)
	assert.Equal(t, "FullApp.Api", claims.Issuer)
	assert.Equal(t, jwt.ClaimStrings{"FullApp.Client"}, claims.Audience)
	assert.NotEmpty(t, claims.ID)
	require.NotNil(t, claims.ExpiresAt)
	require.NotNil(t, claims.IssuedAt)
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestJWTService_UniqueTokenIDs(t *testing.T) {
	svc := newTestJWTService(t, newTestConfig())
	userID := uuid.Must(uuid.NewV7())

	first, err := svc.IssueToken(userID, "a@example.com", entity.RoleUser)
	require.NoError(t, err)
	second, err := svc.IssueToken(userID, "a@example.com", entity.RoleUser)
	require.NoError(t, err)

	c1, err := svc.ValidateToken(first)
	require.NoError(t, err)
	c2, err := svc.ValidateToken(second)
	require.NoError(t, err)
	assert.NotEqual(t, c1.ID, c2.ID)
}

func TestJWTService_Rejects(t *testing.T) {
	userID := uuid.Must(uuid.NewV7())
	issuer := newTestJWTService(t, newTestConfig())

	expired := newTestJWTService(t, newTestConfig())
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.IssueToken(userID, "a@example.com", entity.RoleUser)
	require.NoError(t, err)

	otherAudCfg := newTestConfig()
	otherAudCfg.JWT.Audience = "Someone.Else"
	otherAud, err := newTestJWTService(t, otherAudCfg).IssueToken(userID, "a@example.com", entity.RoleUser)
	require.NoError(t, err)

	otherIssCfg := newTestConfig()
	otherIssCfg.JWT.Issuer = "Someone.Else"
	otherIss, err := newTestJWTService(t, otherIssCfg).IssueToken(userID, "a@example.com", entity.RoleUser)
	require.NoError(t, err)

	otherKeyCfg := newTestConfig()
	otherKeyCfg.JWT.Key = "a-completely-different-signing-key-0123456789"
	otherKey, err := newTestJWTService(t, otherKeyCfg).IssueToken(userID, "a@example.com", entity.RoleUser)
	require.NoError(t, err)

	registered := jwt.RegisteredClaims{
		Subject:   userID.String(),
		Issuer:    "FullApp.Api",
		Audience:  jwt.ClaimStrings{"FullApp.Client"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, registered).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, registered).SignedString([]byte(testSigningKey))
	require.NoError(t, err)

	noExpiry := registered
	noExpiry.ExpiresAt = nil
	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, noExpiry).SignedString([]byte(testSigningKey))
	require.NoError(t, err)

	badSubject := registered
	badSubject.Subject = "not-a-uuid"
	badSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, badSubject).SignedString([]byte(testSigningKey))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "expired", token: expiredToken},
		{name: "wrong audience", token: otherAud},
		{name: "wrong issuer", token: otherIss},
		{name: "wrong key", token: otherKey},
		{name: "alg none", token: unsigned},
		{name: "unexpected alg", token: hs512},
		{name: "missing expiry", token: noExp},
		{name: "subject not a uuid", token: badSub},
		{name: "garbage", token: "not.a.token"},
		{name: "empty", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := issuer.ValidateToken(tt.token)
			assert.Nil(t, claims)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
		})
	}
}
