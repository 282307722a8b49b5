package auth

import (
	"time"

	"fullapp/config"
	"fullapp/internal/domain/entity"
	domainerrors "fullapp/internal/domain/errors"
	"fullapp/internal/domain/service"
	"fullapp/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// jwtService is a concrete implementation of the TokenService interface using HS256 tokens.
type jwtService struct {
	key      []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

// NewJWTService is the constructor for jwtService.
// An empty signing key is a configuration error.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg == nil || cfg.JWT.Key == "" {
		return nil, domainerrors.ErrConfiguration.WrapMessage("jwt signing key must be provided")
	}

	return &jwtService{
		key:      []byte(cfg.JWT.Key),
		issuer:   cfg.JWT.Issuer,
		audience: cfg.JWT.Audience,
		ttl:      cfg.JWT.TTL,
		now:      time.Now,
	}, nil
}

// IssueToken creates a signed token carrying the user's id, email and role.
func (s *jwtService) IssueToken(userID uuid.UUID, email string, role entity.Role) (string, error) {
	now := s.now()
	claims := service.Claims{
		Email: email,
		Role:  role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}

	return signed, nil
}

// ValidateToken checks signature, algorithm, issuer, audience and expiry.
func (s *jwtService) ValidateToken(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	)

	token, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	})
	if err != nil {
		return nil, domainerrors.ErrInvalidToken.WithDetails(err.Error())
	}
	if !token.Valid {
		return nil, domainerrors.ErrInvalidToken
	}
	if _, err := claims.UserID(); err != nil {
		return nil, domainerrors.ErrInvalidToken.WithDetails("subject is not a user id")
	}

	return claims, nil
}
