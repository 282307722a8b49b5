package service

import (
	"fullapp/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims for the JWT tokens.
// The user id travels in the registered "sub" claim.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim.
func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// TokenService defines the interface for issuing and validating bearer tokens.
type TokenService interface {
	// IssueToken signs a token for the given identity.
	IssueToken(userID uuid.UUID, email string, role entity.Role) (string, error)

	// ValidateToken verifies signature, issuer, audience and expiry.
	ValidateToken(tokenString string) (*Claims, error)
}
