package middleware

import (
	"strings"

	"fullapp/internal/domain/entity"
	domainerrors "fullapp/internal/domain/errors"
	"fullapp/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Context keys set by Authenticate.
const (
	ContextKeyUserID = "userID"
	ContextKeyEmail  = "email"
	ContextKeyRole   = "role"
)

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer token and stores the caller's identity on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return domainerrors.ErrUnauthorized.WithDetails("authorization header is missing")
		}

		scheme, tokenString, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tokenString) == "" {
			return domainerrors.ErrUnauthorized.WithDetails("authorization header must be a bearer token")
		}

		claims, err := m.tokenSvc.ValidateToken(strings.TrimSpace(tokenString))
		if err != nil {
			return domainerrors.ErrInvalidToken
		}

		userID, err := claims.UserID()
		if err != nil {
			return domainerrors.ErrInvalidToken
		}

		c.Set(ContextKeyUserID, userID)
		c.Set(ContextKeyEmail, claims.Email)
		c.Set(ContextKeyRole, entity.Role(claims.Role))

		return next(c)
	}
}

// RequireRole is a middleware factory that checks the caller's role.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := GetRole(c)
			if !ok || role != requiredRole {
				return domainerrors.ErrForbidden
			}

			return next(c)
		}
	}
}

// GetUserID returns the authenticated user's id.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(ContextKeyUserID).(uuid.UUID)

	return id, ok
}

// GetRole returns the authenticated user's role.
func GetRole(c echo.Context) (entity.Role, bool) {
	role, ok := c.Get(ContextKeyRole).(entity.Role)

	return role, ok
}
