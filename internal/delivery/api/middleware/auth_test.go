package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"fullapp/internal/domain/entity"
	domainerrors "fullapp/internal/domain/errors"
	"fullapp/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) IssueToken(userID uuid.UUID, email string, role entity.Role) (string, error) {
	args := m.Called(userID, email, role)

	return args.String(0), args.Error(1)
}

func (m *mockTokenService) ValidateToken(token string) (*service.Claims, error) {
	args := m.Called(token)
	claims, _ := args.Get(0).(*service.Claims)

	return claims, args.Error(1)
}

func runAuth(t *testing.T, mw echo.MiddlewareFunc, header string, next echo.HandlerFunc) error {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	c := echo.New().NewContext(req, httptest.NewRecorder())

	return mw(next)(c)
}

func TestAuthenticate(t *testing.T) {
	userID := uuid.Must(uuid.NewV7())
	tokens := new(mockTokenService)
	tokens.On("ValidateToken", "good").Return(&service.Claims{
		Email:            "a@example.com",
		Role:             entity.RoleAdmin.String(),
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID.String()},
	}, nil)
	tokens.On("ValidateToken", "bad-subject").Return(&service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "nope"},
	}, nil)
	tokens.On("ValidateToken", "expired").Return(nil, domainerrors.ErrInvalidToken.WithDetails("token is expired"))

	mw := NewAuthMiddleware(tokens)

	t.Run("valid bearer token", func(t *testing.T) {
		called := false
		err := runAuth(t, mw.Authenticate, "bearer good", func(c echo.Context) error {
			called = true
			id, ok := GetUserID(c)
			require.True(t, ok)
			assert.Equal(t, userID, id)
			role, ok := GetRole(c)
			require.True(t, ok)
			assert.Equal(t, entity.RoleAdmin, role)
			assert.Equal(t, "a@example.com", c.Get(ContextKeyEmail))

			return nil
		})
		require.NoError(t, err)
		assert.True(t, called)
	})

	rejected := []struct {
		name   string
		header string
		want   error
	}{
		{name: "missing header", header: "", want: domainerrors.ErrUnauthorized},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", want: domainerrors.ErrUnauthorized},
		{name: "bearer without token", header: "Bearer  ", want: domainerrors.ErrUnauthorized},
		{name: "expired token", header: "Bearer expired", want: domainerrors.ErrInvalidToken},
		{name: "subject not a uuid", header: "Bearer bad-subject", want: domainerrors.ErrInvalidToken},
	}
	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			err := runAuth(t, mw.Authenticate, tt.header, func(echo.Context) error {
				t.Fatal("next must not run")

				return nil
			})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRequireRole(t *testing.T) {
	mw := NewAuthMiddleware(new(mockTokenService))

	tests := []struct {
		name    string
		role    any
		wantErr error
	}{
		{name: "matching role", role: entity.RoleAdmin},
		{name: "other role", role: entity.RoleUser, wantErr: domainerrors.ErrForbidden},
		{name: "not authenticated", role: nil, wantErr: domainerrors.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := echo.New().NewContext(httptest.NewRequest(http.MethodDelete, "/", nil), httptest.NewRecorder())
			if tt.role != nil {
				c.Set(ContextKeyRole, tt.role)
			}

			err := mw.RequireRole(entity.RoleAdmin)(func(echo.Context) error { return nil })(c)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
