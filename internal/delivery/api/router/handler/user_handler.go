// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"fullapp/internal/delivery/api/middleware"
	"fullapp/internal/delivery/api/response"
	"fullapp/internal/domain/entity"
	domainerrors "fullapp/internal/domain/errors"
	"fullapp/internal/errors"
	"fullapp/internal/infra/metrics"
	"fullapp/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=320"`
	Password string `json:"password" validate:"required,max=72"`
	FullName string `json:"fullName" validate:"max=200"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the public view of a user. It never carries the password hash.
type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"fullName"`
	Role     string    `json:"role"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	Token string `json:"token"`
}

func toUserResponse(user *entity.User) *UserResponse {
	return &UserResponse{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.Role.String(),
	}
}

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: logger,
	}
}

// Register handles the user registration request. The role is always User.
// The auth endpoints answer with the bare payload; failures still use the envelope.
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues(metrics.ResultInvalid).Inc()

		return response.BindingError(c, "Invalid registration input")
	}
	req.Email = strings.TrimSpace(req.Email)
	if err := c.Validate(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues(metrics.ResultInvalid).Inc()

		return err
	}

	user, err := h.uc.Register(c.Request().Context(), usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(registrationResult(err)).Inc()

		return errors.WithStack(err)
	}
	metrics.RegistrationsTotal.WithLabelValues(metrics.ResultSuccess).Inc()

	return response.Payload(c, http.StatusCreated, toUserResponse(user))
}

// Login handles the user login request.
func (h *UserHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.ResultInvalid).Inc()

		return response.BindingError(c, "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.ResultInvalid).Inc()

		return err
	}

	output, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()

		return errors.WithStack(err)
	}
	metrics.LoginsTotal.WithLabelValues(metrics.ResultSuccess).Inc()

	return response.Payload(c, http.StatusOK, TokenResponse{Token: output.Token})
}

// Me returns the profile of the authenticated caller.
func (h *UserHandler) Me(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	user, err := h.uc.GetByID(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Payload(c, http.StatusOK, toUserResponse(user))
}

func registrationResult(err error) string {
	switch {
	case errors.Is(err, domainerrors.ErrUserAlreadyExists):
		return metrics.ResultDuplicate
	case errors.Is(err, domainerrors.ErrValidationFailed):
		return metrics.ResultInvalid
	default:
		return metrics.ResultError
	}
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domainerrors.ErrInvalidCredentials):
		return metrics.ResultFailed
	case errors.Is(err, domainerrors.ErrValidationFailed):
		return metrics.ResultInvalid
	default:
		return metrics.ResultError
	}
}
