// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"fullapp/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
// Role is only honoured for trusted callers such as the seeder; the HTTP layer never sets it.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Role     entity.Role
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// LoginOutput carries the bearer token issued after a successful login.
type LoginOutput struct {
	Token string
	User  *entity.User
}

// UserUsecase defines the credential operations.
// Every returned user has its password hash stripped.
type UserUsecase interface {
	// Register creates a new account. Fails with ErrValidationFailed or ErrUserAlreadyExists.
	Register(ctx context.Context, input RegisterInput) (*entity.User, error)

	// Authenticate verifies a credential pair. Unknown email and wrong password
	// both fail with ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string) (*entity.User, error)

	// Login authenticates and issues a token.
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)

	// GetByID loads a user profile.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}
