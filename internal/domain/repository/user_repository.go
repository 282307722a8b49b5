// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"fullapp/internal/domain/entity"

	"github.com/google/uuid"
)

// UserRepository defines the standard operations for user persistence.
// Lookups by email expect an already normalized address; implementations normalize again on write.
type UserRepository interface {
	// FindByID returns ErrUserNotFound when no user has the given id.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail returns ErrUserNotFound when absent and ErrDataIntegrity when
	// more than one row carries the address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// ExistsByEmail reports whether any user has the address.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Count returns the number of stored users.
	Count(ctx context.Context) (int64, error)

	// Create persists a new user and fills in its id and timestamps.
	// A unique-index violation is reported as ErrUserAlreadyExists.
	Create(ctx context.Context, user *entity.User) error
}
