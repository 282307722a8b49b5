package repository

import (
	"context"

	"fullapp/internal/domain/entity"

	"github.com/google/uuid"
)

// ProductRepository defines persistence for catalog products.
type ProductRepository interface {
	// List returns every product, oldest first.
	List(ctx context.Context) ([]*entity.Product, error)

	// FindByID returns ErrProductNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	Count(ctx context.Context) (int64, error)

	// Create persists a new product and fills in its id and timestamps.
	Create(ctx context.Context, product *entity.Product) error

	// Update overwrites the mutable fields of an existing product.
	Update(ctx context.Context, product *entity.Product) error

	// Delete removes the product; ErrProductNotFound when nothing was deleted.
	Delete(ctx context.Context, id uuid.UUID) error
}
