package usecase

import (
	"context"

	"fullapp/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductInput holds the writable fields of a product.
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
}

// ProductUsecase defines catalog operations. Authorization is enforced by the delivery layer.
type ProductUsecase interface {
	List(ctx context.Context) ([]*entity.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// Create records createdBy as the product owner.
	Create(ctx context.Context, createdBy uuid.UUID, input ProductInput) (*entity.Product, error)
	Update(ctx context.Context, id uuid.UUID, input ProductInput) error
	Delete(ctx context.Context, id uuid.UUID) error
}
