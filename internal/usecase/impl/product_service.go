package impl

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	deliverycontext "fullapp/internal/delivery/context"
	"fullapp/internal/domain/entity"
	domainerrors "fullapp/internal/domain/errors"
	"fullapp/internal/domain/repository"
	"fullapp/internal/domain/service"
	"fullapp/internal/errors"
	"fullapp/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

type productService struct {
	txManager   repository.TransactionManager
	productRepo repository.ProductRepository
	publisher   service.EventPublisher
	logger      *slog.Logger
}

// ProductServiceParams holds dependencies for ProductService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ProductRepo repository.ProductRepository
	Publisher   service.EventPublisher
	Logger      *slog.Logger
}

// NewProductService creates the catalog use case.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		txManager:   params.TxManager,
		productRepo: params.ProductRepo,
		publisher:   params.Publisher,
		logger:      params.Logger,
	}
}

func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// maxProductPrice is the first value a NUMERIC(18,2) price column cannot hold.
var maxProductPrice = decimal.New(1, 16)

const maxProductNameLength = 200

func validateProductInput(input *usecase.ProductInput) error {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return domainerrors.ErrValidationFailed.WithDetails("name is required")
	}
	if utf8.RuneCountInString(input.Name) > maxProductNameLength {
		return domainerrors.ErrValidationFailed.WithDetails("name must be at most 200 characters")
	}
	if input.Price.IsNegative() {
		return domainerrors.ErrValidationFailed.WithDetails("price must not be negative")
	}
	if input.Price.Round(2).GreaterThanOrEqual(maxProductPrice) {
		return domainerrors.ErrValidationFailed.WithDetails("price must be less than 10000000000000000")
	}
	if input.Stock < 0 {
		return domainerrors.ErrValidationFailed.WithDetails("stock must not be negative")
	}

	return nil
}

func (srv *productService) List(ctx context.Context) ([]*entity.Product, error) {
	return srv.productRepo.List(ctx)
}

func (srv *productService) Get(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return srv.productRepo.FindByID(ctx, id)
}

func (srv *productService) Create(ctx context.Context, createdBy uuid.UUID, input usecase.ProductInput) (*entity.Product, error) {
	if err := validateProductInput(&input); err != nil {
		return nil, err
	}

	product := &entity.Product{
		Name:            input.Name,
		Description:     input.Description,
		Price:           input.Price.Round(2),
		Stock:           input.Stock,
		CreatedByUserID: createdBy,
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		srv.log(ctx).Error("Failed to create product", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.log(ctx).Info("Product created", slog.Any("productID", product.ID), slog.Any("createdBy", createdBy))
	publishEvent(ctx, srv.publisher, srv.log(ctx), service.EventProductCreated, product.ID.String(), map[string]any{
		"name":  product.Name,
		"price": product.Price.StringFixed(2),
		"stock": product.Stock,
	})

	return product, nil
}

// Update replaces the writable fields inside a transaction so the existence check and write agree.
func (srv *productService) Update(ctx context.Context, id uuid.UUID, input usecase.ProductInput) error {
	if err := validateProductInput(&input); err != nil {
		return err
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		existing, err := productRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		existing.Name = input.Name
		existing.Description = input.Description
		existing.Price = input.Price.Round(2)
		existing.Stock = input.Stock

		return productRepo.Update(ctx, existing)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrProductNotFound) {
			return err
		}

		return errors.Wrap(err, "failed to update product")
	}

	srv.log(ctx).Info("Product updated", slog.Any("productID", id))
	publishEvent(ctx, srv.publisher, srv.log(ctx), service.EventProductUpdated, id.String(), map[string]any{
		"name":  input.Name,
		"price": input.Price.StringFixed(2),
		"stock": input.Stock,
	})

	return nil
}

func (srv *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := srv.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	srv.log(ctx).Info("Product deleted", slog.Any("productID", id))
	publishEvent(ctx, srv.publisher, srv.log(ctx), service.EventProductDeleted, id.String(), nil)

	return nil
}
