package postgres

import (
	"context"

	"fullapp/internal/domain/entity"
	domainerrors "fullapp/internal/domain/errors"
	"fullapp/internal/domain/repository"
	"fullapp/internal/errors"
	"fullapp/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a product repository on the given connection or transaction.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (repo *productRepository) List(ctx context.Context) ([]*entity.Product, error) {
	var rows []model.ProductModel
	if err := repo.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(rows))
	for i := range rows {
		products = append(products, toProductDomain(&rows[i]))
	}

	return products, nil
}

func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).Take(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find product")
	}

	return toProductDomain(&productM), nil
}

func (repo *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.ProductModel{}).Count(&count).Error; err != nil {
		return 0, domainerrors.NewDatabaseExecuteError(err, "failed to count products")
	}

	return count, nil
}

func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "generate product id")
		}
		product.ID = id
	}

	productM := fromProductDomain(product)
	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		return translateProductWriteError(err, "failed to create product")
	}

	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// Update writes name, description, price and stock. Ownership and creation time are immutable.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"name":        product.Name,
			"description": product.Description,
			"price":       product.Price,
			"stock":       product.Stock,
		})
	if result.Error != nil {
		return translateProductWriteError(result.Error, "failed to update product")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrProductNotFound
	}

	return nil
}

func (repo *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ProductModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete product")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrProductNotFound
	}

	return nil
}

func translateProductWriteError(err error, details string) error {
	if isCheckConstraintViolation(err) || isNotNullConstraintViolation(err) {
		return domainerrors.ErrValidationFailed.WithDetails("product violates a store constraint")
	}
	if isValueOutOfRange(err) {
		return domainerrors.ErrValidationFailed.WithDetails("product field exceeds the stored range")
	}

	return domainerrors.NewDatabaseExecuteError(err, details)
}

func toProductDomain(data *model.ProductModel) *entity.Product {
	return &entity.Product{
		ID:              data.ID,
		Name:            data.Name,
		Description:     data.Description,
		Price:           data.Price,
		Stock:           data.Stock,
		CreatedByUserID: data.CreatedByUserID,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func fromProductDomain(data *entity.Product) *model.ProductModel {
	return &model.ProductModel{
		ID:              data.ID,
		Name:            data.Name,
		Description:     data.Description,
		Price:           data.Price,
		Stock:           data.Stock,
		CreatedByUserID: data.CreatedByUserID,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}
