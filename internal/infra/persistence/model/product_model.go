package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel mirrors the 'products' table.
type ProductModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name            string          `gorm:"type:varchar(200);not null"`
	Description     string          `gorm:"type:text;not null;default:''"`
	Price           decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Stock           int             `gorm:"not null"`
	CreatedByUserID uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
