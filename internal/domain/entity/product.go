package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog item managed through the products API.
type Product struct {
	ID              uuid.UUID
	Name            string
	Description     string
	Price           decimal.Decimal // Exact decimal, never float.
	Stock           int
	CreatedByUserID uuid.UUID // Not enforced as a foreign key.
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
