package usecase

import "context"

// SeedResult reports what a seed run inserted.
type SeedResult struct {
	AdminCreated    bool
	ProductsCreated int
}

// SeedUsecase populates an empty database with the initial admin and sample products.
type SeedUsecase interface {
	// Seed is idempotent: tables that already hold rows are left alone.
	Seed(ctx context.Context) (*SeedResult, error)
}
