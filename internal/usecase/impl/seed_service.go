package impl

import (
	"context"
	"log/slog"

	"fullapp/config"
	"fullapp/internal/domain/entity"
	domainerrors "fullapp/internal/domain/errors"
	"fullapp/internal/domain/repository"
	"fullapp/internal/domain/service"
	"fullapp/internal/errors"
	"fullapp/internal/infra/metrics"
	"fullapp/internal/usecase"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// seedLockKey names the advisory lock that serializes concurrent seeders.
const seedLockKey = "fullapp:seed"

type sampleProduct struct {
	name        string
	description string
	price       string
	stock       int
}

var sampleProducts = []sampleProduct{
	{name: "Sample Product 1", description: "First sample", price: "9.99", stock: 10},
	{name: "Sample Product 2", description: "Second sample", price: "19.99", stock: 5},
}

type seedService struct {
	txManager repository.TransactionManager
	hasher    service.PasswordHasher
	cfg       *config.SeedConfig
	logger    *slog.Logger
}

// SeedServiceParams holds dependencies for SeedService, injected by Fx.
type SeedServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Hasher    service.PasswordHasher
	Config    *config.Config
	Logger    *slog.Logger
}

// NewSeedService creates the startup seeder.
func NewSeedService(params SeedServiceParams) usecase.SeedUsecase {
	cfg := params.Config.Seed
	if cfg == nil {
		cfg = &config.SeedConfig{}
	}

	return &seedService{
		txManager: params.TxManager,
		hasher:    params.Hasher,
		cfg:       cfg,
		logger:    params.Logger,
	}
}

// Seed inserts the admin when there are no users and the sample products when there are no products.
// Both checks run in one transaction holding an advisory lock, so parallel starts insert once.
func (srv *seedService) Seed(ctx context.Context) (*usecase.SeedResult, error) {
	result := &usecase.SeedResult{}
	if !srv.cfg.Enabled {
		srv.logger.Info("Seeding disabled")

		return result, nil
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.Lock(ctx, seedLockKey); err != nil {
			return err
		}

		admin, created, err := srv.ensureAdmin(ctx, repoFactory.UserRepo())
		if err != nil {
			return err
		}
		result.AdminCreated = created

		result.ProductsCreated, err = srv.ensureProducts(ctx, repoFactory.ProductRepo(), admin)

		return err
	})
	if err != nil {
		metrics.SeedRunsTotal.WithLabelValues(metrics.ResultError).Inc()

		return nil, errors.Wrap(err, "seed database")
	}

	outcome := "skipped"
	if result.AdminCreated || result.ProductsCreated > 0 {
		outcome = "seeded"
	}
	metrics.SeedRunsTotal.WithLabelValues(outcome).Inc()

	srv.logger.Info("Seed completed",
		slog.Bool("adminCreated", result.AdminCreated),
		slog.Int("productsCreated", result.ProductsCreated),
	)

	return result, nil
}

// ensureAdmin returns the seeded admin, creating it when the user table is empty.
// A populated table yields the configured admin if present so products can still be attributed.
func (srv *seedService) ensureAdmin(ctx context.Context, userRepo repository.UserRepository) (*entity.User, bool, error) {
	count, err := userRepo.Count(ctx)
	if err != nil {
		return nil, false, err
	}

	if count > 0 {
		admin, err := userRepo.FindByEmail(ctx, entity.NormalizeEmail(srv.cfg.AdminEmail))
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			// Products then fall back to a nil owner id.
			return nil, false, nil
		}
		if err != nil {
			return nil, false, err
		}

		return admin, false, nil
	}

	hash, err := srv.hasher.Hash(srv.cfg.AdminPassword)
	if err != nil {
		return nil, false, errors.Wrap(err, "hash admin password")
	}

	admin := &entity.User{
		Email:        entity.NormalizeEmail(srv.cfg.AdminEmail),
		PasswordHash: hash,
		FullName:     srv.cfg.AdminFullName,
		Role:         entity.RoleAdmin,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		return nil, false, errors.Wrap(err, "create admin user")
	}

	srv.logger.Warn("Seeded default admin account, change its password", slog.String("email", admin.Email))

	return admin, true, nil
}

func (srv *seedService) ensureProducts(ctx context.Context, productRepo repository.ProductRepository, admin *entity.User) (int, error) {
	count, err := productRepo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	var owner entity.User
	if admin != nil {
		owner = *admin
	}

	for _, sample := range sampleProducts {
		product := &entity.Product{
			Name:            sample.name,
			Description:     sample.description,
			Price:           decimal.RequireFromString(sample.price),
			Stock:           sample.stock,
			CreatedByUserID: owner.ID,
		}
		if err := productRepo.Create(ctx, product); err != nil {
			return 0, errors.Wrap(err, "create sample product")
		}
	}

	return len(sampleProducts), nil
}
