package main

import (
	"context"
	"log/slog"
	"os"

	"fullapp/config"
	"fullapp/internal/delivery"
	"fullapp/internal/delivery/api"
	apimiddleware "fullapp/internal/delivery/api/middleware"
	"fullapp/internal/delivery/api/router/handler"
	"fullapp/internal/domain/lifecycle"
	"fullapp/internal/errors"
	"fullapp/internal/infra/auth"
	logs "fullapp/internal/infra/log"
	"fullapp/internal/infra/persistence/postgres"
	"fullapp/internal/infra/pubsub"
	"fullapp/internal/usecase"
	"fullapp/internal/usecase/impl"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

type bootstrapParams struct {
	fx.In
	fx.Lifecycle

	DB     *gorm.DB
	Seeder usecase.SeedUsecase
	Logger *slog.Logger
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			bootstrap,
			startServer,
		),
		fx.StartTimeout(lifecycle.DefaultTimeout),
		fx.StopTimeout(lifecycle.DefaultTimeout),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			postgres.New,
		),
		pubsub.Module,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewProductRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
			impl.NewProductService,
			impl.NewSeedService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			apimiddleware.NewAuthMiddleware,
			apimiddleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewProductHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// bootstrap migrates the schema and seeds an empty database before any delivery starts serving.
// The hook is appended after the postgres ping hook, so the connection is already verified.
func bootstrap(params bootstrapParams) {
	params.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			sqlDB, err := params.DB.DB()
			if err != nil {
				return errors.Wrap(err, "get sql.DB for migrations")
			}

			if err := postgres.RunMigrations(ctx, sqlDB, params.Logger); err != nil {
				return err
			}

			if _, err := params.Seeder.Seed(ctx); err != nil {
				return err
			}

			return nil
		},
	})
}

// startServer launches every delivery once the earlier start hooks, bootstrap included, succeeded.
func startServer(ctx context.Context, params startServerParams) {
	params.Append(fx.Hook{
		OnStart: func(context.Context) error {
			for _, delivery := range params.Deliveries {
				go func() {
					if err := delivery.Serve(ctx); err != nil {
						slog.Error("Failed to start server", slog.Any("error", err))
						os.Exit(1)
					}
				}()
			}

			return nil
		},
	})
}
