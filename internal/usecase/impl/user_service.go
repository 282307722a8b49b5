package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "fullapp/internal/delivery/context"
	"fullapp/internal/domain/entity"
	domainerrors "fullapp/internal/domain/errors"
	"fullapp/internal/domain/repository"
	"fullapp/internal/domain/service"
	"fullapp/internal/errors"
	"fullapp/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	publisher    service.EventPublisher
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Publisher    service.EventPublisher
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		publisher:    params.Publisher,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register validates the input, hashes the password and inserts the user.
// The existence pre-check gives a fast answer; the unique index decides races.
func (srv *userService) Register(ctx context.Context, input usecase.RegisterInput) (*entity.User, error) {
	email := entity.NormalizeEmail(input.Email)
	if email == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("email is required")
	}
	if input.Password == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("password is required")
	}

	role := input.Role
	if role == "" {
		role = entity.RoleUser
	}
	if !role.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown role " + role.String())
	}

	srv.log(ctx).Info("Starting registration", slog.String("email", email), slog.String("role", role.String()))

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	user := &entity.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(input.FullName),
		Role:         role,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		exists, err := userRepo.ExistsByEmail(ctx, email)
		if err != nil {
			return errors.Wrap(err, "failed to check existing email")
		}
		if exists {
			return domainerrors.ErrUserAlreadyExists
		}

		return userRepo.Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserAlreadyExists) {
			srv.log(ctx).Warn("Registration rejected, email already registered", slog.String("email", email))

			return nil, err
		}
		srv.log(ctx).Error("Failed to execute registration transaction", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute user registration transaction")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", user.ID))

	publishEvent(ctx, srv.publisher, srv.log(ctx), service.EventUserRegistered, user.ID.String(), map[string]any{
		"email": user.Email,
		"role":  user.Role.String(),
	})

	return user.WithoutPasswordHash(), nil
}

// Authenticate looks the user up and verifies the password.
func (srv *userService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	normalized := entity.NormalizeEmail(email)
	if normalized == "" || password == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("email and password are required")
	}

	user, err := srv.userRepo.FindByEmail(ctx, normalized)
	if errors.Is(err, domainerrors.ErrUserNotFound) {
		srv.log(ctx).Info("Authentication failed", slog.String("email", normalized))

		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !srv.hasher.Check(password, user.PasswordHash) {
		srv.log(ctx).Info("Authentication failed", slog.String("email", normalized))

		return nil, domainerrors.ErrInvalidCredentials
	}

	return user.WithoutPasswordHash(), nil
}

// Login authenticates and issues a bearer token.
func (srv *userService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	user, err := srv.Authenticate(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	token, err := srv.tokenService.IssueToken(user.ID, user.Email, user.Role)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue token")
	}

	srv.log(ctx).Info("User logged in", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{Token: token, User: user}, nil
}

// GetByID loads a user profile without its password hash.
func (srv *userService) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return user.WithoutPasswordHash(), nil
}
