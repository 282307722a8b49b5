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

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by its id.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).Where("id = ?", id).Take(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// FindByEmail matches case-insensitively against the lower(email) index.
// Two rows are fetched so a broken uniqueness guarantee surfaces instead of being hidden.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var rows []model.UserModel
	err := repo.db.WithContext(ctx).
		Where("lower(email) = ?", entity.NormalizeEmail(email)).
		Limit(2).
		Find(&rows).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find user by email")
	}

	switch len(rows) {
	case 0:
		return nil, domainerrors.ErrUserNotFound
	case 1:
		return toUserDomain(&rows[0]), nil
	default:
		return nil, domainerrors.ErrDataIntegrity.WithDetails("more than one user shares an email address")
	}
}

// ExistsByEmail reports whether the address is already taken.
func (repo *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := repo.db.WithContext(ctx).
		Raw("SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = ?)", entity.NormalizeEmail(email)).
		Scan(&exists).Error
	if err != nil {
		return false, domainerrors.NewDatabaseExecuteError(err, "failed to check email")
	}

	return exists, nil
}

// Count returns the number of users.
func (repo *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.UserModel{}).Count(&count).Error; err != nil {
		return 0, domainerrors.NewDatabaseExecuteError(err, "failed to count users")
	}

	return count, nil
}

// Create persists a new user. The id is generated here when the caller left it empty.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "generate user id")
		}
		user.ID = id
	}
	if user.Role == "" {
		user.Role = entity.RoleUser
	}
	user.Email = entity.NormalizeEmail(user.Email)

	userM := fromUserDomain(user)
	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		}
		if isNotNullConstraintViolation(err) || isCheckConstraintViolation(err) {
			return domainerrors.ErrUserCreationFailed.WrapMessage("user row rejected by constraint")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// --- Mapper Functions ---

func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:           data.ID,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		FullName:     data.FullName,
		Role:         entity.Role(data.Role),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:           data.ID,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		FullName:     data.FullName,
		Role:         data.Role.String(),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
