package impl

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"fullapp/config"
	"fullapp/internal/domain/entity"
	domainerrors "fullapp/internal/domain/errors"
	"fullapp/internal/domain/repository"
	"fullapp/internal/domain/service"
	"fullapp/internal/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSeedConfig() *config.Config {
	return &config.Config{
		Seed: &config.SeedConfig{
			Enabled:       true,
			AdminEmail:    "admin@example.com",
			AdminPassword: "Admin123!",
			AdminFullName: "Admin User",
		},
	}
}

// memoryStore is an in-memory stand-in for the Postgres store. Email uniqueness is
// enforced on insert like the unique index, and the transaction manager does not
// serialize callers, so concurrent registrations race the same way they do in production.
type memoryStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*entity.User
	products map[uuid.UUID]*entity.Product
	locks    map[string]*sync.Mutex

	// failCreate makes the next user insert fail with this error.
	failCreate error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:    make(map[uuid.UUID]*entity.User),
		products: make(map[uuid.UUID]*entity.Product),
		locks:    make(map[string]*sync.Mutex),
	}
}

// --- TransactionManager / RepositoryFactory ---

func (s *memoryStore) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	f := &memoryFactory{store: s}
	defer f.release()

	return fn(f)
}

type memoryFactory struct {
	store *memoryStore
	held  []*sync.Mutex
}

func (f *memoryFactory) UserRepo() repository.UserRepository       { return f.store }
func (f *memoryFactory) ProductRepo() repository.ProductRepository { return (*memoryProducts)(f.store) }

func (f *memoryFactory) Lock(_ context.Context, key string) error {
	f.store.mu.Lock()
	l, ok := f.store.locks[key]
	if !ok {
		l = &sync.Mutex{}
		f.store.locks[key] = l
	}
	f.store.mu.Unlock()

	l.Lock()
	f.held = append(f.held, l)

	return nil
}

func (f *memoryFactory) release() {
	for _, l := range f.held {
		l.Unlock()
	}
}

// --- UserRepository ---

func (s *memoryStore) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domainerrors.ErrUserNotFound
	}
	clone := *u

	return &clone, nil
}

func (s *memoryStore) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var found []*entity.User
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			found = append(found, u)
		}
	}
	switch len(found) {
	case 0:
		return nil, domainerrors.ErrUserNotFound
	case 1:
		clone := *found[0]

		return &clone, nil
	default:
		return nil, domainerrors.ErrDataIntegrity
	}
}

func (s *memoryStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := s.FindByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, domainerrors.ErrUserNotFound) {
		return false, nil
	}

	return false, err
}

func (s *memoryStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return int64(len(s.users)), nil
}

func (s *memoryStore) Create(_ context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failCreate != nil {
		err := s.failCreate
		s.failCreate = nil

		return err
	}
	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		}
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.Must(uuid.NewV7())
	}
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	clone := *user
	s.users[user.ID] = &clone

	return nil
}

// insertRaw bypasses uniqueness to simulate a corrupted table.
func (s *memoryStore) insertRaw(user *entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.ID = uuid.Must(uuid.NewV7())
	clone := *user
	s.users[user.ID] = &clone
}

func (s *memoryStore) userCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.users)
}

// --- ProductRepository ---

type memoryProducts memoryStore

func (p *memoryProducts) List(_ context.Context) ([]*entity.Product, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	list := make([]*entity.Product, 0, len(p.products))
	for _, product := range p.products {
		clone := *product
		list = append(list, &clone)
	}
	slices.SortFunc(list, func(a, b *entity.Product) int { return strings.Compare(a.ID.String(), b.ID.String()) })

	return list, nil
}

func (p *memoryProducts) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	product, ok := p.products[id]
	if !ok {
		return nil, domainerrors.ErrProductNotFound
	}
	clone := *product

	return &clone, nil
}

func (p *memoryProducts) Count(_ context.Context) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return int64(len(p.products)), nil
}

func (p *memoryProducts) Create(_ context.Context, product *entity.Product) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if product.ID == uuid.Nil {
		product.ID = uuid.Must(uuid.NewV7())
	}
	clone := *product
	p.products[product.ID] = &clone

	return nil
}

func (p *memoryProducts) Update(_ context.Context, product *entity.Product) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.products[product.ID]; !ok {
		return domainerrors.ErrProductNotFound
	}
	clone := *product
	p.products[product.ID] = &clone

	return nil
}

func (p *memoryProducts) Delete(_ context.Context, id uuid.UUID) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.products[id]; !ok {
		return domainerrors.ErrProductNotFound
	}
	delete(p.products, id)

	return nil
}

// --- service fakes ---

// prefixHasher is a fast deterministic hasher for use case tests.
type prefixHasher struct{}

func (prefixHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (prefixHasher) Check(password, hash string) bool     { return hash == "hashed:"+password }

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) IssueToken(userID uuid.UUID, email string, role entity.Role) (string, error) {
	args := m.Called(userID, email, role)

	return args.String(0), args.Error(1)
}

func (m *mockTokenService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	claims, _ := args.Get(0).(*service.Claims)

	return claims, args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event *service.DomainEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockPublisher) Close() error {
	return m.Called().Error(0)
}
