package auth

import (
	"strings"
	"testing"

	"fullapp/config"
	domainerrors "fullapp/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	password := "Secret123!"
	hash, err := hasher.Hash(password)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	assert.True(t, hasher.Check(password, hash))
}

func TestBcryptHasher_SaltIsRandomPerCall(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	for _, password := range []string{"Secret123!", "a", "Pässphräse123!", " spaced out "} {
		first, err := hasher.Hash(password)
		require.NoError(t, err)
		second, err := hasher.Hash(password)
		require.NoError(t, err)

		assert.NotEqual(t, first, second, "salt must differ for %q", password)
		assert.True(t, hasher.Check(password, first))
		assert.True(t, hasher.Check(password, second))
	}
}

func TestBcryptHasher_Check(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)
	password := "Secret123!"

	hash, err := hasher.Hash(password)
	require.NoError(t, err)

	// Test correct password
	assert.True(t, hasher.Check(password, hash))

	// Test incorrect passwords
	assert.False(t, hasher.Check("wrong", hash))
	assert.False(t, hasher.Check("secret123!", hash))
	assert.False(t, hasher.Check("", hash))

	// Malformed hashes are a mismatch, not a panic
	assert.False(t, hasher.Check(password, "invalid_hash"))
	assert.False(t, hasher.Check(password, ""))
	assert.False(t, hasher.Check(password, "$2a$10$"))
}

func TestBcryptHasher_TooLongPasswordIsValidationError(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	_, err := hasher.Hash(strings.Repeat("x", 73))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestBcryptHasher_WithCustomCost(t *testing.T) {
	customCost := 6 // Lower cost for faster testing
	hasher := NewBcryptHasherWithCost(customCost)

	hash, err := hasher.Hash("Secret123!")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, customCost, cost)
}

func TestBcryptHasher_CostFromConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
		want int
	}{
		{name: "nil config", cfg: nil, want: bcrypt.DefaultCost},
		{name: "no auth section", cfg: &config.Config{}, want: bcrypt.DefaultCost},
		{name: "configured", cfg: &config.Config{Auth: &config.AuthConfig{BcryptCost: 5}}, want: 5},
		{name: "out of range", cfg: &config.Config{Auth: &config.AuthConfig{BcryptCost: 99}}, want: bcrypt.DefaultCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hasher, ok := NewBcryptHasher(tt.cfg).(*bcryptHasher)
			require.True(t, ok)
			assert.Equal(t, tt.want, hasher.cost)
		})
	}
}
