package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_Hash(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)
	password := "password123"

	hashed, err := hasher.Hash(password)

	require.NoError(t, err)
	assert.NotEmpty(t, hashed)
	assert.NotEqual(t, password, hashed)

	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestPasswordHasher_HashIsSalted(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	first, _ := hasher.Hash("password123")
	second, _ := hasher.Hash("password123")
	assert.NotEqual(t, first, second)
}

func TestPasswordHasher_Check(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)
	hashed, _ := hasher.Hash("password123")

	assert.True(t, hasher.Check("password123", hashed))
	assert.False(t, hasher.Check("wrongpassword", hashed))
	assert.False(t, hasher.Check("", hashed))
}

func TestPasswordHasher_Check_InvalidHash(t *testing.T) {
	assert.False(t, NewPasswordHasher(bcrypt.MinCost).Check("password123", "invalidhash"))
}

func TestPasswordHasher_TooLong(t *testing.T) {
	_, err := NewPasswordHasher(bcrypt.MinCost).Hash(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, bcrypt.ErrPasswordTooLong)
}

func TestNewPasswordHasher_InvalidCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(0).Cost())
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(99).Cost())
	assert.Equal(t, 12, NewPasswordHasher(12).Cost())
}
