package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheck(t *testing.T) {
	SetCost(bcrypt.MinCost)

	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)
	assert.True(t, CheckPassword(hash, "secret123"))
	assert.False(t, CheckPassword(hash, "secret124"))
}

func TestSetCost_IgnoresOutOfRange(t *testing.T) {
	SetCost(bcrypt.MinCost)
	SetCost(99)
	assert.Equal(t, bcrypt.MinCost, cost)
}
