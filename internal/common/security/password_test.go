package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPassword(t *testing.T) {
	assert.True(t, CheckPassword("secret", "secret"))
	assert.False(t, CheckPassword("secret", "Secret"))
	assert.False(t, CheckPassword("secret", "secret "))
	assert.False(t, CheckPassword("", "secret"))
	assert.True(t, CheckPassword("", ""))
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := HashPassword("secret")
	require.NoError(t, err)
	require.NotEqual(t, "secret", hash)

	assert.True(t, CheckPasswordHash("secret", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
	assert.False(t, CheckPasswordHash("secret", "not-a-hash"))
}
