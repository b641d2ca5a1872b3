package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$10$"), "expected bcrypt cost 10, got %q", hash)

	assert.NoError(t, CheckPasswordHash(hash, "secret1"))
	assert.Error(t, CheckPasswordHash(hash, "wrong"))
	assert.Error(t, CheckPasswordHash("not-a-hash", "secret1"))
}
