package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "secret123", hash, "hash must not equal the plaintext")

	assert.True(t, Verify("secret123", hash))
	assert.False(t, Verify("wrong", hash))
	assert.False(t, Verify("secret123", "not-a-hash"))
}

func TestHashIsSalted(t *testing.T) {
	first, err := Hash("secret123")
	require.NoError(t, err)
	second, err := Hash("secret123")
	require.NoError(t, err)

	// bcrypt每次生成随机盐，两次哈希不应相同
	assert.NotEqual(t, first, second)
}
