package hasher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBcrypt_Hash(t *testing.T) {
	h := NewBcrypt(4)

	hashed, err := h.Hash("secret")

	assert.NoError(t, err)
	assert.NotEmpty(t, hashed)
	assert.NotEqual(t, "secret", hashed)
}

func TestBcrypt_Compare(t *testing.T) {
	h := NewBcrypt(4)
	hashed, _ := h.Hash("secret")

	assert.True(t, h.Compare("secret", hashed))
	assert.False(t, h.Compare("wrong", hashed))
}

func TestBcrypt_Compare_InvalidHash(t *testing.T) {
	h := NewBcrypt(4)

	assert.False(t, h.Compare("secret", "not-a-hash"))
}

func TestNewBcrypt_CostOutOfRange(t *testing.T) {
	h := NewBcrypt(99)

	hashed, err := h.Hash("secret")

	assert.NoError(t, err)
	assert.True(t, h.Compare("secret", hashed))
}
