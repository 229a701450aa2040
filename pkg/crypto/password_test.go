package crypto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndCheckSecret(t *testing.T) {
	hash, err := HashSecret("booking-service-key")
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)

	assert.True(t, CheckSecret("booking-service-key", hash))
	assert.False(t, CheckSecret("other", hash))
	assert.False(t, CheckSecret("booking-service-key", "not-a-hash"))
}

func TestGenerateWalletAddress(t *testing.T) {
	a, err := GenerateWalletAddress()
	assert.NoError(t, err)
	assert.Len(t, a, 64)

	b, err := GenerateWalletAddress()
	assert.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHashSecretAndRandom_ErrorBranches(t *testing.T) {
	origBcrypt := bcryptGenerateFromPassword
	origRandRead := randomRead
	t.Cleanup(func() {
		bcryptGenerateFromPassword = origBcrypt
		randomRead = origRandRead
	})

	bcryptGenerateFromPassword = func([]byte, int) ([]byte, error) {
		return nil, errors.New("bcrypt failed")
	}
	_, err := HashSecret("x")
	assert.Error(t, err)

	randomRead = func([]byte) (int, error) {
		return 0, errors.New("rand failed")
	}
	_, err = GenerateWalletAddress()
	assert.Error(t, err)
}
