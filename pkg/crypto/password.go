package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the bcrypt cost used for service keys
	DefaultCost = 12
	// WalletAddressBytes is the entropy behind a wallet address (64 hex chars)
	WalletAddressBytes = 32
)

var (
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	randomRead                 = rand.Read
)

// HashSecret hashes a shared secret (service key) with bcrypt
func HashSecret(secret string) (string, error) {
	bytes, err := bcryptGenerateFromPassword([]byte(secret), DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash secret: %w", err)
	}
	return string(bytes), nil
}

// CheckSecret compares a secret with its bcrypt hash
func CheckSecret(secret, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}

// GenerateRandomHex returns n random bytes hex-encoded
func GenerateRandomHex(n int) (string, error) {
	bytes := make([]byte, n)
	if _, err := randomRead(bytes); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// GenerateWalletAddress returns a fresh random wallet address
func GenerateWalletAddress() (string, error) {
	return GenerateRandomHex(WalletAddressBytes)
}
