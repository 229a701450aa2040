package signing

import (
	"crypto/ecdsa"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	ErrInvalidKey    = errors.New("invalid signing key")
	ErrInvalidDigest = errors.New("block hash must be 32 bytes of hex")

	signDigest = crypto.Sign
)

// Signer produces secp256k1 signatures over ledger block hashes
type Signer struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewSigner parses a hex private key, with or without 0x
func NewSigner(hexKey string) (*Signer, error) {
	hexKey = strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")
	if hexKey == "" {
		return nil, ErrInvalidKey
	}
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return &Signer{key: key, address: crypto.PubkeyToAddress(key.PublicKey)}, nil
}

// GenerateKey returns a fresh private key and its address, both hex encoded
func GenerateKey() (privateKeyHex string, address string, err error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return "", "", err
	}
	return hex.EncodeToString(crypto.FromECDSA(key)), crypto.PubkeyToAddress(key.PublicKey).Hex(), nil
}

// Address is the checksummed address of the signing key
func (s *Signer) Address() string {
	return s.address.Hex()
}

// Sign signs the 32-byte digest encoded in hash and returns a 0x-prefixed
// 65-byte recoverable signature.
func (s *Signer) Sign(hash string) (string, error) {
	digest, err := decodeDigest(hash)
	if err != nil {
		return "", err
	}
	sig, err := signDigest(digest, s.key)
	if err != nil {
		return "", err
	}
	return hexutil.Encode(sig), nil
}

// Verify reports whether signature was produced by this signer over hash
func (s *Signer) Verify(hash, signature string) bool {
	return VerifyAddress(hash, signature, s.address.Hex())
}

// VerifyAddress recovers the signer of hash and compares it with address
func VerifyAddress(hash, signature, address string) bool {
	digest, err := decodeDigest(hash)
	if err != nil {
		return false
	}
	sig, err := hexutil.Decode(signature)
	if err != nil || len(sig) != crypto.SignatureLength {
		return false
	}
	pub, err := crypto.SigToPub(digest, sig)
	if err != nil {
		return false
	}
	return crypto.PubkeyToAddress(*pub) == common.HexToAddress(address)
}

func decodeDigest(hash string) ([]byte, error) {
	digest, err := hex.DecodeString(strings.TrimPrefix(hash, "0x"))
	if err != nil || len(digest) != 32 {
		return nil, ErrInvalidDigest
	}
	return digest, nil
}
