package entities

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// BlockType classifies the financial event a block records
type BlockType string

const (
	BlockTypeTransfer          BlockType = "TRANSFER"
	BlockTypeTransferPending   BlockType = "TRANSFER_PENDING"
	BlockTypeTransferConfirmed BlockType = "TRANSFER_CONFIRMED"
	BlockTypeTransferCancelled BlockType = "TRANSFER_CANCELLED"
	BlockTypeDeposit           BlockType = "DEPOSIT"
	BlockTypeWithdrawal        BlockType = "WITHDRAWAL"
)

const BlockStatusConfirmed = "confirmed"

// GenesisPreviousHash is the previousHash of block 0
var GenesisPreviousHash = strings.Repeat("0", 64)

// LedgerBlock is one immutable, hash-linked ledger entry.
// Payload holds the exact JSON bytes that were hashed.
type LedgerBlock struct {
	ID           uuid.UUID       `json:"id"`
	Index        int64           `json:"index"`
	PreviousHash string          `json:"previousHash"`
	Hash         string          `json:"hash"`
	Payload      json.RawMessage `json:"payload"`
	BlockType    BlockType       `json:"blockType"`
	Signature    null.String     `json:"signature"`
	Timestamp    time.Time       `json:"timestamp"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ComputeHash returns SHA-256(index || previousHash || timestampMillis || payload) as hex
func (b *LedgerBlock) ComputeHash() string {
	h := sha256.New()
	h.Write([]byte(strconv.FormatInt(b.Index, 10)))
	h.Write([]byte(b.PreviousHash))
	h.Write([]byte(strconv.FormatInt(b.Timestamp.UnixMilli(), 10)))
	h.Write(b.Payload)
	return hex.EncodeToString(h.Sum(nil))
}

// Verify reports whether the stored hash matches the block contents
func (b *LedgerBlock) Verify() bool {
	return b.Hash != "" && b.ComputeHash() == b.Hash
}

// IntegrityResult is the outcome of a full chain walk
type IntegrityResult struct {
	Valid             bool   `json:"valid"`
	BlockCount        int64  `json:"blockCount"`
	InvalidBlockIndex *int64 `json:"invalidBlockIndex,omitempty"`
	Reason            string `json:"reason,omitempty"`
}

// ChainInfo summarizes the ledger
type ChainInfo struct {
	TotalBlocks   int64           `json:"totalBlocks"`
	LastBlock     *LedgerBlock    `json:"lastBlock"`
	Integrity     IntegrityResult `json:"integrity"`
	SignerAddress string          `json:"signerAddress,omitempty"`
}

// BlockVerification is returned for a single block lookup
type BlockVerification struct {
	Block          *LedgerBlock `json:"block"`
	HashValid      bool         `json:"hashValid"`
	SignatureValid *bool        `json:"signatureValid,omitempty"`
}
