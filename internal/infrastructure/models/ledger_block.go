package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// LedgerBlock stores the payload as text so the hashed bytes survive a round trip
type LedgerBlock struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey"`
	BlockIndex   int64       `gorm:"not null;uniqueIndex"`
	PreviousHash string      `gorm:"type:varchar(64);not null"`
	Hash         string      `gorm:"type:varchar(64);not null;uniqueIndex"`
	Payload      string      `gorm:"type:text;not null"`
	BlockType    string      `gorm:"type:varchar(32);not null;index"`
	Signature    null.String `gorm:"type:text"`
	TimestampMs  int64       `gorm:"not null"`
	Status       string      `gorm:"type:varchar(20);not null"`
	CreatedAt    time.Time
}

func (LedgerBlock) TableName() string { return "ledger_blocks" }
