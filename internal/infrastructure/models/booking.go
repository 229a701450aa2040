package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type Booking struct {
	ID                 uuid.UUID   `gorm:"type:uuid;primaryKey"`
	StudentID          uuid.UUID   `gorm:"type:uuid;not null;index"`
	TutorID            uuid.UUID   `gorm:"type:uuid;not null;index"`
	AnnonceID          string      `gorm:"type:varchar(64)"`
	Amount             Money       `gorm:"not null"`
	Description        string      `gorm:"type:text"`
	Status             string      `gorm:"type:varchar(20);not null;index"`
	BlockchainStatus   string      `gorm:"type:varchar(20);not null;index"`
	TransactionID      *uuid.UUID  `gorm:"type:uuid;index"`
	LedgerBlockHash    null.String `gorm:"type:varchar(64)"`
	LastError          null.String `gorm:"type:text"`
	ConfirmedAt        null.Time
	CancelledAt        null.Time
	CancellationReason null.String `gorm:"type:text"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (Booking) TableName() string { return "bookings" }
