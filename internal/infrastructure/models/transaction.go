package models

import (
	"time"

	"github.com/google/uuid"
)

type Transaction struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	FromWalletID      *uuid.UUID `gorm:"type:uuid;index"`
	ToWalletID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	Amount            Money      `gorm:"not null"`
	Fee               Money      `gorm:"not null;default:0"`
	TransactionType   string     `gorm:"type:varchar(32);not null;index"`
	Status            string     `gorm:"type:varchar(20);not null;index"`
	Description       string     `gorm:"type:text"`
	Metadata          string     `gorm:"type:text"`
	ReferenceLedgerID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt         time.Time  `gorm:"index"`
	UpdatedAt         time.Time
}

func (Transaction) TableName() string { return "transactions" }

type WithdrawalRequest struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	WalletID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	Amount            Money      `gorm:"not null"`
	Fee               Money      `gorm:"not null"`
	NetAmount         Money      `gorm:"not null"`
	AccountHolder     string     `gorm:"type:varchar(255);not null"`
	IBAN              string     `gorm:"column:iban;type:varchar(64);not null"`
	BankName          string     `gorm:"type:varchar(255);not null"`
	Status            string     `gorm:"type:varchar(20);not null;index"`
	ReferenceLedgerID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (WithdrawalRequest) TableName() string { return "withdrawal_requests" }
