package models

import (
	"time"

	"github.com/google/uuid"
)

type Wallet struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	WalletAddress    string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	BalanceAvailable Money     `gorm:"not null;default:0;check:chk_wallets_available,balance_available >= 0"`
	BalanceLocked    Money     `gorm:"not null;default:0;check:chk_wallets_locked,balance_locked >= 0"`
	KYCStatus        string    `gorm:"type:varchar(20);not null;default:'none'"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (Wallet) TableName() string { return "wallets" }

// User is a read-only projection of the auth service's users table
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName string    `gorm:"type:varchar(100)"`
	LastName  string    `gorm:"type:varchar(100)"`
	Email     string    `gorm:"type:varchar(255)"`
	Role      string    `gorm:"type:varchar(20)"`
}

func (User) TableName() string { return "users" }
