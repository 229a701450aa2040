package models

import "gorm.io/gorm"

// MigrateLedger creates or updates the ledger service tables
func MigrateLedger(db *gorm.DB) error {
	return db.AutoMigrate(&Wallet{}, &Transaction{}, &LedgerBlock{}, &WithdrawalRequest{})
}

// MigrateBooking creates or updates the booking service tables
func MigrateBooking(db *gorm.DB) error {
	return db.AutoMigrate(&Booking{})
}
