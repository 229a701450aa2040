package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WithdrawalStatus is resolved out-of-band by an operator
type WithdrawalStatus string

const (
	WithdrawalStatusPending  WithdrawalStatus = "pending"
	WithdrawalStatusApproved WithdrawalStatus = "approved"
	WithdrawalStatusRejected WithdrawalStatus = "rejected"
)

// BankDetails identifies the payout account
type BankDetails struct {
	AccountHolder string `json:"accountHolder" binding:"required"`
	IBAN          string `json:"iban" binding:"required"`
	BankName      string `json:"bankName" binding:"required"`
}

// WithdrawalRequest locks funds until paid out
type WithdrawalRequest struct {
	ID                uuid.UUID        `json:"id"`
	WalletID          uuid.UUID        `json:"walletId"`
	Amount            decimal.Decimal  `json:"amount"`
	Fee               decimal.Decimal  `json:"fee"`
	NetAmount         decimal.Decimal  `json:"netAmount"`
	BankDetails       BankDetails      `json:"bankDetails"`
	Status            WithdrawalStatus `json:"status"`
	ReferenceLedgerID *uuid.UUID       `json:"referenceLedgerId"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}

// WithdrawalInput is the body of POST /withdrawals
type WithdrawalInput struct {
	Amount      decimal.Decimal `json:"amount"`
	BankDetails BankDetails     `json:"bankDetails"`
}

// WithdrawalResponse is returned after a withdrawal request is created
type WithdrawalResponse struct {
	Withdrawal  *WithdrawalRequest `json:"withdrawal"`
	LedgerBlock *LedgerBlock       `json:"ledgerBlock"`
	Wallet      WalletBalance      `json:"wallet"`
}
