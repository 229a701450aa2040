package entities

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferInput is the body of POST /transfer
type TransferInput struct {
	ToWalletAddress string          `json:"toWalletAddress" binding:"required"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	TransactionType TransactionType `json:"transactionType"`
	Metadata        Metadata        `json:"metadata"`
}

// PartyBalance is one side's balance after settlement
type PartyBalance struct {
	ID         uuid.UUID       `json:"id"`
	NewBalance decimal.Decimal `json:"newBalance"`
}

// TransferResponse is returned by a settled transfer or escrow confirmation
type TransferResponse struct {
	Transaction *Transaction `json:"transaction"`
	LedgerBlock *LedgerBlock `json:"ledgerBlock"`
	FromUser    PartyBalance `json:"fromUser"`
	ToUser      PartyBalance `json:"toUser"`
}

// PendingHoldInput is the body of POST /transfer/booking-pending
type PendingHoldInput struct {
	FromUserID  uuid.UUID       `json:"fromUserId" binding:"required"`
	ToUserID    uuid.UUID       `json:"toUserId" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Metadata    Metadata        `json:"metadata"`
}

// ConfirmHoldInput is the body of POST /transfer/booking-confirm
type ConfirmHoldInput struct {
	TransactionID uuid.UUID `json:"transactionId" binding:"required"`
	BookingID     string    `json:"bookingId"`
	ConfirmedBy   string    `json:"confirmedBy"`
	Metadata      Metadata  `json:"metadata"`
}

// CancelHoldInput is the body of POST /transfer/booking-cancel
type CancelHoldInput struct {
	TransactionID uuid.UUID `json:"transactionId" binding:"required"`
	BookingID     string    `json:"bookingId"`
	CancelledBy   string    `json:"cancelledBy"`
	Reason        string    `json:"reason"`
	Metadata      Metadata  `json:"metadata"`
}

// HoldResponse is returned by create-pending and cancel
type HoldResponse struct {
	Transaction *Transaction `json:"transaction"`
	LedgerBlock *LedgerBlock `json:"ledgerBlock"`
}
