package usecases

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ledger-chain.backend/internal/domain/entities"
)

// blockPayload is the JSON document hashed into every financial block
type blockPayload struct {
	TransactionID   uuid.UUID       `json:"transactionId"`
	FromWalletID    *uuid.UUID      `json:"fromWalletId"`
	ToWalletID      uuid.UUID       `json:"toWalletId"`
	Amount          decimal.Decimal `json:"amount"`
	Fee             decimal.Decimal `json:"fee"`
	TransactionType string          `json:"transactionType"`
	Status          string          `json:"status"`
	BookingID       string          `json:"bookingId,omitempty"`
	Actor           string          `json:"actor,omitempty"`
	Reason          string          `json:"reason,omitempty"`
}

func newBlockPayload(tx *entities.Transaction) blockPayload {
	return blockPayload{
		TransactionID:   tx.ID,
		FromWalletID:    tx.FromWalletID,
		ToWalletID:      tx.ToWalletID,
		Amount:          tx.Amount,
		Fee:             tx.Fee,
		TransactionType: string(tx.TransactionType),
		Status:          string(tx.Status),
		BookingID:       tx.Metadata.String(metaBookingID),
	}
}

// withdrawalPayload is hashed into WITHDRAWAL blocks
type withdrawalPayload struct {
	WithdrawalID uuid.UUID       `json:"withdrawalId"`
	WalletID     uuid.UUID       `json:"walletId"`
	Amount       decimal.Decimal `json:"amount"`
	Fee          decimal.Decimal `json:"fee"`
	NetAmount    decimal.Decimal `json:"netAmount"`
	Status       string          `json:"status"`
}
