package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType classifies a transaction
type TransactionType string

const (
	TransactionTypeTransfer        TransactionType = "TRANSFER"
	TransactionTypeDeposit         TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal      TransactionType = "WITHDRAWAL"
	TransactionTypeTutorSession    TransactionType = "TUTOR_SESSION"
	TransactionTypeExchangeService TransactionType = "EXCHANGE_SERVICE"
	TransactionTypeBooking         TransactionType = "BOOKING"
)

// IsValid reports whether t is a known type
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeTransfer, TransactionTypeDeposit, TransactionTypeWithdrawal,
		TransactionTypeTutorSession, TransactionTypeExchangeService, TransactionTypeBooking:
		return true
	}
	return false
}

// TransactionStatus is the lifecycle state of a transaction
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

// IsTerminal reports whether no further transition is allowed
func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionStatusCompleted || s == TransactionStatusFailed || s == TransactionStatusCancelled
}

// Metadata is free-form transaction context (bookingId, annonceId, ...)
type Metadata map[string]interface{}

// Merge returns a copy of m overlaid with each of others in order
func (m Metadata) Merge(others ...Metadata) Metadata {
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	for _, o := range others {
		for k, v := range o {
			out[k] = v
		}
	}
	return out
}

// String returns the value under key when it is a string
func (m Metadata) String(key string) string {
	if m == nil {
		return ""
	}
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

// Transaction is one financial movement between wallets
type Transaction struct {
	ID                uuid.UUID         `json:"id"`
	FromWalletID      *uuid.UUID        `json:"fromWalletId"`
	ToWalletID        uuid.UUID         `json:"toWalletId"`
	Amount            decimal.Decimal   `json:"amount"`
	Fee               decimal.Decimal   `json:"fee"`
	TransactionType   TransactionType   `json:"transactionType"`
	Status            TransactionStatus `json:"status"`
	Description       string            `json:"description"`
	Metadata          Metadata          `json:"metadata"`
	ReferenceLedgerID *uuid.UUID        `json:"referenceLedgerId"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// TotalDebit is what the sender pays
func (t *Transaction) TotalDebit() decimal.Decimal {
	return t.Amount.Add(t.Fee)
}

// TransactionFilter narrows history queries
type TransactionFilter struct {
	Type   TransactionType
	Status TransactionStatus
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}
