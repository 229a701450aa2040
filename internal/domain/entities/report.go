package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Direction is a transaction seen from one wallet
type Direction string

const (
	DirectionOutgoing Direction = "OUTGOING"
	DirectionIncoming Direction = "INCOMING"
)

// StatsBucket aggregates completed activity over a period
type StatsBucket struct {
	Sent             decimal.Decimal `json:"sent"`
	Received         decimal.Decimal `json:"received"`
	Fees             decimal.Decimal `json:"fees"`
	TransactionCount int             `json:"transactionCount"`
	AsStudent        int             `json:"asStudent"`
	AsTutor          int             `json:"asTutor"`
}

// WalletStats is returned by GET /stats
type WalletStats struct {
	Wallet  *WalletBalance `json:"wallet"`
	Today   StatsBucket    `json:"today"`
	Monthly StatsBucket    `json:"monthly"`
	AllTime StatsBucket    `json:"allTime"`
}

// EmptyStats are returned whenever stats cannot be computed
func EmptyStats() *WalletStats {
	return &WalletStats{}
}

// AuditEntry is one transaction annotated for audit
type AuditEntry struct {
	Transaction *Transaction `json:"transaction"`
	Direction   Direction    `json:"direction"`
	BlockIndex  *int64       `json:"blockIndex,omitempty"`
	LedgerHash  string       `json:"ledgerHash,omitempty"`
	Signature   string       `json:"signature,omitempty"`
}

// AuditReport is returned by GET /audit
type AuditReport struct {
	WalletID         uuid.UUID       `json:"walletId"`
	StartDate        time.Time       `json:"startDate"`
	EndDate          time.Time       `json:"endDate"`
	TotalSent        decimal.Decimal `json:"totalSent"`
	TotalReceived    decimal.Decimal `json:"totalReceived"`
	TotalFees        decimal.Decimal `json:"totalFees"`
	TransactionCount int             `json:"transactionCount"`
	Entries          []AuditEntry    `json:"transactions"`
	GeneratedAt      time.Time       `json:"generatedAt"`
}
