package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// KYCStatus is the wallet's know-your-customer state
type KYCStatus string

const (
	KYCNone     KYCStatus = "none"
	KYCPending  KYCStatus = "pending"
	KYCVerified KYCStatus = "verified"
	KYCRejected KYCStatus = "rejected"
)

// Wallet holds one user's balances
type Wallet struct {
	ID               uuid.UUID       `json:"id"`
	UserID           uuid.UUID       `json:"userId"`
	WalletAddress    string          `json:"walletAddress"`
	BalanceAvailable decimal.Decimal `json:"balanceAvailable"`
	BalanceLocked    decimal.Decimal `json:"balanceLocked"`
	KYCStatus        KYCStatus       `json:"kycStatus"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// Total is available plus locked funds
func (w *Wallet) Total() decimal.Decimal {
	return w.BalanceAvailable.Add(w.BalanceLocked)
}

// CanDebit reports whether available funds cover amount
func (w *Wallet) CanDebit(amount decimal.Decimal) bool {
	return w.BalanceAvailable.GreaterThanOrEqual(amount)
}

// WalletBalance is the public balance view
type WalletBalance struct {
	ID            uuid.UUID       `json:"id"`
	Available     decimal.Decimal `json:"available"`
	Locked        decimal.Decimal `json:"locked"`
	Total         decimal.Decimal `json:"total"`
	WalletAddress string          `json:"walletAddress"`
	KYCStatus     KYCStatus       `json:"kycStatus"`
}

// NewWalletBalance projects a wallet into its public view
func NewWalletBalance(w *Wallet) WalletBalance {
	return WalletBalance{
		ID:            w.ID,
		Available:     w.BalanceAvailable,
		Locked:        w.BalanceLocked,
		Total:         w.Total(),
		WalletAddress: w.WalletAddress,
		KYCStatus:     w.KYCStatus,
	}
}

// BalanceResponse is returned by GET /balance
type BalanceResponse struct {
	User   *User         `json:"user"`
	Wallet WalletBalance `json:"wallet"`
}

// DepositInput credits a wallet from outside the system
type DepositInput struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}
