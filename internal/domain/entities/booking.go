package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// BookingStatus is the booking lifecycle owned by the booking service
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
)

// BlockchainStatus mirrors the ledger side of a booking
type BlockchainStatus string

const (
	BlockchainStatusNone      BlockchainStatus = "none"
	BlockchainStatusPending   BlockchainStatus = "pending"
	BlockchainStatusConfirmed BlockchainStatus = "confirmed"
	BlockchainStatusCancelled BlockchainStatus = "cancelled"
	BlockchainStatusFailed    BlockchainStatus = "failed"
)

// Booking is a reservation paid through an escrow hold
type Booking struct {
	ID                 uuid.UUID        `json:"id"`
	StudentID          uuid.UUID        `json:"studentId"`
	TutorID            uuid.UUID        `json:"tutorId"`
	AnnonceID          string           `json:"annonceId"`
	Amount             decimal.Decimal  `json:"amount"`
	Description        string           `json:"description"`
	Status             BookingStatus    `json:"status"`
	BlockchainStatus   BlockchainStatus `json:"blockchainStatus"`
	TransactionID      *uuid.UUID       `json:"transactionId"`
	LedgerBlockHash    null.String      `json:"ledgerBlockHash"`
	LastError          null.String      `json:"lastError"`
	ConfirmedAt        null.Time        `json:"confirmedAt"`
	CancelledAt        null.Time        `json:"cancelledAt"`
	CancellationReason null.String      `json:"cancellationReason"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
}

// CreateBookingInput is the body of POST /bookings
type CreateBookingInput struct {
	StudentID   uuid.UUID       `json:"studentId" binding:"required"`
	TutorID     uuid.UUID       `json:"tutorId" binding:"required"`
	AnnonceID   string          `json:"annonceId"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// CancelBookingInput is the body of POST /bookings/:id/cancel
type CancelBookingInput struct {
	CancelledBy string `json:"cancelledBy"`
	Reason      string `json:"reason"`
}

// ConfirmBookingInput is the body of POST /bookings/:id/confirm
type ConfirmBookingInput struct {
	ConfirmedBy string `json:"confirmedBy"`
}
