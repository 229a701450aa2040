package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"ledger-chain.backend/internal/domain/entities"
)

// TransactionRepository defines transaction data operations
type TransactionRepository interface {
	Create(ctx context.Context, tx *entities.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Transaction, error)
	FindByBookingID(ctx context.Context, bookingID string) (*entities.Transaction, error)
	// Transition moves a transaction from one status to another, returning
	// ErrInvalidState when it is no longer in from.
	Transition(ctx context.Context, id uuid.UUID, from, to entities.TransactionStatus, metadata entities.Metadata) error
	LinkLedgerBlock(ctx context.Context, id, blockID uuid.UUID) error
	ListByWallet(ctx context.Context, walletID uuid.UUID, filter entities.TransactionFilter) ([]*entities.Transaction, int64, error)
	ListByWalletBetween(ctx context.Context, walletID uuid.UUID, start, end time.Time) ([]*entities.Transaction, error)
}

// WithdrawalRepository defines withdrawal request data operations
type WithdrawalRepository interface {
	Create(ctx context.Context, w *entities.WithdrawalRequest) error
	ListByWallet(ctx context.Context, walletID uuid.UUID, limit, offset int) ([]*entities.WithdrawalRequest, int64, error)
}
