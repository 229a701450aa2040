package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"ledger-chain.backend/internal/domain/entities"
)

// WalletRepository defines wallet data operations
type WalletRepository interface {
	// Create returns ErrAlreadyExists when the user already has a wallet
	Create(ctx context.Context, wallet *entities.Wallet) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Wallet, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error)
	GetByAddress(ctx context.Context, address string) (*entities.Wallet, error)
	UpdateBalances(ctx context.Context, id uuid.UUID, available, locked decimal.Decimal) error
}

// UserRepository reads identities owned by the auth service
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
}
