package repositories

import (
	"context"

	"github.com/google/uuid"
	"ledger-chain.backend/internal/domain/entities"
)

// BookingRepository defines booking data operations (booking service database)
type BookingRepository interface {
	Create(ctx context.Context, booking *entities.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Booking, error)
	Update(ctx context.Context, booking *entities.Booking) error
	ListByBlockchainStatus(ctx context.Context, status entities.BlockchainStatus, limit int) ([]*entities.Booking, error)
}
