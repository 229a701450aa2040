package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ledger-chain.backend/internal/domain/entities"
	domainerrors "ledger-chain.backend/internal/domain/errors"
	"ledger-chain.backend/internal/infrastructure/models"
	"ledger-chain.backend/pkg/utils"
)

// BookingRepository implements booking persistence for the booking service
type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, booking *entities.Booking) error {
	if booking.ID == uuid.Nil {
		booking.ID = utils.GenerateUUIDv7()
	}
	now := time.Now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	return GetDB(ctx, r.db).WithContext(ctx).Create(bookingToModel(booking)).Error
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Booking, error) {
	var m models.Booking
	if err := lookupDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return bookingToEntity(&m), nil
}

func (r *BookingRepository) Update(ctx context.Context, booking *entities.Booking) error {
	booking.UpdatedAt = time.Now().UTC()
	m := bookingToModel(booking)
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", booking.ID).
		Select("status", "blockchain_status", "transaction_id", "ledger_block_hash", "last_error",
			"confirmed_at", "cancelled_at", "cancellation_reason", "updated_at").
		Updates(m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *BookingRepository) ListByBlockchainStatus(ctx context.Context, status entities.BlockchainStatus, limit int) ([]*entities.Booking, error) {
	var rows []models.Booking
	q := GetDB(ctx, r.db).WithContext(ctx).
		Where("blockchain_status = ?", string(status)).
		Order("updated_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.Booking, 0, len(rows))
	for i := range rows {
		out = append(out, bookingToEntity(&rows[i]))
	}
	return out, nil
}
