package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ledger-chain.backend/internal/domain/entities"
	domainerrors "ledger-chain.backend/internal/domain/errors"
	"ledger-chain.backend/internal/infrastructure/models"
	"ledger-chain.backend/pkg/utils"
)

const metaKeyBookingID = "bookingId"

// TransactionRepository implements transaction data operations
type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *entities.Transaction) error {
	if tx.ID == uuid.Nil {
		tx.ID = utils.GenerateUUIDv7()
	}
	meta, err := encodeMetadata(tx.Metadata)
	if err != nil {
		return err
	}
	now := time.Now().UTC()

	m := &models.Transaction{
		ID:                tx.ID,
		FromWalletID:      tx.FromWalletID,
		ToWalletID:        tx.ToWalletID,
		Amount:            models.NewMoney(tx.Amount),
		Fee:               models.NewMoney(tx.Fee),
		TransactionType:   string(tx.TransactionType),
		Status:            string(tx.Status),
		Description:       tx.Description,
		Metadata:          meta,
		ReferenceLedgerID: tx.ReferenceLedgerID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	tx.CreatedAt = now
	tx.UpdatedAt = now
	return nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Transaction, error) {
	var m models.Transaction
	if err := lookupDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return transactionToEntity(&m), nil
}

// FindByBookingID returns the newest transaction whose metadata carries
// bookingID. Metadata is stored as compact JSON, so the key/value pair is
// matched as written.
func (r *TransactionRepository) FindByBookingID(ctx context.Context, bookingID string) (*entities.Transaction, error) {
	if bookingID == "" || strings.ContainsAny(bookingID, `%_"\`) {
		return nil, domainerrors.BadRequest("invalid booking id")
	}
	pattern := fmt.Sprintf(`%%"%s":"%s"%%`, metaKeyBookingID, bookingID)

	var m models.Transaction
	err := lookupDB(ctx, r.db).
		Where("metadata LIKE ?", pattern).
		Order("created_at DESC, id DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return transactionToEntity(&m), nil
}

// Transition is a compare-and-set on status, so two concurrent confirmations
// cannot both succeed even without a row lock.
func (r *TransactionRepository) Transition(ctx context.Context, id uuid.UUID, from, to entities.TransactionStatus, metadata entities.Metadata) error {
	meta, err := encodeMetadata(metadata)
	if err != nil {
		return err
	}
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Transaction{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]interface{}{
			"status":     string(to),
			"metadata":   meta,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrInvalidState
	}
	return nil
}

func (r *TransactionRepository) LinkLedgerBlock(ctx context.Context, id, blockID uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Transaction{}).
		Where("id = ?", id).
		Update("reference_ledger_id", blockID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *TransactionRepository) walletScope(ctx context.Context, walletID uuid.UUID) *gorm.DB {
	return GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Transaction{}).
		Where("(from_wallet_id = ? OR to_wallet_id = ?)", walletID, walletID)
}

// ListByWallet returns transactions touching walletID, newest first
func (r *TransactionRepository) ListByWallet(ctx context.Context, walletID uuid.UUID, filter entities.TransactionFilter) ([]*entities.Transaction, int64, error) {
	query := r.walletScope(ctx, walletID)
	if filter.Type != "" {
		query = query.Where("transaction_type = ?", string(filter.Type))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", filter.To.UTC())
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Transaction
	q := query.Order("created_at DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]*entities.Transaction, 0, len(rows))
	for i := range rows {
		out = append(out, transactionToEntity(&rows[i]))
	}
	return out, total, nil
}

// ListByWalletBetween returns every transaction touching walletID in [start, end], oldest first
func (r *TransactionRepository) ListByWalletBetween(ctx context.Context, walletID uuid.UUID, start, end time.Time) ([]*entities.Transaction, error) {
	var rows []models.Transaction
	err := r.walletScope(ctx, walletID).
		Where("created_at >= ? AND created_at <= ?", start.UTC(), end.UTC()).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*entities.Transaction, 0, len(rows))
	for i := range rows {
		out = append(out, transactionToEntity(&rows[i]))
	}
	return out, nil
}
