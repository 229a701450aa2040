package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ledger-chain.backend/internal/domain/entities"
	"ledger-chain.backend/internal/infrastructure/models"
	"ledger-chain.backend/pkg/utils"
)

// WithdrawalRepository implements withdrawal request persistence
type WithdrawalRepository struct {
	db *gorm.DB
}

func NewWithdrawalRepository(db *gorm.DB) *WithdrawalRepository {
	return &WithdrawalRepository{db: db}
}

func (r *WithdrawalRepository) Create(ctx context.Context, w *entities.WithdrawalRequest) error {
	if w.ID == uuid.Nil {
		w.ID = utils.GenerateUUIDv7()
	}
	now := time.Now().UTC()
	m := &models.WithdrawalRequest{
		ID:                w.ID,
		WalletID:          w.WalletID,
		Amount:            models.NewMoney(w.Amount),
		Fee:               models.NewMoney(w.Fee),
		NetAmount:         models.NewMoney(w.NetAmount),
		AccountHolder:     w.BankDetails.AccountHolder,
		IBAN:              w.BankDetails.IBAN,
		BankName:          w.BankDetails.BankName,
		Status:            string(w.Status),
		ReferenceLedgerID: w.ReferenceLedgerID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	w.CreatedAt = now
	w.UpdatedAt = now
	return nil
}

func (r *WithdrawalRepository) ListByWallet(ctx context.Context, walletID uuid.UUID, limit, offset int) ([]*entities.WithdrawalRequest, int64, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.WithdrawalRequest{}).
		Where("wallet_id = ?", walletID).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.WithdrawalRequest
	q := query.Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]*entities.WithdrawalRequest, 0, len(rows))
	for i := range rows {
		out = append(out, withdrawalToEntity(&rows[i]))
	}
	return out, total, nil
}
