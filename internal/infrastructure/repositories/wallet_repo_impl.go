package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"ledger-chain.backend/internal/domain/entities"
	domainerrors "ledger-chain.backend/internal/domain/errors"
	"ledger-chain.backend/internal/infrastructure/models"
	"ledger-chain.backend/pkg/utils"
)

// WalletRepository implements wallet data operations
type WalletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

func (r *WalletRepository) Create(ctx context.Context, wallet *entities.Wallet) error {
	if wallet.ID == uuid.Nil {
		wallet.ID = utils.GenerateUUIDv7()
	}
	if wallet.KYCStatus == "" {
		wallet.KYCStatus = entities.KYCNone
	}
	now := time.Now().UTC()

	m := &models.Wallet{
		ID:               wallet.ID,
		UserID:           wallet.UserID,
		WalletAddress:    wallet.WalletAddress,
		BalanceAvailable: models.NewMoney(wallet.BalanceAvailable),
		BalanceLocked:    models.NewMoney(wallet.BalanceLocked),
		KYCStatus:        string(wallet.KYCStatus),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	wallet.CreatedAt = now
	wallet.UpdatedAt = now
	return nil
}

func (r *WalletRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Wallet, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *WalletRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error) {
	return r.findOne(ctx, "user_id = ?", userID)
}

func (r *WalletRepository) GetByAddress(ctx context.Context, address string) (*entities.Wallet, error) {
	return r.findOne(ctx, "wallet_address = ?", address)
}

func (r *WalletRepository) findOne(ctx context.Context, query string, arg interface{}) (*entities.Wallet, error) {
	var m models.Wallet
	if err := lookupDB(ctx, r.db).Where(query, arg).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return walletToEntity(&m), nil
}

// UpdateBalances overwrites both balances. Callers compute them under a row lock.
func (r *WalletRepository) UpdateBalances(ctx context.Context, id uuid.UUID, available, locked decimal.Decimal) error {
	if available.IsNegative() || locked.IsNegative() {
		return domainerrors.ErrInsufficientFunds
	}
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Wallet{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"balance_available": models.NewMoney(available),
			"balance_locked":    models.NewMoney(locked),
			"updated_at":        time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UserRepository reads the auth service's users table
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &entities.User{
		ID:        m.ID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Email:     m.Email,
		Role:      entities.UserRole(m.Role),
	}, nil
}
