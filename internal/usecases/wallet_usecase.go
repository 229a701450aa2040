package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ledger-chain.backend/internal/domain/entities"
	domainerrors "ledger-chain.backend/internal/domain/errors"
	"ledger-chain.backend/internal/domain/repositories"
	"ledger-chain.backend/internal/infrastructure/metrics"
	"ledger-chain.backend/pkg/crypto"
	"ledger-chain.backend/pkg/logger"
	"ledger-chain.backend/pkg/utils"
)

var generateWalletAddress = crypto.GenerateWalletAddress

// WalletUsecase handles wallet business logic
type WalletUsecase struct {
	walletRepo      repositories.WalletRepository
	userRepo        repositories.UserRepository
	txRepo          repositories.TransactionRepository
	ledger          *LedgerUsecase
	uow             repositories.UnitOfWork
	startingBalance decimal.Decimal
	statsWindow     int
	now             func() time.Time
}

// NewWalletUsecase creates a new wallet usecase
func NewWalletUsecase(
	walletRepo repositories.WalletRepository,
	userRepo repositories.UserRepository,
	txRepo repositories.TransactionRepository,
	ledger *LedgerUsecase,
	uow repositories.UnitOfWork,
	startingBalance decimal.Decimal,
	statsWindow int,
) *WalletUsecase {
	if statsWindow <= 0 {
		statsWindow = DefaultStatsWindow
	}
	return &WalletUsecase{
		walletRepo:      walletRepo,
		userRepo:        userRepo,
		txRepo:          txRepo,
		ledger:          ledger,
		uow:             uow,
		startingBalance: startingBalance,
		statsWindow:     statsWindow,
		now:             time.Now,
	}
}

// CreateWallet returns the user's wallet, creating it with the starting
// grant when absent. Concurrent creators converge on the same row.
func (u *WalletUsecase) CreateWallet(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error) {
	var wallet *entities.Wallet
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		existing, err := u.walletRepo.GetByUserID(u.uow.WithLock(txCtx), userID)
		if err == nil {
			wallet = existing
			return nil
		}
		if !errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}

		address, err := generateWalletAddress()
		if err != nil {
			return fmt.Errorf("failed to generate wallet address: %w", err)
		}
		w := &entities.Wallet{
			UserID:           userID,
			WalletAddress:    address,
			BalanceAvailable: u.startingBalance,
			BalanceLocked:    decimal.Zero,
			KYCStatus:        entities.KYCNone,
		}
		if err := u.walletRepo.Create(txCtx, w); err != nil {
			return err
		}
		if u.startingBalance.IsPositive() {
			if _, _, err := u.recordDeposit(txCtx, w, u.startingBalance, "Starting balance", entities.Metadata{metaReason: reasonStartingGrant}); err != nil {
				return err
			}
		}
		wallet = w
		return nil
	})
	if errors.Is(err, domainerrors.ErrAlreadyExists) {
		return u.walletRepo.GetByUserID(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	return wallet, nil
}

// recordDeposit writes the DEPOSIT transaction and block for funds already
// credited to w.
func (u *WalletUsecase) recordDeposit(ctx context.Context, w *entities.Wallet, amount decimal.Decimal, description string, meta entities.Metadata) (*entities.Transaction, *entities.LedgerBlock, error) {
	tx := &entities.Transaction{
		ToWalletID:      w.ID,
		Amount:          amount,
		Fee:             decimal.Zero,
		TransactionType: entities.TransactionTypeDeposit,
		Status:          entities.TransactionStatusCompleted,
		Description:     description,
		Metadata:        meta,
	}
	if err := u.txRepo.Create(ctx, tx); err != nil {
		return nil, nil, err
	}
	block, err := u.ledger.AppendBlock(ctx, newBlockPayload(tx), entities.BlockTypeDeposit)
	if err != nil {
		return nil, nil, err
	}
	if err := u.txRepo.LinkLedgerBlock(ctx, tx.ID, block.ID); err != nil {
		return nil, nil, err
	}
	tx.ReferenceLedgerID = &block.ID
	return tx, block, nil
}

// GetBalance returns the user with their wallet, creating it on first use
func (u *WalletUsecase) GetBalance(ctx context.Context, userID uuid.UUID) (*entities.BalanceResponse, error) {
	wallet, err := u.walletRepo.GetByUserID(ctx, userID)
	if errors.Is(err, domainerrors.ErrNotFound) {
		if _, err = u.CreateWallet(ctx, userID); err != nil {
			return nil, err
		}
		wallet, err = u.walletRepo.GetByUserID(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	return &entities.BalanceResponse{
		User:   u.lookupUser(ctx, userID),
		Wallet: entities.NewWalletBalance(wallet),
	}, nil
}

func (u *WalletUsecase) lookupUser(ctx context.Context, userID uuid.UUID) *entities.User {
	if u.userRepo != nil {
		if user, err := u.userRepo.GetByID(ctx, userID); err == nil {
			return user
		}
	}
	return &entities.User{ID: userID}
}

// Deposit credits available funds (sandbox top-up)
func (u *WalletUsecase) Deposit(ctx context.Context, userID uuid.UUID, input *entities.DepositInput) (*entities.TransferResponse, error) {
	if err := requirePositive(input.Amount); err != nil {
		return nil, err
	}
	if _, err := u.GetBalance(ctx, userID); err != nil {
		return nil, err
	}

	var resp *entities.TransferResponse
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		wallet, err := u.walletRepo.GetByUserID(u.uow.WithLock(txCtx), userID)
		if err != nil {
			return err
		}
		available := wallet.BalanceAvailable.Add(input.Amount)
		if err := u.walletRepo.UpdateBalances(txCtx, wallet.ID, available, wallet.BalanceLocked); err != nil {
			return err
		}
		wallet.BalanceAvailable = available

		description := input.Description
		if description == "" {
			description = "Deposit"
		}
		tx, block, err := u.recordDeposit(txCtx, wallet, input.Amount, description, nil)
		if err != nil {
			return err
		}
		resp = &entities.TransferResponse{
			Transaction: tx,
			LedgerBlock: block,
			ToUser:      entities.PartyBalance{ID: userID, NewBalance: available},
		}
		return nil
	})
	metrics.ObserveOperation(opDeposit, err)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetHistory lists the user's transactions, newest first
func (u *WalletUsecase) GetHistory(ctx context.Context, userID uuid.UUID, filter entities.TransactionFilter, pagination utils.PaginationParams) ([]*entities.Transaction, utils.PaginationMeta, error) {
	wallet, err := u.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	filter.Limit = pagination.Limit
	filter.Offset = pagination.Offset()
	txs, total, err := u.txRepo.ListByWallet(ctx, wallet.ID, filter)
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return txs, utils.CalculateMeta(total, pagination.Page, pagination.Limit), nil
}

// GetTransaction returns a transaction the user's wallet takes part in
func (u *WalletUsecase) GetTransaction(ctx context.Context, userID, txID uuid.UUID) (*entities.Transaction, error) {
	tx, err := u.txRepo.GetByID(ctx, txID)
	if err != nil {
		return nil, err
	}
	if userID == uuid.Nil {
		return tx, nil
	}
	wallet, err := u.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if tx.ToWalletID != wallet.ID && (tx.FromWalletID == nil || *tx.FromWalletID != wallet.ID) {
		return nil, domainerrors.ErrNotFound
	}
	return tx, nil
}

// GetStats aggregates recent completed activity. Failures yield zeroed stats.
func (u *WalletUsecase) GetStats(ctx context.Context, userID uuid.UUID) *entities.WalletStats {
	wallet, err := u.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		logger.Warn(ctx, "Stats unavailable", zap.String("userId", userID.String()), zap.Error(err))
		return entities.EmptyStats()
	}
	txs, _, err := u.txRepo.ListByWallet(ctx, wallet.ID, entities.TransactionFilter{
		Status: entities.TransactionStatusCompleted,
		Limit:  u.statsWindow,
	})
	if err != nil {
		logger.Warn(ctx, "Stats unavailable", zap.String("userId", userID.String()), zap.Error(err))
		return entities.EmptyStats()
	}

	balance := entities.NewWalletBalance(wallet)
	stats := &entities.WalletStats{Wallet: &balance}

	now := u.now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	for _, tx := range txs {
		created := tx.CreatedAt.UTC()
		addToBucket(&stats.AllTime, tx, wallet.ID)
		if !created.Before(monthStart) {
			addToBucket(&stats.Monthly, tx, wallet.ID)
		}
		if !created.Before(dayStart) {
			addToBucket(&stats.Today, tx, wallet.ID)
		}
	}
	return stats
}

func addToBucket(b *entities.StatsBucket, tx *entities.Transaction, walletID uuid.UUID) {
	b.TransactionCount++
	if tx.FromWalletID != nil && *tx.FromWalletID == walletID {
		b.Sent = b.Sent.Add(tx.Amount)
		b.Fees = b.Fees.Add(tx.Fee)
		countRole(b, tx.Metadata.String(metaSenderRole))
		return
	}
	b.Received = b.Received.Add(tx.Amount)
	countRole(b, tx.Metadata.String(metaReceiverRole))
}

func countRole(b *entities.StatsBucket, role string) {
	switch entities.UserRole(role) {
	case entities.UserRoleStudent:
		b.AsStudent++
	case entities.UserRoleTutor:
		b.AsTutor++
	}
}
