package usecases

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ledger-chain.backend/internal/domain/entities"
	domainerrors "ledger-chain.backend/internal/domain/errors"
	"ledger-chain.backend/internal/domain/repositories"
	"ledger-chain.backend/internal/infrastructure/metrics"
	"ledger-chain.backend/pkg/logger"
	"ledger-chain.backend/pkg/utils"
)

// WithdrawalUsecase moves funds into the locked balance pending payout
type WithdrawalUsecase struct {
	walletRepo     repositories.WalletRepository
	withdrawalRepo repositories.WithdrawalRepository
	ledger         *LedgerUsecase
	uow            repositories.UnitOfWork
	feeRate        decimal.Decimal
}

func NewWithdrawalUsecase(
	walletRepo repositories.WalletRepository,
	withdrawalRepo repositories.WithdrawalRepository,
	ledger *LedgerUsecase,
	uow repositories.UnitOfWork,
	feeRate decimal.Decimal,
) *WithdrawalUsecase {
	return &WithdrawalUsecase{
		walletRepo:     walletRepo,
		withdrawalRepo: withdrawalRepo,
		ledger:         ledger,
		uow:            uow,
		feeRate:        feeRate,
	}
}

// RequestWithdrawal locks amount and records a pending payout request
func (u *WithdrawalUsecase) RequestWithdrawal(ctx context.Context, userID uuid.UUID, input *entities.WithdrawalInput) (*entities.WithdrawalResponse, error) {
	if err := requirePositive(input.Amount); err != nil {
		return nil, err
	}
	bank := input.BankDetails
	if strings.TrimSpace(bank.AccountHolder) == "" || strings.TrimSpace(bank.IBAN) == "" || strings.TrimSpace(bank.BankName) == "" {
		return nil, domainerrors.BadRequest("bank details are incomplete")
	}

	var resp *entities.WithdrawalResponse
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		wallet, err := u.walletRepo.GetByUserID(u.uow.WithLock(txCtx), userID)
		if err != nil {
			return err
		}
		if !wallet.CanDebit(input.Amount) {
			return domainerrors.ErrInsufficientFunds
		}

		wallet.BalanceAvailable = wallet.BalanceAvailable.Sub(input.Amount)
		wallet.BalanceLocked = wallet.BalanceLocked.Add(input.Amount)
		if err := u.walletRepo.UpdateBalances(txCtx, wallet.ID, wallet.BalanceAvailable, wallet.BalanceLocked); err != nil {
			return err
		}

		fee := calculateFee(input.Amount, u.feeRate)
		req := &entities.WithdrawalRequest{
			ID:          utils.GenerateUUIDv7(),
			WalletID:    wallet.ID,
			Amount:      input.Amount,
			Fee:         fee,
			NetAmount:   input.Amount.Sub(fee),
			BankDetails: bank,
			Status:      entities.WithdrawalStatusPending,
		}

		block, err := u.ledger.AppendBlock(txCtx, withdrawalPayload{
			WithdrawalID: req.ID,
			WalletID:     wallet.ID,
			Amount:       req.Amount,
			Fee:          req.Fee,
			NetAmount:    req.NetAmount,
			Status:       string(req.Status),
		}, entities.BlockTypeWithdrawal)
		if err != nil {
			return err
		}
		req.ReferenceLedgerID = &block.ID

		if err := u.withdrawalRepo.Create(txCtx, req); err != nil {
			return err
		}

		resp = &entities.WithdrawalResponse{
			Withdrawal:  req,
			LedgerBlock: block,
			Wallet:      entities.NewWalletBalance(wallet),
		}
		return nil
	})
	metrics.ObserveOperation(opWithdrawal, err)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Withdrawal requested",
		zap.String("withdrawalId", resp.Withdrawal.ID.String()),
		zap.String("amount", resp.Withdrawal.Amount.String()),
	)
	return resp, nil
}

// ListWithdrawals returns the user's withdrawal requests, newest first
func (u *WithdrawalUsecase) ListWithdrawals(ctx context.Context, userID uuid.UUID, pagination utils.PaginationParams) ([]*entities.WithdrawalRequest, utils.PaginationMeta, error) {
	wallet, err := u.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	rows, total, err := u.withdrawalRepo.ListByWallet(ctx, wallet.ID, pagination.Limit, pagination.Offset())
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return rows, utils.CalculateMeta(total, pagination.Page, pagination.Limit), nil
}
