package usecases

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ledger-chain.backend/internal/domain/entities"
	domainerrors "ledger-chain.backend/internal/domain/errors"
	"ledger-chain.backend/internal/domain/repositories"
	"ledger-chain.backend/internal/infrastructure/metrics"
	"ledger-chain.backend/pkg/logger"
)

// TransferUsecase settles direct wallet-to-wallet transfers
type TransferUsecase struct {
	walletRepo repositories.WalletRepository
	userRepo   repositories.UserRepository
	txRepo     repositories.TransactionRepository
	ledger     *LedgerUsecase
	uow        repositories.UnitOfWork
	feeRate    decimal.Decimal
}

// NewTransferUsecase creates a new transfer usecase
func NewTransferUsecase(
	walletRepo repositories.WalletRepository,
	userRepo repositories.UserRepository,
	txRepo repositories.TransactionRepository,
	ledger *LedgerUsecase,
	uow repositories.UnitOfWork,
	feeRate decimal.Decimal,
) *TransferUsecase {
	return &TransferUsecase{
		walletRepo: walletRepo,
		userRepo:   userRepo,
		txRepo:     txRepo,
		ledger:     ledger,
		uow:        uow,
		feeRate:    feeRate,
	}
}

// Transfer debits amount plus fee from the sender, credits amount to the
// receiver, and records the transaction and its TRANSFER block atomically.
func (u *TransferUsecase) Transfer(ctx context.Context, fromUserID uuid.UUID, input *entities.TransferInput) (*entities.TransferResponse, error) {
	if err := requirePositive(input.Amount); err != nil {
		return nil, err
	}
	txType := input.TransactionType
	if txType == "" {
		txType = entities.TransactionTypeExchangeService
	}
	if !txType.IsValid() {
		return nil, domainerrors.BadRequest("unknown transaction type")
	}

	// Names are denormalized from the auth service's table, which may live
	// elsewhere; read them before the transaction so a miss cannot abort it.
	receiverPreview, err := u.walletRepo.GetByAddress(ctx, input.ToWalletAddress)
	if err != nil {
		return nil, err
	}
	senderName, senderRole := userDisplay(u.lookupUser(ctx, fromUserID))
	receiverName, receiverRole := userDisplay(u.lookupUser(ctx, receiverPreview.UserID))

	var resp *entities.TransferResponse
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		sender, err := u.walletRepo.GetByUserID(txCtx, fromUserID)
		if err != nil {
			return err
		}
		if sender.UserID == receiverPreview.UserID {
			return domainerrors.ErrSelfTransfer
		}

		sender, receiver, err := lockWalletPair(txCtx, u.uow, u.walletRepo, sender, receiverPreview)
		if err != nil {
			return err
		}

		fee := calculateFee(input.Amount, u.feeRate)
		totalDebit := input.Amount.Add(fee)
		if !sender.CanDebit(totalDebit) {
			return domainerrors.ErrInsufficientFunds
		}

		senderAvailable := sender.BalanceAvailable.Sub(totalDebit)
		receiverAvailable := receiver.BalanceAvailable.Add(input.Amount)
		if err := u.walletRepo.UpdateBalances(txCtx, sender.ID, senderAvailable, sender.BalanceLocked); err != nil {
			return err
		}
		if err := u.walletRepo.UpdateBalances(txCtx, receiver.ID, receiverAvailable, receiver.BalanceLocked); err != nil {
			return err
		}

		tx := &entities.Transaction{
			FromWalletID:    &sender.ID,
			ToWalletID:      receiver.ID,
			Amount:          input.Amount,
			Fee:             fee,
			TransactionType: txType,
			Status:          entities.TransactionStatusCompleted,
			Description:     input.Description,
			Metadata: input.Metadata.Merge(entities.Metadata{
				metaSenderName:   senderName,
				metaSenderRole:   senderRole,
				metaReceiverName: receiverName,
				metaReceiverRole: receiverRole,
			}),
		}
		if err := u.txRepo.Create(txCtx, tx); err != nil {
			return err
		}

		block, err := u.ledger.AppendBlock(txCtx, newBlockPayload(tx), entities.BlockTypeTransfer)
		if err != nil {
			return err
		}
		if err := u.txRepo.LinkLedgerBlock(txCtx, tx.ID, block.ID); err != nil {
			return err
		}
		tx.ReferenceLedgerID = &block.ID

		resp = &entities.TransferResponse{
			Transaction: tx,
			LedgerBlock: block,
			FromUser:    entities.PartyBalance{ID: sender.UserID, NewBalance: senderAvailable},
			ToUser:      entities.PartyBalance{ID: receiver.UserID, NewBalance: receiverAvailable},
		}
		return nil
	})
	metrics.ObserveOperation(opTransfer, err)
	if err != nil {
		logger.Info(ctx, "Transfer rolled back", zap.String("fromUserId", fromUserID.String()), zap.Error(err))
		return nil, err
	}

	logger.Info(ctx, "Transfer committed",
		zap.String("transactionId", resp.Transaction.ID.String()),
		zap.String("amount", resp.Transaction.Amount.String()),
		zap.Int64("blockIndex", resp.LedgerBlock.Index),
	)
	return resp, nil
}

func (u *TransferUsecase) lookupUser(ctx context.Context, userID uuid.UUID) *entities.User {
	return lookupUser(ctx, u.userRepo, userID)
}

func lookupUser(ctx context.Context, userRepo repositories.UserRepository, userID uuid.UUID) *entities.User {
	if userRepo == nil {
		return nil
	}
	user, err := userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil
	}
	return user
}

// lockWalletPair locks a and b in a stable order and returns fresh copies
// in the caller's original order.
func lockWalletPair(ctx context.Context, uow repositories.UnitOfWork, walletRepo repositories.WalletRepository, a, b *entities.Wallet) (*entities.Wallet, *entities.Wallet, error) {
	lockCtx := uow.WithLock(ctx)
	first, second := lockOrder(a, b)

	lockedFirst, err := walletRepo.GetByID(lockCtx, first.ID)
	if err != nil {
		return nil, nil, err
	}
	lockedSecond, err := walletRepo.GetByID(lockCtx, second.ID)
	if err != nil {
		return nil, nil, err
	}
	if first.ID == a.ID {
		return lockedFirst, lockedSecond, nil
	}
	return lockedSecond, lockedFirst, nil
}
