package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ledger-chain.backend/internal/domain/entities"
	domainerrors "ledger-chain.backend/internal/domain/errors"
	"ledger-chain.backend/internal/domain/repositories"
	"ledger-chain.backend/internal/infrastructure/metrics"
	"ledger-chain.backend/pkg/logger"
)

// EscrowUsecase manages booking holds: pending, then confirmed or cancelled
type EscrowUsecase struct {
	walletRepo repositories.WalletRepository
	userRepo   repositories.UserRepository
	txRepo     repositories.TransactionRepository
	ledger     *LedgerUsecase
	uow        repositories.UnitOfWork
	now        func() time.Time
}

// NewEscrowUsecase creates a new escrow usecase
func NewEscrowUsecase(
	walletRepo repositories.WalletRepository,
	userRepo repositories.UserRepository,
	txRepo repositories.TransactionRepository,
	ledger *LedgerUsecase,
	uow repositories.UnitOfWork,
) *EscrowUsecase {
	return &EscrowUsecase{
		walletRepo: walletRepo,
		userRepo:   userRepo,
		txRepo:     txRepo,
		ledger:     ledger,
		uow:        uow,
		now:        time.Now,
	}
}

// CreatePending records a pending TUTOR_SESSION transaction. No balance moves.
func (u *EscrowUsecase) CreatePending(ctx context.Context, input *entities.PendingHoldInput) (*entities.HoldResponse, error) {
	if err := requirePositive(input.Amount); err != nil {
		return nil, err
	}
	if input.FromUserID == uuid.Nil || input.ToUserID == uuid.Nil {
		return nil, domainerrors.BadRequest("fromUserId and toUserId are required")
	}
	if input.FromUserID == input.ToUserID {
		return nil, domainerrors.ErrSelfTransfer
	}

	senderName, senderRole := userDisplay(lookupUser(ctx, u.userRepo, input.FromUserID))
	receiverName, receiverRole := userDisplay(lookupUser(ctx, u.userRepo, input.ToUserID))

	var resp *entities.HoldResponse
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		sender, err := u.walletRepo.GetByUserID(txCtx, input.FromUserID)
		if err != nil {
			return err
		}
		receiver, err := u.walletRepo.GetByUserID(txCtx, input.ToUserID)
		if err != nil {
			return err
		}

		tx := &entities.Transaction{
			FromWalletID:    &sender.ID,
			ToWalletID:      receiver.ID,
			Amount:          input.Amount,
			Fee:             decimal.Zero,
			TransactionType: entities.TransactionTypeTutorSession,
			Status:          entities.TransactionStatusPending,
			Description:     input.Description,
			Metadata: input.Metadata.Merge(entities.Metadata{
				metaIsPending:    true,
				metaPendingSince: timestampMeta(u.now()),
				metaBookingID:    input.Metadata.String(metaBookingID),
				metaAnnonceID:    input.Metadata.String(metaAnnonceID),
				metaSenderName:   senderName,
				metaSenderRole:   senderRole,
				metaReceiverName: receiverName,
				metaReceiverRole: receiverRole,
			}),
		}
		if err := u.txRepo.Create(txCtx, tx); err != nil {
			return err
		}

		block, err := u.ledger.AppendBlock(txCtx, newBlockPayload(tx), entities.BlockTypeTransferPending)
		if err != nil {
			return err
		}
		if err := u.txRepo.LinkLedgerBlock(txCtx, tx.ID, block.ID); err != nil {
			return err
		}
		tx.ReferenceLedgerID = &block.ID

		resp = &entities.HoldResponse{Transaction: tx, LedgerBlock: block}
		return nil
	})
	metrics.ObserveOperation(opHoldCreate, err)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Escrow hold created",
		zap.String("transactionId", resp.Transaction.ID.String()),
		zap.String("bookingId", resp.Transaction.Metadata.String(metaBookingID)),
	)
	return resp, nil
}

// Confirm settles a pending hold: sender is debited, receiver credited
func (u *EscrowUsecase) Confirm(ctx context.Context, input *entities.ConfirmHoldInput) (*entities.TransferResponse, error) {
	var resp *entities.TransferResponse
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		tx, err := u.lockPending(txCtx, input.TransactionID, input.BookingID)
		if err != nil {
			return err
		}
		if tx.FromWalletID == nil {
			return domainerrors.InvalidState("transaction has no sender")
		}

		sender, err := u.walletRepo.GetByID(txCtx, *tx.FromWalletID)
		if err != nil {
			return err
		}
		receiver, err := u.walletRepo.GetByID(txCtx, tx.ToWalletID)
		if err != nil {
			return err
		}
		if actor, err := uuid.Parse(input.ConfirmedBy); err == nil && actor != receiver.UserID {
			return domainerrors.BadRequest("confirmedBy is not the receiving party")
		}

		sender, receiver, err = lockWalletPair(txCtx, u.uow, u.walletRepo, sender, receiver)
		if err != nil {
			return err
		}
		if !sender.CanDebit(tx.Amount) {
			return domainerrors.ErrInsufficientFunds
		}

		senderAvailable := sender.BalanceAvailable.Sub(tx.Amount)
		receiverAvailable := receiver.BalanceAvailable.Add(tx.Amount)
		if err := u.walletRepo.UpdateBalances(txCtx, sender.ID, senderAvailable, sender.BalanceLocked); err != nil {
			return err
		}
		if err := u.walletRepo.UpdateBalances(txCtx, receiver.ID, receiverAvailable, receiver.BalanceLocked); err != nil {
			return err
		}

		meta := tx.Metadata.Merge(input.Metadata, entities.Metadata{
			metaIsPending:   false,
			metaConfirmedAt: timestampMeta(u.now()),
			metaConfirmedBy: input.ConfirmedBy,
		})
		if err := u.txRepo.Transition(txCtx, tx.ID, entities.TransactionStatusPending, entities.TransactionStatusCompleted, meta); err != nil {
			return err
		}
		tx.Status = entities.TransactionStatusCompleted
		tx.Metadata = meta

		payload := newBlockPayload(tx)
		payload.Actor = input.ConfirmedBy
		block, err := u.ledger.AppendBlock(txCtx, payload, entities.BlockTypeTransferConfirmed)
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
	metrics.ObserveOperation(opHoldConfirm, err)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Escrow hold confirmed",
		zap.String("transactionId", resp.Transaction.ID.String()),
		zap.Int64("blockIndex", resp.LedgerBlock.Index),
	)
	return resp, nil
}

// Cancel closes a pending hold. Balances are untouched.
func (u *EscrowUsecase) Cancel(ctx context.Context, input *entities.CancelHoldInput) (*entities.HoldResponse, error) {
	var resp *entities.HoldResponse
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		tx, err := u.lockPending(txCtx, input.TransactionID, input.BookingID)
		if err != nil {
			return err
		}

		meta := tx.Metadata.Merge(input.Metadata, entities.Metadata{
			metaIsPending:    false,
			metaCancelledAt:  timestampMeta(u.now()),
			metaCancelledBy:  input.CancelledBy,
			metaCancelReason: input.Reason,
		})
		if err := u.txRepo.Transition(txCtx, tx.ID, entities.TransactionStatusPending, entities.TransactionStatusCancelled, meta); err != nil {
			return err
		}
		tx.Status = entities.TransactionStatusCancelled
		tx.Metadata = meta

		payload := newBlockPayload(tx)
		payload.Actor = input.CancelledBy
		payload.Reason = input.Reason
		block, err := u.ledger.AppendBlock(txCtx, payload, entities.BlockTypeTransferCancelled)
		if err != nil {
			return err
		}
		if err := u.txRepo.LinkLedgerBlock(txCtx, tx.ID, block.ID); err != nil {
			return err
		}
		tx.ReferenceLedgerID = &block.ID

		resp = &entities.HoldResponse{Transaction: tx, LedgerBlock: block}
		return nil
	})
	metrics.ObserveOperation(opHoldCancel, err)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Escrow hold cancelled",
		zap.String("transactionId", resp.Transaction.ID.String()),
		zap.String("reason", input.Reason),
	)
	return resp, nil
}

// lockPending loads the hold FOR UPDATE and rejects anything already settled
func (u *EscrowUsecase) lockPending(ctx context.Context, txID uuid.UUID, bookingID string) (*entities.Transaction, error) {
	if txID == uuid.Nil {
		return nil, domainerrors.BadRequest("transactionId is required")
	}
	tx, err := u.txRepo.GetByID(u.uow.WithLock(ctx), txID)
	if err != nil {
		return nil, err
	}
	if tx.Status != entities.TransactionStatusPending {
		return nil, domainerrors.InvalidState("transaction already processed")
	}
	if stored := tx.Metadata.String(metaBookingID); bookingID != "" && stored != "" && stored != bookingID {
		return nil, domainerrors.InvalidState("booking does not match transaction")
	}
	return tx, nil
}

// FindHold returns the newest transaction opened for bookingID. The booking
// service uses it when a create call timed out and the transaction id never
// reached it.
func (u *EscrowUsecase) FindHold(ctx context.Context, bookingID uuid.UUID) (*entities.Transaction, error) {
	if bookingID == uuid.Nil {
		return nil, domainerrors.BadRequest("bookingId is required")
	}
	return u.txRepo.FindByBookingID(ctx, bookingID.String())
}
