package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"ledger-chain.backend/internal/domain/entities"
	domainerrors "ledger-chain.backend/internal/domain/errors"
	"ledger-chain.backend/internal/domain/repositories"
	"ledger-chain.backend/internal/infrastructure/metrics"
	"ledger-chain.backend/pkg/logger"
	"ledger-chain.backend/pkg/utils"
)

// LedgerClient is the booking service's view of the escrow endpoints
type LedgerClient interface {
	AppendPending(ctx context.Context, input *entities.PendingHoldInput) (*entities.HoldResponse, error)
	Confirm(ctx context.Context, input *entities.ConfirmHoldInput) (*entities.TransferResponse, error)
	Cancel(ctx context.Context, input *entities.CancelHoldInput) (*entities.HoldResponse, error)
	GetTransaction(ctx context.Context, id uuid.UUID) (*entities.Transaction, error)
	FindHold(ctx context.Context, bookingID uuid.UUID) (*entities.Transaction, error)
}

const systemActor = "system"

// BookingUsecase orchestrates reservations against the ledger's escrow
// flow. The ledger call always happens first; the local status flips only
// after it succeeds, inside a transaction that rolls back otherwise.
type BookingUsecase struct {
	bookingRepo repositories.BookingRepository
	uow         repositories.UnitOfWork
	ledger      LedgerClient
	now         func() time.Time
}

func NewBookingUsecase(bookingRepo repositories.BookingRepository, uow repositories.UnitOfWork, ledger LedgerClient) *BookingUsecase {
	return &BookingUsecase{
		bookingRepo: bookingRepo,
		uow:         uow,
		ledger:      ledger,
		now:         time.Now,
	}
}

// CreateReservation stores a PENDING booking backed by a ledger hold
func (u *BookingUsecase) CreateReservation(ctx context.Context, input *entities.CreateBookingInput) (*entities.Booking, error) {
	if err := requirePositive(input.Amount); err != nil {
		return nil, err
	}
	if input.StudentID == uuid.Nil || input.TutorID == uuid.Nil {
		return nil, domainerrors.BadRequest("studentId and tutorId are required")
	}
	if input.StudentID == input.TutorID {
		return nil, domainerrors.ErrSelfTransfer
	}

	booking := &entities.Booking{
		ID:               utils.GenerateUUIDv7(),
		StudentID:        input.StudentID,
		TutorID:          input.TutorID,
		AnnonceID:        input.AnnonceID,
		Amount:           input.Amount,
		Description:      input.Description,
		Status:           entities.BookingStatusPending,
		BlockchainStatus: entities.BlockchainStatusNone,
	}

	var (
		hold      *entities.HoldResponse
		ledgerErr error
	)
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.bookingRepo.Create(txCtx, booking); err != nil {
			return err
		}

		var err error
		hold, err = u.ledger.AppendPending(txCtx, &entities.PendingHoldInput{
			FromUserID:  input.StudentID,
			ToUserID:    input.TutorID,
			Amount:      input.Amount,
			Description: input.Description,
			Metadata: entities.Metadata{
				metaBookingID: booking.ID.String(),
				metaAnnonceID: input.AnnonceID,
			},
		})
		if err != nil {
			ledgerErr = err
			return err
		}

		booking.TransactionID = &hold.Transaction.ID
		booking.BlockchainStatus = entities.BlockchainStatusPending
		if hold.LedgerBlock != nil {
			booking.LedgerBlockHash = null.StringFrom(hold.LedgerBlock.Hash)
		}
		return u.bookingRepo.Update(txCtx, booking)
	})
	metrics.ObserveOperation(opBookingCreate, err)
	if err != nil {
		if hold != nil && hold.Transaction != nil {
			u.compensate(ctx, booking.ID, hold.Transaction.ID, err)
		} else if errors.Is(ledgerErr, domainerrors.ErrUpstream) {
			u.recordUnknownHold(ctx, booking, ledgerErr)
		}
		return nil, err
	}

	logger.Info(ctx, "Booking created",
		zap.String("bookingId", booking.ID.String()),
		zap.String("transactionId", booking.TransactionID.String()),
	)
	return booking, nil
}

// compensate cancels a hold whose booking could not be stored
func (u *BookingUsecase) compensate(ctx context.Context, bookingID, txID uuid.UUID, cause error) {
	_, err := u.ledger.Cancel(ctx, &entities.CancelHoldInput{
		TransactionID: txID,
		BookingID:     bookingID.String(),
		CancelledBy:   systemActor,
		Reason:        "booking creation rolled back",
	})
	if err != nil {
		logger.Error(ctx, "Compensating cancel failed; hold left pending",
			zap.String("bookingId", bookingID.String()),
			zap.String("transactionId", txID.String()),
			zap.NamedError("cause", cause),
			zap.Error(err),
		)
		return
	}
	logger.Warn(ctx, "Hold cancelled after booking rollback",
		zap.String("bookingId", bookingID.String()),
		zap.String("transactionId", txID.String()),
		zap.NamedError("cause", cause),
	)
}

// recordUnknownHold keeps a booking whose hold request failed at the
// transport level. The ledger may still have written the hold, so the row is
// flagged failed with no transaction and Reconcile looks the hold up by
// booking id later.
func (u *BookingUsecase) recordUnknownHold(ctx context.Context, booking *entities.Booking, cause error) {
	booking.TransactionID = nil
	booking.BlockchainStatus = entities.BlockchainStatusFailed
	booking.LastError = null.StringFrom(cause.Error())
	if err := u.bookingRepo.Create(ctx, booking); err != nil {
		logger.Error(ctx, "Could not record booking with unknown hold outcome",
			zap.String("bookingId", booking.ID.String()),
			zap.NamedError("cause", cause),
			zap.Error(err),
		)
		return
	}
	logger.Warn(ctx, "Hold outcome unknown; booking left for reconcile",
		zap.String("bookingId", booking.ID.String()),
		zap.Error(cause),
	)
}

// ConfirmReservation settles the hold, then marks the booking CONFIRMED
func (u *BookingUsecase) ConfirmReservation(ctx context.Context, bookingID uuid.UUID, input *entities.ConfirmBookingInput) (*entities.Booking, error) {
	var (
		booking   *entities.Booking
		ledgerErr error
	)
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		b, err := u.lockPendingBooking(txCtx, bookingID)
		if err != nil {
			return err
		}

		resp, err := u.ledger.Confirm(txCtx, &entities.ConfirmHoldInput{
			TransactionID: *b.TransactionID,
			BookingID:     b.ID.String(),
			ConfirmedBy:   input.ConfirmedBy,
		})
		if err != nil {
			ledgerErr = err
			return err
		}

		b.Status = entities.BookingStatusConfirmed
		b.BlockchainStatus = entities.BlockchainStatusConfirmed
		b.ConfirmedAt = null.TimeFrom(u.now().UTC())
		b.LastError = null.String{}
		if resp.LedgerBlock != nil {
			b.LedgerBlockHash = null.StringFrom(resp.LedgerBlock.Hash)
		}
		if err := u.bookingRepo.Update(txCtx, b); err != nil {
			return err
		}
		booking = b
		return nil
	})
	if err != nil {
		if ledgerErr != nil {
			u.markFailed(ctx, bookingID, ledgerErr)
		}
		return nil, err
	}

	logger.Info(ctx, "Booking confirmed", zap.String("bookingId", bookingID.String()))
	return booking, nil
}

// CancelReservation closes the hold, then marks the booking CANCELLED
func (u *BookingUsecase) CancelReservation(ctx context.Context, bookingID uuid.UUID, input *entities.CancelBookingInput) (*entities.Booking, error) {
	var (
		booking   *entities.Booking
		ledgerErr error
	)
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		b, err := u.lockPendingBooking(txCtx, bookingID)
		if err != nil {
			return err
		}

		resp, err := u.ledger.Cancel(txCtx, &entities.CancelHoldInput{
			TransactionID: *b.TransactionID,
			BookingID:     b.ID.String(),
			CancelledBy:   input.CancelledBy,
			Reason:        input.Reason,
		})
		if err != nil {
			ledgerErr = err
			return err
		}

		b.Status = entities.BookingStatusCancelled
		b.BlockchainStatus = entities.BlockchainStatusCancelled
		b.CancelledAt = null.TimeFrom(u.now().UTC())
		b.CancellationReason = null.NewString(input.Reason, input.Reason != "")
		b.LastError = null.String{}
		if resp.LedgerBlock != nil {
			b.LedgerBlockHash = null.StringFrom(resp.LedgerBlock.Hash)
		}
		if err := u.bookingRepo.Update(txCtx, b); err != nil {
			return err
		}
		booking = b
		return nil
	})
	if err != nil {
		if ledgerErr != nil {
			u.markFailed(ctx, bookingID, ledgerErr)
		}
		return nil, err
	}

	logger.Info(ctx, "Booking cancelled", zap.String("bookingId", bookingID.String()))
	return booking, nil
}

// CompleteReservation marks a confirmed booking as delivered
func (u *BookingUsecase) CompleteReservation(ctx context.Context, bookingID uuid.UUID) (*entities.Booking, error) {
	var booking *entities.Booking
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		b, err := u.bookingRepo.GetByID(u.uow.WithLock(txCtx), bookingID)
		if err != nil {
			return err
		}
		if b.Status != entities.BookingStatusConfirmed {
			return domainerrors.InvalidState("only confirmed bookings can be completed")
		}
		b.Status = entities.BookingStatusCompleted
		if err := u.bookingRepo.Update(txCtx, b); err != nil {
			return err
		}
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// GetReservation returns one booking
func (u *BookingUsecase) GetReservation(ctx context.Context, bookingID uuid.UUID) (*entities.Booking, error) {
	return u.bookingRepo.GetByID(ctx, bookingID)
}

func (u *BookingUsecase) lockPendingBooking(ctx context.Context, bookingID uuid.UUID) (*entities.Booking, error) {
	b, err := u.bookingRepo.GetByID(u.uow.WithLock(ctx), bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != entities.BookingStatusPending {
		return nil, domainerrors.InvalidState("booking is not pending")
	}
	if b.TransactionID == nil {
		return nil, domainerrors.InvalidState("booking has no escrow hold")
	}
	return b, nil
}

// markFailed flags the booking so Reconcile can repair it later
func (u *BookingUsecase) markFailed(ctx context.Context, bookingID uuid.UUID, cause error) {
	b, err := u.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		logger.Error(ctx, "Could not load booking to flag failure", zap.String("bookingId", bookingID.String()), zap.Error(err))
		return
	}
	b.BlockchainStatus = entities.BlockchainStatusFailed
	b.LastError = null.StringFrom(cause.Error())
	if err := u.bookingRepo.Update(ctx, b); err != nil {
		logger.Error(ctx, "Could not flag booking failure", zap.String("bookingId", bookingID.String()), zap.Error(err))
		return
	}
	logger.Warn(ctx, "Booking ledger call failed",
		zap.String("bookingId", bookingID.String()),
		zap.Error(cause),
	)
}

// Reconcile re-reads the ledger state of failed bookings and repairs the
// local mirror. It returns how many bookings were repaired.
func (u *BookingUsecase) Reconcile(ctx context.Context, limit int) (int, error) {
	if limit <= 0 {
		limit = reconcileBatchSize
	}
	failed, err := u.bookingRepo.ListByBlockchainStatus(ctx, entities.BlockchainStatusFailed, limit)
	if err != nil {
		return 0, err
	}

	repaired := 0
	for _, b := range failed {
		var ok bool
		if b.TransactionID == nil {
			ok = u.resolveUnknownHold(ctx, b)
		} else {
			ok = u.refreshFromLedger(ctx, b)
		}
		if !ok {
			continue
		}
		if err := u.bookingRepo.Update(ctx, b); err != nil {
			logger.Error(ctx, "Reconcile update failed", zap.String("bookingId", b.ID.String()), zap.Error(err))
			continue
		}
		repaired++
	}

	if repaired > 0 {
		logger.Info(ctx, "Bookings reconciled", zap.Int("repaired", repaired), zap.Int("examined", len(failed)))
	}
	return repaired, nil
}

func (u *BookingUsecase) refreshFromLedger(ctx context.Context, b *entities.Booking) bool {
	tx, err := u.ledger.GetTransaction(ctx, *b.TransactionID)
	if err != nil {
		logger.Warn(ctx, "Reconcile lookup failed",
			zap.String("bookingId", b.ID.String()),
			zap.Error(err),
		)
		return false
	}
	return u.applyLedgerState(b, tx)
}

// resolveUnknownHold settles a booking whose create call never learned
// whether the ledger wrote a hold. The caller was told creation failed, so a
// hold that did land is cancelled rather than adopted.
func (u *BookingUsecase) resolveUnknownHold(ctx context.Context, b *entities.Booking) bool {
	if u.now().Sub(b.UpdatedAt) < orphanGracePeriod {
		return false
	}

	tx, err := u.ledger.FindHold(ctx, b.ID)
	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		u.closeUnheld(b)
		logger.Info(ctx, "No hold found for timed out booking; closed",
			zap.String("bookingId", b.ID.String()),
		)
		return true
	case err != nil:
		logger.Warn(ctx, "Reconcile hold lookup failed",
			zap.String("bookingId", b.ID.String()),
			zap.Error(err),
		)
		return false
	}

	b.TransactionID = &tx.ID
	if tx.Status != entities.TransactionStatusPending {
		return u.applyLedgerState(b, tx)
	}

	resp, err := u.ledger.Cancel(ctx, &entities.CancelHoldInput{
		TransactionID: tx.ID,
		BookingID:     b.ID.String(),
		CancelledBy:   systemActor,
		Reason:        orphanCancelReason,
	})
	if err != nil {
		// keep the hold id so the next pass reads it directly
		logger.Warn(ctx, "Cancelling orphan hold failed",
			zap.String("bookingId", b.ID.String()),
			zap.String("transactionId", tx.ID.String()),
			zap.Error(err),
		)
		b.LastError = null.StringFrom(err.Error())
		if err := u.bookingRepo.Update(ctx, b); err != nil {
			logger.Error(ctx, "Reconcile update failed", zap.String("bookingId", b.ID.String()), zap.Error(err))
		}
		return false
	}

	u.closeUnheld(b)
	if resp != nil && resp.LedgerBlock != nil {
		b.LedgerBlockHash = null.StringFrom(resp.LedgerBlock.Hash)
	}
	logger.Warn(ctx, "Orphan hold cancelled",
		zap.String("bookingId", b.ID.String()),
		zap.String("transactionId", tx.ID.String()),
	)
	return true
}

// closeUnheld cancels a booking whose creation the caller saw fail
func (u *BookingUsecase) closeUnheld(b *entities.Booking) {
	b.Status = entities.BookingStatusCancelled
	b.BlockchainStatus = entities.BlockchainStatusCancelled
	b.CancelledAt = null.TimeFrom(u.now().UTC())
	b.CancellationReason = null.StringFrom(orphanCancelReason)
	b.LastError = null.String{}
}

// applyLedgerState mirrors the ledger transaction status onto b
func (u *BookingUsecase) applyLedgerState(b *entities.Booking, tx *entities.Transaction) bool {
	now := u.now().UTC()
	switch tx.Status {
	case entities.TransactionStatusCompleted:
		if b.Status == entities.BookingStatusPending {
			b.Status = entities.BookingStatusConfirmed
		}
		b.BlockchainStatus = entities.BlockchainStatusConfirmed
		if !b.ConfirmedAt.Valid {
			b.ConfirmedAt = null.TimeFrom(now)
		}
	case entities.TransactionStatusCancelled:
		b.Status = entities.BookingStatusCancelled
		b.BlockchainStatus = entities.BlockchainStatusCancelled
		if !b.CancelledAt.Valid {
			b.CancelledAt = null.TimeFrom(now)
		}
	case entities.TransactionStatusPending:
		b.BlockchainStatus = entities.BlockchainStatusPending
	default:
		return false
	}
	b.LastError = null.String{}
	return true
}
