package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"ledger-chain.backend/pkg/logger"
)

// BookingReconciler repairs bookings whose ledger call failed
type BookingReconciler interface {
	Reconcile(ctx context.Context, limit int) (int, error)
}

// BookingReconcileJob retries the ledger lookup for failed bookings
type BookingReconcileJob struct {
	*loop
	reconciler BookingReconciler
	batchSize  int
}

func NewBookingReconcileJob(reconciler BookingReconciler, interval time.Duration, batchSize int) *BookingReconcileJob {
	return &BookingReconcileJob{
		loop:       newLoop("booking_reconcile", interval),
		reconciler: reconciler,
		batchSize:  batchSize,
	}
}

func (j *BookingReconcileJob) Start(ctx context.Context) {
	j.run(ctx, j.reconcile)
}

func (j *BookingReconcileJob) reconcile(ctx context.Context) {
	if _, err := j.reconciler.Reconcile(ctx, j.batchSize); err != nil {
		logger.Error(ctx, "Booking reconcile failed", zap.Error(err))
	}
}
