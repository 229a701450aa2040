package usecases

import "time"

// Fee configuration
const DefaultFeeRate = "0.01"

// moneyScale is the number of decimal places stored for every amount
const moneyScale = 18

// Ledger walk batch size
const integrityBatchSize = 500

// Default number of transactions aggregated by GetStats
const DefaultStatsWindow = 1000

// Cross-service defaults
const DefaultLedgerRequestTimeout = 10 * time.Second
const reconcileBatchSize = 50

// A booking whose hold request timed out is left alone this long, so a
// ledger write still in flight can land before Reconcile looks for it.
const orphanGracePeriod = time.Minute

const orphanCancelReason = "booking creation timed out"

// Operation kinds exported as metric labels
const (
	opTransfer      = "transfer"
	opHoldCreate    = "hold_create"
	opHoldConfirm   = "hold_confirm"
	opHoldCancel    = "hold_cancel"
	opDeposit       = "deposit"
	opWithdrawal    = "withdrawal"
	opBookingCreate = "booking_create"
)

// Metadata keys written on transactions
const (
	metaBookingID       = "bookingId"
	metaAnnonceID       = "annonceId"
	metaIsPending       = "isPending"
	metaPendingSince    = "pendingSince"
	metaConfirmedAt     = "confirmedAt"
	metaConfirmedBy     = "confirmedBy"
	metaCancelledAt     = "cancelledAt"
	metaCancelledBy     = "cancelledBy"
	metaCancelReason    = "cancellationReason"
	metaSenderName      = "senderName"
	metaSenderRole      = "senderRole"
	metaReceiverName    = "receiverName"
	metaReceiverRole    = "receiverRole"
	metaReason          = "reason"
	reasonStartingGrant = "starting_grant"
)
