package usecases

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"ledger-chain.backend/internal/domain/entities"
	domainerrors "ledger-chain.backend/internal/domain/errors"
)

func TestCalculateFee(t *testing.T) {
	rate := decimal.RequireFromString(DefaultFeeRate)
	assert.Equal(t, "1", calculateFee(decimal.NewFromInt(100), rate).String())
	assert.Equal(t, "0.00123456789", calculateFee(decimal.RequireFromString("0.123456789"), rate).String())
	assert.Equal(t, "0.00000000001", calculateFee(decimal.RequireFromString("0.000000001"), rate).String())
	// amount*rate past the 18th place is rounded half away from zero
	assert.Equal(t, "0.001234567890123457", calculateFee(decimal.RequireFromString("0.123456789012345678"), rate).String())
	assert.True(t, calculateFee(decimal.NewFromInt(100), decimal.Zero).IsZero())
}

func TestRequirePositive(t *testing.T) {
	assert.NoError(t, requirePositive(decimal.RequireFromString("0.00000001")))
	assert.ErrorIs(t, requirePositive(decimal.Zero), domainerrors.ErrBadRequest)
	assert.ErrorIs(t, requirePositive(decimal.NewFromInt(-1)), domainerrors.ErrBadRequest)
	assert.NoError(t, requirePositive(decimal.RequireFromString("0.000000000000000001")))
	assert.NoError(t, requirePositive(decimal.RequireFromString("1.500000000000000000000")))
	assert.ErrorIs(t, requirePositive(decimal.RequireFromString("0.0000000000000000001")), domainerrors.ErrBadRequest)
}

func TestLockOrder(t *testing.T) {
	a := &entities.Wallet{ID: uuid.MustParse("00000000-0000-0000-0000-000000000001")}
	b := &entities.Wallet{ID: uuid.MustParse("00000000-0000-0000-0000-000000000002")}

	first, second := lockOrder(a, b)
	assert.Same(t, a, first)
	assert.Same(t, b, second)

	first, second = lockOrder(b, a)
	assert.Same(t, a, first)
	assert.Same(t, b, second)
}

func TestUserDisplayAndTimestamp(t *testing.T) {
	name, role := userDisplay(&entities.User{FirstName: "Ada", LastName: "L", Role: entities.UserRoleTutor})
	assert.Equal(t, "Ada L", name)
	assert.Equal(t, "TUTOR", role)

	name, role = userDisplay(nil)
	assert.Empty(t, name)
	assert.Empty(t, role)

	ts := time.Date(2025, 3, 1, 10, 0, 0, 0, time.FixedZone("x", 3600))
	assert.Equal(t, "2025-03-01T09:00:00Z", timestampMeta(ts))
}

func TestApplyLedgerState(t *testing.T) {
	u := &BookingUsecase{now: time.Now}

	b := &entities.Booking{Status: entities.BookingStatusPending}
	assert.True(t, u.applyLedgerState(b, &entities.Transaction{Status: entities.TransactionStatusCompleted}))
	assert.Equal(t, entities.BookingStatusConfirmed, b.Status)
	assert.Equal(t, entities.BlockchainStatusConfirmed, b.BlockchainStatus)
	assert.True(t, b.ConfirmedAt.Valid)

	b = &entities.Booking{Status: entities.BookingStatusPending}
	assert.True(t, u.applyLedgerState(b, &entities.Transaction{Status: entities.TransactionStatusCancelled}))
	assert.Equal(t, entities.BookingStatusCancelled, b.Status)
	assert.True(t, b.CancelledAt.Valid)

	b = &entities.Booking{Status: entities.BookingStatusPending, BlockchainStatus: entities.BlockchainStatusFailed}
	assert.True(t, u.applyLedgerState(b, &entities.Transaction{Status: entities.TransactionStatusPending}))
	assert.Equal(t, entities.BookingStatusPending, b.Status)
	assert.Equal(t, entities.BlockchainStatusPending, b.BlockchainStatus)

	assert.False(t, u.applyLedgerState(b, &entities.Transaction{Status: entities.TransactionStatusFailed}))
}
