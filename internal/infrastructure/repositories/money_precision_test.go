package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"ledger-chain.backend/internal/domain/entities"
)

const fullScale = "999.875308640987654322"

func TestWalletRepository_KeepsFullScaleBalances(t *testing.T) {
	db := newMigratedDB(t)
	repo := NewWalletRepository(db)
	ctx := context.Background()

	w := &entities.Wallet{UserID: uuid.New(), WalletAddress: "a1", BalanceAvailable: decimal.RequireFromString(fullScale)}
	require.NoError(t, repo.Create(ctx, w))

	got, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	require.Equal(t, fullScale, got.BalanceAvailable.String())

	require.NoError(t, repo.UpdateBalances(ctx, w.ID,
		decimal.RequireFromString("0.123456789012345678"),
		decimal.RequireFromString("123456789012345678.000000000000000001"),
	))
	got, err = repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	require.Equal(t, "0.123456789012345678", got.BalanceAvailable.String())
	require.Equal(t, "123456789012345678.000000000000000001", got.BalanceLocked.String())

	var storage string
	require.NoError(t, db.Raw("SELECT typeof(balance_available) FROM wallets WHERE id = ?", w.ID).Scan(&storage).Error)
	require.Equal(t, "text", storage)
}

func TestWalletRepository_NegativeBalanceRejectedByCheck(t *testing.T) {
	db := newMigratedDB(t)
	repo := NewWalletRepository(db)
	ctx := context.Background()

	w := &entities.Wallet{UserID: uuid.New(), WalletAddress: "a1", BalanceAvailable: decimal.NewFromInt(5)}
	require.NoError(t, repo.Create(ctx, w))

	err := db.Exec("UPDATE wallets SET balance_available = ? WHERE id = ?", "-0.000000000000000001", w.ID).Error
	require.Error(t, err)
}

func TestMoneyColumns_RoundTripFullScale(t *testing.T) {
	db := newMigratedDB(t)
	ctx := context.Background()
	amount := decimal.RequireFromString("0.123456789012345678")
	fee := decimal.RequireFromString("0.001234567890123457")

	txRepo := NewTransactionRepository(db)
	from := uuid.New()
	tx := &entities.Transaction{
		FromWalletID:    &from,
		ToWalletID:      uuid.New(),
		Amount:          amount,
		Fee:             fee,
		TransactionType: entities.TransactionTypeExchangeService,
		Status:          entities.TransactionStatusCompleted,
	}
	require.NoError(t, txRepo.Create(ctx, tx))
	gotTx, err := txRepo.GetByID(ctx, tx.ID)
	require.NoError(t, err)
	require.True(t, amount.Equal(gotTx.Amount), gotTx.Amount.String())
	require.True(t, fee.Equal(gotTx.Fee), gotTx.Fee.String())

	wdRepo := NewWithdrawalRepository(db)
	walletID := uuid.New()
	require.NoError(t, wdRepo.Create(ctx, &entities.WithdrawalRequest{
		WalletID:  walletID,
		Amount:    amount,
		Fee:       fee,
		NetAmount: amount.Sub(fee),
		Status:    entities.WithdrawalStatusPending,
	}))
	rows, _, err := wdRepo.ListByWallet(ctx, walletID, 0, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "0.122222221122222221", rows[0].NetAmount.String())

	bookingRepo := NewBookingRepository(db)
	b := &entities.Booking{
		StudentID:        uuid.New(),
		TutorID:          uuid.New(),
		Amount:           amount,
		Status:           entities.BookingStatusPending,
		BlockchainStatus: entities.BlockchainStatusPending,
	}
	require.NoError(t, bookingRepo.Create(ctx, b))
	gotBooking, err := bookingRepo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	require.Equal(t, "0.123456789012345678", gotBooking.Amount.String())
}
