package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"ledger-chain.backend/internal/domain/entities"
)

func TestWithdrawalRepository_CreateAndList(t *testing.T) {
	db := newMigratedDB(t)
	repo := NewWithdrawalRepository(db)
	ctx := context.Background()

	walletID := uuid.New()
	for i := 0; i < 3; i++ {
		w := &entities.WithdrawalRequest{
			WalletID:  walletID,
			Amount:    decimal.NewFromInt(100),
			Fee:       decimal.NewFromInt(1),
			NetAmount: decimal.NewFromInt(99),
			BankDetails: entities.BankDetails{
				AccountHolder: "Ada Lovelace",
				IBAN:          "FR7630006000011234567890189",
				BankName:      "Test Bank",
			},
			Status: entities.WithdrawalStatusPending,
		}
		require.NoError(t, repo.Create(ctx, w))
		require.NotEqual(t, uuid.Nil, w.ID)
	}
	require.NoError(t, repo.Create(ctx, &entities.WithdrawalRequest{WalletID: uuid.New(), Status: entities.WithdrawalStatusPending}))

	rows, total, err := repo.ListByWallet(ctx, walletID, 2, 0)
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, rows, 2)
	require.Equal(t, "FR7630006000011234567890189", rows[0].BankDetails.IBAN)
	require.Equal(t, "99", rows[0].NetAmount.String())

	rows, total, err = repo.ListByWallet(ctx, walletID, 0, 0)
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, rows, 3)
}
