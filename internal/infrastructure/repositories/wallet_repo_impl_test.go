package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"ledger-chain.backend/internal/domain/entities"
	domainerrors "ledger-chain.backend/internal/domain/errors"
)

func TestWalletRepository_CreateAndLookups(t *testing.T) {
	db := newMigratedDB(t)
	repo := NewWalletRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	w := &entities.Wallet{UserID: userID, WalletAddress: "addr-1", BalanceAvailable: decimal.NewFromInt(1000)}
	require.NoError(t, repo.Create(ctx, w))
	require.NotEqual(t, uuid.Nil, w.ID)
	require.Equal(t, entities.KYCNone, w.KYCStatus)

	byID, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	require.Equal(t, userID, byID.UserID)
	require.True(t, byID.BalanceAvailable.Equal(decimal.NewFromInt(1000)))
	require.True(t, byID.BalanceLocked.IsZero())

	byUser, err := repo.GetByUserID(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, w.ID, byUser.ID)

	byAddr, err := repo.GetByAddress(ctx, "addr-1")
	require.NoError(t, err)
	require.Equal(t, w.ID, byAddr.ID)
}

func TestWalletRepository_UniqueUserAndAddress(t *testing.T) {
	db := newMigratedDB(t)
	repo := NewWalletRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	require.NoError(t, repo.Create(ctx, &entities.Wallet{UserID: userID, WalletAddress: "a1"}))

	err := repo.Create(ctx, &entities.Wallet{UserID: userID, WalletAddress: "a2"})
	require.ErrorIs(t, err, domainerrors.ErrAlreadyExists)

	err = repo.Create(ctx, &entities.Wallet{UserID: uuid.New(), WalletAddress: "a1"})
	require.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestWalletRepository_UpdateBalances(t *testing.T) {
	db := newMigratedDB(t)
	repo := NewWalletRepository(db)
	ctx := context.Background()

	w := &entities.Wallet{UserID: uuid.New(), WalletAddress: "a1", BalanceAvailable: decimal.NewFromInt(100)}
	require.NoError(t, repo.Create(ctx, w))

	require.NoError(t, repo.UpdateBalances(ctx, w.ID, decimal.RequireFromString("49.5"), decimal.RequireFromString("50.5")))
	got, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	require.Equal(t, "49.5", got.BalanceAvailable.String())
	require.Equal(t, "50.5", got.BalanceLocked.String())
	require.Equal(t, "100", got.Total().String())

	err = repo.UpdateBalances(ctx, w.ID, decimal.NewFromInt(-1), decimal.Zero)
	require.ErrorIs(t, err, domainerrors.ErrInsufficientFunds)

	err = repo.UpdateBalances(ctx, uuid.New(), decimal.Zero, decimal.Zero)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestWalletRepository_NotFoundBranches(t *testing.T) {
	db := newMigratedDB(t)
	repo := NewWalletRepository(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
	_, err = repo.GetByUserID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
	_, err = repo.GetByAddress(ctx, "missing")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestWalletRepository_DBErrorBranch(t *testing.T) {
	db := newTestDB(t)
	repo := NewWalletRepository(db)

	_, err := repo.GetByID(context.Background(), uuid.New())
	require.Error(t, err)
	require.NotErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUserRepository_GetByID(t *testing.T) {
	db := newMigratedDB(t)
	repo := NewUserRepository(db)
	id := seedUser(t, db, "Ada", "Lovelace", "TUTOR")

	u, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, "Ada Lovelace", u.FullName())
	require.Equal(t, entities.UserRoleTutor, u.Role)

	_, err = repo.GetByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}
