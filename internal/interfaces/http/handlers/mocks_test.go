package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"ledger-chain.backend/internal/domain/entities"
	"ledger-chain.backend/pkg/utils"
)

type mockLedgerService struct{ mock.Mock }

func (m *mockLedgerService) GetChainInfo(ctx context.Context) (*entities.ChainInfo, error) {
	args := m.Called(ctx)
	info, _ := args.Get(0).(*entities.ChainInfo)
	return info, args.Error(1)
}

func (m *mockLedgerService) VerifyChainIntegrity(ctx context.Context) (*entities.IntegrityResult, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).(*entities.IntegrityResult)
	return res, args.Error(1)
}

func (m *mockLedgerService) GetBlock(ctx context.Context, index int64) (*entities.BlockVerification, error) {
	args := m.Called(ctx, index)
	res, _ := args.Get(0).(*entities.BlockVerification)
	return res, args.Error(1)
}

func (m *mockLedgerService) ListBlocks(ctx context.Context, p utils.PaginationParams) ([]*entities.LedgerBlock, utils.PaginationMeta, error) {
	args := m.Called(ctx, p)
	blocks, _ := args.Get(0).([]*entities.LedgerBlock)
	return blocks, args.Get(1).(utils.PaginationMeta), args.Error(2)
}

type mockWalletService struct{ mock.Mock }

func (m *mockWalletService) GetBalance(ctx context.Context, userID uuid.UUID) (*entities.BalanceResponse, error) {
	args := m.Called(ctx, userID)
	res, _ := args.Get(0).(*entities.BalanceResponse)
	return res, args.Error(1)
}

func (m *mockWalletService) Deposit(ctx context.Context, userID uuid.UUID, input *entities.DepositInput) (*entities.TransferResponse, error) {
	args := m.Called(ctx, userID, input)
	res, _ := args.Get(0).(*entities.TransferResponse)
	return res, args.Error(1)
}

func (m *mockWalletService) GetHistory(ctx context.Context, userID uuid.UUID, filter entities.TransactionFilter, p utils.PaginationParams) ([]*entities.Transaction, utils.PaginationMeta, error) {
	args := m.Called(ctx, userID, filter, p)
	txs, _ := args.Get(0).([]*entities.Transaction)
	return txs, args.Get(1).(utils.PaginationMeta), args.Error(2)
}

func (m *mockWalletService) GetTransaction(ctx context.Context, userID, txID uuid.UUID) (*entities.Transaction, error) {
	args := m.Called(ctx, userID, txID)
	tx, _ := args.Get(0).(*entities.Transaction)
	return tx, args.Error(1)
}

func (m *mockWalletService) GetStats(ctx context.Context, userID uuid.UUID) *entities.WalletStats {
	args := m.Called(ctx, userID)
	return args.Get(0).(*entities.WalletStats)
}

type mockTransferService struct{ mock.Mock }

func (m *mockTransferService) Transfer(ctx context.Context, fromUserID uuid.UUID, input *entities.TransferInput) (*entities.TransferResponse, error) {
	args := m.Called(ctx, fromUserID, input)
	res, _ := args.Get(0).(*entities.TransferResponse)
	return res, args.Error(1)
}

type mockEscrowService struct{ mock.Mock }

func (m *mockEscrowService) CreatePending(ctx context.Context, input *entities.PendingHoldInput) (*entities.HoldResponse, error) {
	args := m.Called(ctx, input)
	res, _ := args.Get(0).(*entities.HoldResponse)
	return res, args.Error(1)
}

func (m *mockEscrowService) Confirm(ctx context.Context, input *entities.ConfirmHoldInput) (*entities.TransferResponse, error) {
	args := m.Called(ctx, input)
	res, _ := args.Get(0).(*entities.TransferResponse)
	return res, args.Error(1)
}

func (m *mockEscrowService) Cancel(ctx context.Context, input *entities.CancelHoldInput) (*entities.HoldResponse, error) {
	args := m.Called(ctx, input)
	res, _ := args.Get(0).(*entities.HoldResponse)
	return res, args.Error(1)
}

func (m *mockEscrowService) FindHold(ctx context.Context, bookingID uuid.UUID) (*entities.Transaction, error) {
	args := m.Called(ctx, bookingID)
	res, _ := args.Get(0).(*entities.Transaction)
	return res, args.Error(1)
}

type mockAuditService struct{ mock.Mock }

func (m *mockAuditService) GenerateAuditReport(ctx context.Context, walletID uuid.UUID, start, end time.Time) (*entities.AuditReport, error) {
	args := m.Called(ctx, walletID, start, end)
	res, _ := args.Get(0).(*entities.AuditReport)
	return res, args.Error(1)
}

type mockWithdrawalService struct{ mock.Mock }

func (m *mockWithdrawalService) RequestWithdrawal(ctx context.Context, userID uuid.UUID, input *entities.WithdrawalInput) (*entities.WithdrawalResponse, error) {
	args := m.Called(ctx, userID, input)
	res, _ := args.Get(0).(*entities.WithdrawalResponse)
	return res, args.Error(1)
}

func (m *mockWithdrawalService) ListWithdrawals(ctx context.Context, userID uuid.UUID, p utils.PaginationParams) ([]*entities.WithdrawalRequest, utils.PaginationMeta, error) {
	args := m.Called(ctx, userID, p)
	items, _ := args.Get(0).([]*entities.WithdrawalRequest)
	return items, args.Get(1).(utils.PaginationMeta), args.Error(2)
}

type mockBookingService struct{ mock.Mock }

func (m *mockBookingService) CreateReservation(ctx context.Context, input *entities.CreateBookingInput) (*entities.Booking, error) {
	args := m.Called(ctx, input)
	res, _ := args.Get(0).(*entities.Booking)
	return res, args.Error(1)
}

func (m *mockBookingService) GetReservation(ctx context.Context, id uuid.UUID) (*entities.Booking, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*entities.Booking)
	return res, args.Error(1)
}

func (m *mockBookingService) ConfirmReservation(ctx context.Context, id uuid.UUID, input *entities.ConfirmBookingInput) (*entities.Booking, error) {
	args := m.Called(ctx, id, input)
	res, _ := args.Get(0).(*entities.Booking)
	return res, args.Error(1)
}

func (m *mockBookingService) CancelReservation(ctx context.Context, id uuid.UUID, input *entities.CancelBookingInput) (*entities.Booking, error) {
	args := m.Called(ctx, id, input)
	res, _ := args.Get(0).(*entities.Booking)
	return res, args.Error(1)
}

func (m *mockBookingService) CompleteReservation(ctx context.Context, id uuid.UUID) (*entities.Booking, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*entities.Booking)
	return res, args.Error(1)
}
