package usecases_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"ledger-chain.backend/internal/domain/entities"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

func (m *MockUnitOfWork) WithLock(ctx context.Context) context.Context {
	return ctx
}

// Mock LedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) LockHead(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLedgerRepository) GetLast(ctx context.Context) (*entities.LedgerBlock, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.LedgerBlock), args.Error(1)
}

func (m *MockLedgerRepository) Create(ctx context.Context, block *entities.LedgerBlock) error {
	args := m.Called(ctx, block)
	return args.Error(0)
}

func (m *MockLedgerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.LedgerBlock, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.LedgerBlock), args.Error(1)
}

func (m *MockLedgerRepository) GetByIndex(ctx context.Context, index int64) (*entities.LedgerBlock, error) {
	args := m.Called(ctx, index)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.LedgerBlock), args.Error(1)
}

func (m *MockLedgerRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.LedgerBlock, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]*entities.LedgerBlock), args.Error(1)
}

func (m *MockLedgerRepository) ListFrom(ctx context.Context, fromIndex int64, limit int) ([]*entities.LedgerBlock, error) {
	args := m.Called(ctx, fromIndex, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LedgerBlock), args.Error(1)
}

func (m *MockLedgerRepository) List(ctx context.Context, limit, offset int) ([]*entities.LedgerBlock, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.LedgerBlock), args.Get(1).(int64), args.Error(2)
}

func (m *MockLedgerRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// Mock WalletRepository
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) Create(ctx context.Context, wallet *entities.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Wallet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetByAddress(ctx context.Context, address string) (*entities.Wallet, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Wallet), args.Error(1)
}

func (m *MockWalletRepository) UpdateBalances(ctx context.Context, id uuid.UUID, available, locked decimal.Decimal) error {
	args := m.Called(ctx, id, available, locked)
	return args.Error(0)
}

// Mock LedgerClient
type MockLedgerClient struct {
	mock.Mock
}

func (m *MockLedgerClient) AppendPending(ctx context.Context, input *entities.PendingHoldInput) (*entities.HoldResponse, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.HoldResponse), args.Error(1)
}

func (m *MockLedgerClient) Confirm(ctx context.Context, input *entities.ConfirmHoldInput) (*entities.TransferResponse, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TransferResponse), args.Error(1)
}

func (m *MockLedgerClient) Cancel(ctx context.Context, input *entities.CancelHoldInput) (*entities.HoldResponse, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.HoldResponse), args.Error(1)
}

func (m *MockLedgerClient) GetTransaction(ctx context.Context, id uuid.UUID) (*entities.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Transaction), args.Error(1)
}

func (m *MockLedgerClient) FindHold(ctx context.Context, bookingID uuid.UUID) (*entities.Transaction, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Transaction), args.Error(1)
}

// Mock BlockSigner
type MockSigner struct {
	mock.Mock
}

func (m *MockSigner) Sign(hash string) (string, error) {
	args := m.Called(hash)
	return args.String(0), args.Error(1)
}

func (m *MockSigner) Verify(hash, signature string) bool {
	args := m.Called(hash, signature)
	return args.Bool(0)
}

func (m *MockSigner) Address() string {
	args := m.Called()
	return args.String(0)
}
