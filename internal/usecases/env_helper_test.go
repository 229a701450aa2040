package usecases_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ledger-chain.backend/internal/domain/entities"
	domainRepos "ledger-chain.backend/internal/domain/repositories"
	"ledger-chain.backend/internal/infrastructure/datasources/sqlite"
	"ledger-chain.backend/internal/infrastructure/models"
	"ledger-chain.backend/internal/infrastructure/repositories"
	"ledger-chain.backend/internal/usecases"
	"ledger-chain.backend/pkg/crypto"
)

var (
	startingBalance = decimal.NewFromInt(1000)
	feeRate         = decimal.RequireFromString(usecases.DefaultFeeRate)
)

// ledgerEnv wires every ledger-side usecase over one in-memory database
type ledgerEnv struct {
	db             *gorm.DB
	uow            domainRepos.UnitOfWork
	walletRepo     *repositories.WalletRepository
	userRepo       *repositories.UserRepository
	txRepo         *repositories.TransactionRepository
	ledgerRepo     *repositories.LedgerRepository
	withdrawalRepo *repositories.WithdrawalRepository

	ledger      *usecases.LedgerUsecase
	wallets     *usecases.WalletUsecase
	transfers   *usecases.TransferUsecase
	escrow      *usecases.EscrowUsecase
	audit       *usecases.AuditUsecase
	withdrawals *usecases.WithdrawalUsecase
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := fmt.Sprintf("%s_%d", strings.ReplaceAll(t.Name(), "/", "_"), time.Now().UnixNano())
	db, err := sqlite.NewGormDB(sqlite.MemoryDSN(name), 1)
	require.NoError(t, err)
	require.NoError(t, models.MigrateLedger(db))
	require.NoError(t, models.MigrateBooking(db))
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

func newLedgerEnv(t *testing.T, signer usecases.BlockSigner) *ledgerEnv {
	t.Helper()
	db := newTestDB(t)
	e := &ledgerEnv{
		db:             db,
		uow:            repositories.NewUnitOfWork(db),
		walletRepo:     repositories.NewWalletRepository(db),
		userRepo:       repositories.NewUserRepository(db),
		txRepo:         repositories.NewTransactionRepository(db),
		ledgerRepo:     repositories.NewLedgerRepository(db),
		withdrawalRepo: repositories.NewWithdrawalRepository(db),
	}
	e.build(signer, e.ledgerRepo)
	return e
}

// build (re)creates the usecases, letting tests swap the ledger repository
func (e *ledgerEnv) build(signer usecases.BlockSigner, ledgerRepo domainRepos.LedgerRepository) {
	e.ledger = usecases.NewLedgerUsecase(ledgerRepo, e.uow, signer)
	e.wallets = usecases.NewWalletUsecase(e.walletRepo, e.userRepo, e.txRepo, e.ledger, e.uow, startingBalance, 0)
	e.transfers = usecases.NewTransferUsecase(e.walletRepo, e.userRepo, e.txRepo, e.ledger, e.uow, feeRate)
	e.escrow = usecases.NewEscrowUsecase(e.walletRepo, e.userRepo, e.txRepo, e.ledger, e.uow)
	e.audit = usecases.NewAuditUsecase(e.walletRepo, e.txRepo, ledgerRepo)
	e.withdrawals = usecases.NewWithdrawalUsecase(e.walletRepo, e.withdrawalRepo, e.ledger, e.uow, feeRate)
}

func (e *ledgerEnv) seedUser(t *testing.T, first string, role entities.UserRole) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, e.db.Create(&models.User{
		ID:        id,
		FirstName: first,
		LastName:  "Test",
		Email:     strings.ToLower(first) + "@mail.test",
		Role:      string(role),
	}).Error)
	return id
}

// bareWallet creates a wallet with an exact balance and no ledger history
func (e *ledgerEnv) bareWallet(t *testing.T, userID uuid.UUID, available int64) *entities.Wallet {
	t.Helper()
	address, err := crypto.GenerateWalletAddress()
	require.NoError(t, err)
	w := &entities.Wallet{UserID: userID, WalletAddress: address, BalanceAvailable: decimal.NewFromInt(available)}
	require.NoError(t, e.walletRepo.Create(context.Background(), w))
	return w
}

func (e *ledgerEnv) wallet(t *testing.T, userID uuid.UUID) *entities.Wallet {
	t.Helper()
	w, err := e.walletRepo.GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	return w
}

func (e *ledgerEnv) blockCount(t *testing.T) int64 {
	t.Helper()
	n, err := e.ledgerRepo.Count(context.Background())
	require.NoError(t, err)
	return n
}

func (e *ledgerEnv) requireValidChain(t *testing.T) {
	t.Helper()
	res, err := e.ledger.VerifyChainIntegrity(context.Background())
	require.NoError(t, err)
	require.True(t, res.Valid, res.Reason)
}

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, decimal.RequireFromString(want).Equal(got), "want %s got %s", want, got.String())
}

// failingLedgerRepo fails block persistence to exercise rollback
type failingLedgerRepo struct {
	domainRepos.LedgerRepository
	err error
}

func (f *failingLedgerRepo) Create(context.Context, *entities.LedgerBlock) error {
	return f.err
}
