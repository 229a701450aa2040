package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"ledger-chain.backend/internal/config"
	"ledger-chain.backend/internal/domain/entities"
	"ledger-chain.backend/internal/infrastructure/datasources"
	"ledger-chain.backend/internal/infrastructure/repositories"
	"ledger-chain.backend/internal/usecases"
)

var errChainInvalid = errors.New("ledger chain is invalid")

var openChainDB = datasources.Open

type chainVerifier interface {
	VerifyChainIntegrity(ctx context.Context) (*entities.IntegrityResult, error)
}

type chainVerifyDeps struct {
	loadEnv func() error
	loadCfg func() *config.Config
	prepare func(cfg *config.Config) (chainVerifier, io.Closer, error)
	out     io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func defaultChainVerifyDeps() chainVerifyDeps {
	return chainVerifyDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		prepare: prepareVerifier,
		out:     os.Stdout,
	}
}

func prepareVerifier(cfg *config.Config) (chainVerifier, io.Closer, error) {
	db, err := openChainDB(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect db: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init sql db: %w", err)
	}
	return newVerifier(db), sqlDB, nil
}

func newVerifier(db *gorm.DB) chainVerifier {
	return usecases.NewLedgerUsecase(
		repositories.NewLedgerRepository(db),
		repositories.NewUnitOfWork(db),
		nil,
	)
}

func runChainVerify(args []string, deps chainVerifyDeps) error {
	def := defaultChainVerifyDeps()
	if deps.loadEnv == nil {
		deps.loadEnv = def.loadEnv
	}
	if deps.loadCfg == nil {
		deps.loadCfg = def.loadCfg
	}
	if deps.prepare == nil {
		deps.prepare = def.prepare
	}
	if deps.out == nil {
		deps.out = def.out
	}

	fs := flag.NewFlagSet("chainverify", flag.ContinueOnError)
	sqlitePath := fs.String("sqlite", "", "verify a sqlite database file instead of the configured database")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := deps.loadCfg()
	if *sqlitePath != "" {
		cfg.Database.Driver = datasources.DriverSQLite
		cfg.Database.SQLitePath = *sqlitePath
	}

	verifier, closer, err := deps.prepare(cfg)
	if err != nil {
		return err
	}
	if closer == nil {
		closer = nopCloser{}
	}
	defer closer.Close()

	result, err := verifier.VerifyChainIntegrity(context.Background())
	if err != nil {
		return fmt.Errorf("failed to verify chain: %w", err)
	}

	_, _ = fmt.Fprintf(deps.out, "blocks=%d\n", result.BlockCount)
	_, _ = fmt.Fprintf(deps.out, "valid=%t\n", result.Valid)
	if result.Valid {
		return nil
	}
	if result.InvalidBlockIndex != nil {
		_, _ = fmt.Fprintf(deps.out, "invalid_block=%d\n", *result.InvalidBlockIndex)
	}
	_, _ = fmt.Fprintf(deps.out, "reason=%s\n", result.Reason)
	return errChainInvalid
}

func main() {
	if err := runChainVerify(os.Args[1:], defaultChainVerifyDeps()); err != nil {
		log.Fatal(err)
	}
}
