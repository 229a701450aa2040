package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"ledger-chain.backend/internal/config"
	"ledger-chain.backend/internal/infrastructure/datasources"
	"ledger-chain.backend/internal/infrastructure/jobs"
	"ledger-chain.backend/internal/infrastructure/models"
	"ledger-chain.backend/internal/infrastructure/repositories"
	"ledger-chain.backend/internal/infrastructure/signing"
	"ledger-chain.backend/internal/interfaces/http/handlers"
	"ledger-chain.backend/internal/interfaces/http/middleware"
	"ledger-chain.backend/internal/interfaces/http/response"
	"ledger-chain.backend/internal/usecases"
	"ledger-chain.backend/pkg/jwt"
	"ledger-chain.backend/pkg/logger"
	"ledger-chain.backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = datasources.Open
	runServer  = serveUntilDone
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	defer logger.Sync()
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	response.ExposeErrorDetails(!cfg.Server.IsProduction())

	if cfg.Redis.Enabled {
		if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
			logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
			return fmt.Errorf("failed to initialize redis: %w", err)
		}
		defer redis.Close()
		logger.Info(ctx, "Redis initialized")
	}

	db, err := openDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if cfg.Database.AutoMigrate {
		if err := models.MigrateLedger(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}
	logger.Info(ctx, "Database ready", zap.String("driver", cfg.Database.Driver))

	signer, err := newBlockSigner(cfg.Ledger.SigningKey)
	if err != nil {
		return fmt.Errorf("failed to load ledger signing key: %w", err)
	}

	app := buildApp(db, cfg, signer)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	integrityJob := jobs.NewChainIntegrityJob(app.ledger, cfg.Ledger.IntegrityCheckInterval)
	go integrityJob.Start(ctx)
	defer integrityJob.Stop()

	logger.Info(ctx, "Ledger service starting", zap.String("port", cfg.Server.Port))
	if err := runServer(ctx, app.router, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// newBlockSigner returns nil when no key is configured so the ledger
// stores blocks unsigned.
func newBlockSigner(key string) (usecases.BlockSigner, error) {
	if key == "" {
		return nil, nil
	}
	signer, err := signing.NewSigner(key)
	if err != nil {
		return nil, err
	}
	return signer, nil
}

type app struct {
	ledger *usecases.LedgerUsecase
	router *gin.Engine
}

func buildApp(db *gorm.DB, cfg *config.Config, signer usecases.BlockSigner) *app {
	walletRepo := repositories.NewWalletRepository(db)
	userRepo := repositories.NewUserRepository(db)
	txRepo := repositories.NewTransactionRepository(db)
	ledgerRepo := repositories.NewLedgerRepository(db)
	withdrawalRepo := repositories.NewWithdrawalRepository(db)
	uow := repositories.NewUnitOfWork(db)

	ledgerUsecase := usecases.NewLedgerUsecase(ledgerRepo, uow, signer)
	walletUsecase := usecases.NewWalletUsecase(walletRepo, userRepo, txRepo, ledgerUsecase, uow, cfg.Ledger.StartingBalance, cfg.Ledger.StatsWindow)
	transferUsecase := usecases.NewTransferUsecase(walletRepo, userRepo, txRepo, ledgerUsecase, uow, cfg.Ledger.FeeRate)
	escrowUsecase := usecases.NewEscrowUsecase(walletRepo, userRepo, txRepo, ledgerUsecase, uow)
	auditUsecase := usecases.NewAuditUsecase(walletRepo, txRepo, ledgerRepo)
	withdrawalUsecase := usecases.NewWithdrawalUsecase(walletRepo, withdrawalRepo, ledgerUsecase, uow, cfg.Ledger.FeeRate)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r, "ledger-service")
	registerMetricsRoute(r)
	registerLedgerRoutes(r, routeDeps{
		ledgerHandler:     handlers.NewLedgerHandler(ledgerUsecase),
		walletHandler:     handlers.NewWalletHandler(walletUsecase),
		transferHandler:   handlers.NewTransferHandler(transferUsecase, escrowUsecase),
		auditHandler:      handlers.NewAuditHandler(auditUsecase, walletUsecase),
		withdrawalHandler: handlers.NewWithdrawalHandler(withdrawalUsecase),
		identity:          middleware.IdentityMiddleware(jwtService),
		service:           middleware.ServiceAuthMiddleware(cfg.Service.KeyHash),
		serviceOrIdentity: middleware.ServiceOrIdentityMiddleware(cfg.Service.KeyHash, jwtService),
	})

	return &app{ledger: ledgerUsecase, router: r}
}

// serveUntilDone serves handler until ctx is cancelled, then drains
// in-flight requests.
func serveUntilDone(ctx context.Context, handler http.Handler, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info(context.Background(), "Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
