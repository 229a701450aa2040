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
	"ledger-chain.backend/internal/infrastructure/ledgerclient"
	"ledger-chain.backend/internal/infrastructure/models"
	"ledger-chain.backend/internal/infrastructure/repositories"
	"ledger-chain.backend/internal/interfaces/http/handlers"
	"ledger-chain.backend/internal/interfaces/http/middleware"
	"ledger-chain.backend/internal/interfaces/http/response"
	"ledger-chain.backend/internal/usecases"
	"ledger-chain.backend/pkg/logger"
	"ledger-chain.backend/pkg/redis"
)

const (
	serviceName     = "booking-service"
	serviceVersion  = "1.0.0"
	reconcileBatch  = 50
	shutdownTimeout = 10 * time.Second
)

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
	ctx := context.WithValue(context.Background(), logger.ServiceKey, serviceName)

	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	response.ExposeErrorDetails(!cfg.Server.IsProduction())

	if cfg.Redis.Enabled {
		if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
			return fmt.Errorf("failed to initialize redis: %w", err)
		}
		defer redis.Close()
	}

	db, err := openDB(bookingDatabase(cfg))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if cfg.Database.AutoMigrate {
		if err := models.MigrateBooking(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	client := ledgerclient.New(cfg.Booking.LedgerURL, cfg.Booking.ServiceKey, cfg.Booking.RequestTimeout)
	bookingUsecase, router := buildApp(db, client)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reconcileJob := jobs.NewBookingReconcileJob(bookingUsecase, cfg.Booking.ReconcileInterval, reconcileBatch)
	go reconcileJob.Start(ctx)
	defer reconcileJob.Stop()

	logger.Info(ctx, "Booking service starting",
		zap.String("port", cfg.Booking.Port),
		zap.String("ledger", cfg.Booking.LedgerURL),
	)
	if err := runServer(ctx, router, cfg.Booking.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// bookingDatabase points the shared database settings at the booking schema
func bookingDatabase(cfg *config.Config) config.DatabaseConfig {
	db := cfg.Database
	db.DBName = cfg.Booking.DBName
	if db.Driver == datasources.DriverSQLite {
		db.SQLitePath = cfg.Booking.DBName + ".db"
	}
	return db
}

func buildApp(db *gorm.DB, ledger usecases.LedgerClient) (*usecases.BookingUsecase, *gin.Engine) {
	bookingRepo := repositories.NewBookingRepository(db)
	uow := repositories.NewUnitOfWork(db)
	bookingUsecase := usecases.NewBookingUsecase(bookingRepo, uow, ledger)
	bookingHandler := handlers.NewBookingHandler(bookingUsecase)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": serviceName, "version": serviceVersion})
	})

	bookings := r.Group("/bookings")
	{
		bookings.POST("", middleware.IdempotencyMiddleware(), bookingHandler.CreateBooking)
		bookings.GET("/:id", bookingHandler.GetBooking)
		bookings.POST("/:id/confirm", bookingHandler.ConfirmBooking)
		bookings.POST("/:id/cancel", bookingHandler.CancelBooking)
		bookings.POST("/:id/complete", bookingHandler.CompleteBooking)
	}
	return bookingUsecase, r
}

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
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
