package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ledger-chain.backend/internal/interfaces/http/handlers"
	"ledger-chain.backend/internal/interfaces/http/middleware"
)

const serviceVersion = "1.0.0"

type routeDeps struct {
	ledgerHandler     *handlers.LedgerHandler
	walletHandler     *handlers.WalletHandler
	transferHandler   *handlers.TransferHandler
	auditHandler      *handlers.AuditHandler
	withdrawalHandler *handlers.WithdrawalHandler
	identity          gin.HandlerFunc
	service           gin.HandlerFunc
	serviceOrIdentity gin.HandlerFunc
}

func registerLedgerRoutes(r *gin.Engine, d routeDeps) {
	idempotent := middleware.IdempotencyMiddleware()

	// Escrow hold lifecycle (booking service only)
	escrow := r.Group("/transfer")
	escrow.Use(d.service)
	{
		escrow.POST("/booking-pending", idempotent, d.transferHandler.CreatePending)
		escrow.POST("/booking-confirm", d.transferHandler.ConfirmPending)
		escrow.POST("/booking-cancel", d.transferHandler.CancelPending)
		escrow.GET("/booking-holds/:bookingId", d.transferHandler.FindHold)
	}

	// Caller-scoped wallet routes
	user := r.Group("")
	user.Use(d.identity)
	{
		user.GET("/balance", d.walletHandler.GetBalance)
		user.POST("/transfer", idempotent, d.transferHandler.Transfer)
		user.POST("/deposit", idempotent, d.walletHandler.Deposit)
		user.GET("/history", d.walletHandler.GetHistory)
		user.GET("/stats", d.walletHandler.GetStats)
		user.GET("/audit", d.auditHandler.GetReport)
		user.POST("/withdrawals", idempotent, d.withdrawalHandler.RequestWithdrawal)
		user.GET("/withdrawals", d.withdrawalHandler.ListWithdrawals)
	}

	r.GET("/transactions/:id", d.serviceOrIdentity, d.walletHandler.GetTransaction)

	// Public chain inspection
	ledger := r.Group("/ledger")
	{
		ledger.GET("/info", d.ledgerHandler.GetInfo)
		ledger.GET("/verify", d.ledgerHandler.Verify)
		ledger.GET("/blocks", d.ledgerHandler.ListBlocks)
		ledger.GET("/blocks/:index", d.ledgerHandler.GetBlock)
	}
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			origin = "*"
		}
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, Idempotency-Key, X-Request-ID, X-User-ID, X-Service-Key")
		c.Header("Access-Control-Expose-Headers", "X-Request-ID, X-Idempotency-Hit")
		if origin != "*" {
			c.Header("Access-Control-Allow-Credentials", "true")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine, service string) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": service,
			"version": serviceVersion,
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
