package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ledger-chain.backend/internal/domain/entities"
	domainerrors "ledger-chain.backend/internal/domain/errors"
	"ledger-chain.backend/internal/interfaces/http/middleware"
	"ledger-chain.backend/internal/interfaces/http/response"
	"ledger-chain.backend/pkg/utils"
)

type WalletService interface {
	GetBalance(ctx context.Context, userID uuid.UUID) (*entities.BalanceResponse, error)
	Deposit(ctx context.Context, userID uuid.UUID, input *entities.DepositInput) (*entities.TransferResponse, error)
	GetHistory(ctx context.Context, userID uuid.UUID, filter entities.TransactionFilter, pagination utils.PaginationParams) ([]*entities.Transaction, utils.PaginationMeta, error)
	GetTransaction(ctx context.Context, userID, txID uuid.UUID) (*entities.Transaction, error)
	GetStats(ctx context.Context, userID uuid.UUID) *entities.WalletStats
}

// WalletHandler handles balance, deposit, history and stats endpoints
type WalletHandler struct {
	walletUsecase WalletService
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(walletUsecase WalletService) *WalletHandler {
	return &WalletHandler{walletUsecase: walletUsecase}
}

// GetBalance returns the caller's wallet, creating it on first use
// GET /balance
func (h *WalletHandler) GetBalance(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	balance, err := h.walletUsecase.GetBalance(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, balance)
}

// Deposit credits the caller's wallet
// POST /deposit
func (h *WalletHandler) Deposit(c *gin.Context) {
	var input entities.DepositInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	userID, err := callerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.walletUsecase.Deposit(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// GetHistory lists the caller's transactions
// GET /history?type=&status=&from=&to=&page=&limit=
func (h *WalletHandler) GetHistory(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	filter := entities.TransactionFilter{
		Type:   entities.TransactionType(c.Query("type")),
		Status: entities.TransactionStatus(c.Query("status")),
	}
	if filter.Type != "" && !filter.Type.IsValid() {
		response.Error(c, domainerrors.BadRequest("Invalid transaction type"))
		return
	}
	if filter.From, err = parseTimeQuery(c, "from", false); err != nil {
		response.Error(c, err)
		return
	}
	if filter.To, err = parseTimeQuery(c, "to", true); err != nil {
		response.Error(c, err)
		return
	}

	txs, meta, err := h.walletUsecase.GetHistory(c.Request.Context(), userID, filter, paginationFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, txs, meta)
}

// GetTransaction returns one transaction. Users only see their own;
// trusted services may read any.
// GET /transactions/:id
func (h *WalletHandler) GetTransaction(c *gin.Context) {
	txID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	scope := uuid.Nil
	if !middleware.IsServiceCaller(c) {
		if scope, err = callerID(c); err != nil {
			response.Error(c, err)
			return
		}
	}

	tx, err := h.walletUsecase.GetTransaction(c.Request.Context(), scope, txID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, tx)
}

// GetStats aggregates recent completed activity
// GET /stats
func (h *WalletHandler) GetStats(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, h.walletUsecase.GetStats(c.Request.Context(), userID))
}
