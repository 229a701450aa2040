package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ledger-chain.backend/internal/domain/entities"
	domainerrors "ledger-chain.backend/internal/domain/errors"
	"ledger-chain.backend/internal/interfaces/http/response"
	"ledger-chain.backend/pkg/utils"
)

type WithdrawalService interface {
	RequestWithdrawal(ctx context.Context, userID uuid.UUID, input *entities.WithdrawalInput) (*entities.WithdrawalResponse, error)
	ListWithdrawals(ctx context.Context, userID uuid.UUID, pagination utils.PaginationParams) ([]*entities.WithdrawalRequest, utils.PaginationMeta, error)
}

// WithdrawalHandler handles payout requests
type WithdrawalHandler struct {
	withdrawalUsecase WithdrawalService
}

// NewWithdrawalHandler creates a new withdrawal handler
func NewWithdrawalHandler(withdrawalUsecase WithdrawalService) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawalUsecase: withdrawalUsecase}
}

// RequestWithdrawal locks funds for a bank payout
// POST /withdrawals
func (h *WithdrawalHandler) RequestWithdrawal(c *gin.Context) {
	var input entities.WithdrawalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	userID, err := callerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.withdrawalUsecase.RequestWithdrawal(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// ListWithdrawals lists the caller's withdrawal requests
// GET /withdrawals
func (h *WithdrawalHandler) ListWithdrawals(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	items, meta, err := h.withdrawalUsecase.ListWithdrawals(c.Request.Context(), userID, paginationFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, items, meta)
}
