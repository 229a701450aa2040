package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ledger-chain.backend/internal/domain/entities"
	domainerrors "ledger-chain.backend/internal/domain/errors"
	"ledger-chain.backend/internal/interfaces/http/response"
)

type TransferService interface {
	Transfer(ctx context.Context, fromUserID uuid.UUID, input *entities.TransferInput) (*entities.TransferResponse, error)
}

type EscrowService interface {
	CreatePending(ctx context.Context, input *entities.PendingHoldInput) (*entities.HoldResponse, error)
	Confirm(ctx context.Context, input *entities.ConfirmHoldInput) (*entities.TransferResponse, error)
	Cancel(ctx context.Context, input *entities.CancelHoldInput) (*entities.HoldResponse, error)
	FindHold(ctx context.Context, bookingID uuid.UUID) (*entities.Transaction, error)
}

// TransferHandler handles direct transfers and the escrow hold lifecycle
type TransferHandler struct {
	transferUsecase TransferService
	escrowUsecase   EscrowService
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(transferUsecase TransferService, escrowUsecase EscrowService) *TransferHandler {
	return &TransferHandler{
		transferUsecase: transferUsecase,
		escrowUsecase:   escrowUsecase,
	}
}

// Transfer moves funds from the caller to a wallet address
// POST /transfer
func (h *TransferHandler) Transfer(c *gin.Context) {
	var input entities.TransferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	userID, err := callerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.transferUsecase.Transfer(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// CreatePending opens an escrow hold
// POST /transfer/booking-pending
func (h *TransferHandler) CreatePending(c *gin.Context) {
	var input entities.PendingHoldInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.escrowUsecase.CreatePending(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// ConfirmPending settles an escrow hold
// POST /transfer/booking-confirm
func (h *TransferHandler) ConfirmPending(c *gin.Context) {
	var input entities.ConfirmHoldInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.escrowUsecase.Confirm(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// CancelPending releases an escrow hold without moving funds
// POST /transfer/booking-cancel
func (h *TransferHandler) CancelPending(c *gin.Context) {
	var input entities.CancelHoldInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.escrowUsecase.Cancel(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// FindHold looks up the hold opened for a booking
// GET /transfer/booking-holds/:bookingId
func (h *TransferHandler) FindHold(c *gin.Context) {
	bookingID, err := parseIDParam(c, "bookingId")
	if err != nil {
		response.Error(c, err)
		return
	}

	tx, err := h.escrowUsecase.FindHold(c.Request.Context(), bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, tx)
}
