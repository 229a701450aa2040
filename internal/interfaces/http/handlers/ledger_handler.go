package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ledger-chain.backend/internal/domain/entities"
	domainerrors "ledger-chain.backend/internal/domain/errors"
	"ledger-chain.backend/internal/interfaces/http/response"
	"ledger-chain.backend/pkg/utils"
)

type LedgerService interface {
	GetChainInfo(ctx context.Context) (*entities.ChainInfo, error)
	VerifyChainIntegrity(ctx context.Context) (*entities.IntegrityResult, error)
	GetBlock(ctx context.Context, index int64) (*entities.BlockVerification, error)
	ListBlocks(ctx context.Context, pagination utils.PaginationParams) ([]*entities.LedgerBlock, utils.PaginationMeta, error)
}

// LedgerHandler exposes the read side of the hash chain
type LedgerHandler struct {
	ledgerUsecase LedgerService
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(ledgerUsecase LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerUsecase: ledgerUsecase}
}

// GetInfo returns block count, head and integrity
// GET /ledger/info
func (h *LedgerHandler) GetInfo(c *gin.Context) {
	info, err := h.ledgerUsecase.GetChainInfo(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, info)
}

// Verify walks the whole chain
// GET /ledger/verify
func (h *LedgerHandler) Verify(c *gin.Context) {
	result, err := h.ledgerUsecase.VerifyChainIntegrity(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// ListBlocks lists blocks newest first
// GET /ledger/blocks
func (h *LedgerHandler) ListBlocks(c *gin.Context) {
	blocks, meta, err := h.ledgerUsecase.ListBlocks(c.Request.Context(), paginationFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, blocks, meta)
}

// GetBlock returns one block with its verification flags
// GET /ledger/blocks/:index
func (h *LedgerHandler) GetBlock(c *gin.Context) {
	index, err := strconv.ParseInt(c.Param("index"), 10, 64)
	if err != nil || index < 0 {
		response.Error(c, domainerrors.BadRequest("Invalid block index"))
		return
	}

	block, err := h.ledgerUsecase.GetBlock(c.Request.Context(), index)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, block)
}
