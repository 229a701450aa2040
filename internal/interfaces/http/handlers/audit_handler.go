package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ledger-chain.backend/internal/domain/entities"
	domainerrors "ledger-chain.backend/internal/domain/errors"
	"ledger-chain.backend/internal/interfaces/http/response"
)

const defaultAuditWindow = 30 * 24 * time.Hour

type AuditService interface {
	GenerateAuditReport(ctx context.Context, walletID uuid.UUID, start, end time.Time) (*entities.AuditReport, error)
}

type BalanceReader interface {
	GetBalance(ctx context.Context, userID uuid.UUID) (*entities.BalanceResponse, error)
}

// AuditHandler serves audit reports
type AuditHandler struct {
	auditUsecase AuditService
	wallets      BalanceReader
	now          func() time.Time
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditUsecase AuditService, wallets BalanceReader) *AuditHandler {
	return &AuditHandler{auditUsecase: auditUsecase, wallets: wallets, now: time.Now}
}

// GetReport builds an audit report. Without walletId the caller's wallet
// is used; without dates the last 30 days are covered.
// GET /audit?walletId=&startDate=&endDate=
func (h *AuditHandler) GetReport(c *gin.Context) {
	ctx := c.Request.Context()

	var walletID uuid.UUID
	if raw := c.Query("walletId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("Invalid walletId"))
			return
		}
		walletID = id
	} else {
		userID, err := callerID(c)
		if err != nil {
			response.Error(c, err)
			return
		}
		balance, err := h.wallets.GetBalance(ctx, userID)
		if err != nil {
			response.Error(c, err)
			return
		}
		walletID = balance.Wallet.ID
	}

	start, err := parseTimeQuery(c, "startDate", false)
	if err != nil {
		response.Error(c, err)
		return
	}
	end, err := parseTimeQuery(c, "endDate", true)
	if err != nil {
		response.Error(c, err)
		return
	}
	if end == nil {
		now := h.now()
		end = &now
	}
	if start == nil {
		from := end.Add(-defaultAuditWindow)
		start = &from
	}

	report, err := h.auditUsecase.GenerateAuditReport(ctx, walletID, *start, *end)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, report)
}
