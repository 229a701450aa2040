package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ledger-chain.backend/internal/domain/entities"
	domainerrors "ledger-chain.backend/internal/domain/errors"
)

func TestTransferHandler_Transfer(t *testing.T) {
	userID := uuid.New()
	transfers := new(mockTransferService)
	h := NewTransferHandler(transfers, new(mockEscrowService))
	r := newRouter(userID)
	r.POST("/transfer", h.Transfer)

	transfers.On("Transfer", mock.Anything, userID, mock.MatchedBy(func(in *entities.TransferInput) bool {
		return in.ToWalletAddress == "addr-b" && in.Amount.Equal(decimal.NewFromInt(100))
	})).Return(&entities.TransferResponse{
		Transaction: &entities.Transaction{Amount: decimal.NewFromInt(100), Fee: decimal.NewFromInt(1)},
		FromUser:    entities.PartyBalance{ID: userID, NewBalance: decimal.NewFromInt(899)},
	}, nil).Once()

	w, env := doJSON(t, r, http.MethodPost, "/transfer", `{"toWalletAddress":"addr-b","amount":100}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, string(env.Data), `"newBalance":"899"`)

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"insufficient", fmt.Errorf("need 101: %w", domainerrors.ErrInsufficientFunds), http.StatusPaymentRequired, domainerrors.CodeInsufficientFunds},
		{"self", domainerrors.ErrSelfTransfer, http.StatusBadRequest, domainerrors.CodeSelfTransfer},
		{"unknown recipient", fmt.Errorf("recipient wallet: %w", domainerrors.ErrNotFound), http.StatusNotFound, domainerrors.CodeNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			transfers.On("Transfer", mock.Anything, userID, mock.Anything).Return(nil, tc.err).Once()
			w, env := doJSON(t, r, http.MethodPost, "/transfer", `{"toWalletAddress":"x","amount":"1"}`)
			require.Equal(t, tc.status, w.Code)
			require.Equal(t, tc.code, env.Code)
			require.False(t, env.Success)
		})
	}

	w, _ = doJSON(t, r, http.MethodPost, "/transfer", `{"amount":1}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	anon := newRouter(uuid.Nil)
	anon.POST("/transfer", h.Transfer)
	w, _ = doJSON(t, anon, http.MethodPost, "/transfer", `{"toWalletAddress":"x","amount":1}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	transfers.AssertExpectations(t)
}

func TestTransferHandler_EscrowLifecycle(t *testing.T) {
	escrow := new(mockEscrowService)
	h := NewTransferHandler(new(mockTransferService), escrow)
	r := newRouter(uuid.Nil)
	r.POST("/transfer/booking-pending", h.CreatePending)
	r.POST("/transfer/booking-confirm", h.ConfirmPending)
	r.POST("/transfer/booking-cancel", h.CancelPending)

	student, tutor, txID := uuid.New(), uuid.New(), uuid.New()

	escrow.On("CreatePending", mock.Anything, mock.MatchedBy(func(in *entities.PendingHoldInput) bool {
		return in.FromUserID == student && in.ToUserID == tutor && in.Metadata.String("bookingId") == "b-1"
	})).Return(&entities.HoldResponse{
		Transaction: &entities.Transaction{ID: txID, Status: entities.TransactionStatusPending},
		LedgerBlock: &entities.LedgerBlock{BlockType: entities.BlockTypeTransferPending},
	}, nil).Once()
	w, env := doJSON(t, r, http.MethodPost, "/transfer/booking-pending", map[string]interface{}{
		"fromUserId": student, "toUserId": tutor, "amount": "50",
		"metadata": map[string]string{"bookingId": "b-1"},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, string(env.Data), `"blockType":"TRANSFER_PENDING"`)

	escrow.On("Confirm", mock.Anything, mock.MatchedBy(func(in *entities.ConfirmHoldInput) bool {
		return in.TransactionID == txID && in.BookingID == "b-1"
	})).Return(&entities.TransferResponse{
		Transaction: &entities.Transaction{ID: txID, Status: entities.TransactionStatusCompleted},
	}, nil).Once()
	w, env = doJSON(t, r, http.MethodPost, "/transfer/booking-confirm", map[string]interface{}{
		"transactionId": txID, "bookingId": "b-1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, string(env.Data), `"status":"completed"`)

	escrow.On("Confirm", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("transaction already processed: %w", domainerrors.ErrInvalidState)).Once()
	w, env = doJSON(t, r, http.MethodPost, "/transfer/booking-confirm", map[string]interface{}{"transactionId": txID})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, domainerrors.CodeInvalidState, env.Code)
	require.Contains(t, env.Message, "already processed")

	escrow.On("Cancel", mock.Anything, mock.MatchedBy(func(in *entities.CancelHoldInput) bool {
		return in.TransactionID == txID && in.Reason == "tutor unavailable"
	})).Return(&entities.HoldResponse{
		Transaction: &entities.Transaction{ID: txID, Status: entities.TransactionStatusCancelled},
	}, nil).Once()
	w, env = doJSON(t, r, http.MethodPost, "/transfer/booking-cancel", map[string]interface{}{
		"transactionId": txID, "reason": "tutor unavailable",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, string(env.Data), `"status":"cancelled"`)

	escrow.On("Cancel", mock.Anything, mock.Anything).Return(nil, domainerrors.ErrNotFound).Once()
	w, _ = doJSON(t, r, http.MethodPost, "/transfer/booking-cancel", map[string]interface{}{"transactionId": uuid.New()})
	require.Equal(t, http.StatusNotFound, w.Code)

	escrow.On("CreatePending", mock.Anything, mock.Anything).Return(nil, domainerrors.ErrSelfTransfer).Once()
	w, _ = doJSON(t, r, http.MethodPost, "/transfer/booking-pending", map[string]interface{}{
		"fromUserId": student, "toUserId": student, "amount": "5",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	for _, path := range []string{"/transfer/booking-pending", "/transfer/booking-confirm", "/transfer/booking-cancel"} {
		w, env = doJSON(t, r, http.MethodPost, path, `{}`)
		require.Equal(t, http.StatusBadRequest, w.Code, path)
		require.Equal(t, domainerrors.CodeBadRequest, env.Code, path)
	}
	escrow.AssertExpectations(t)
}

func TestTransferHandler_FindHold(t *testing.T) {
	escrow := new(mockEscrowService)
	h := NewTransferHandler(new(mockTransferService), escrow)
	r := newRouter(uuid.Nil)
	r.GET("/transfer/booking-holds/:bookingId", h.FindHold)

	bookingID, txID := uuid.New(), uuid.New()
	escrow.On("FindHold", mock.Anything, bookingID).
		Return(&entities.Transaction{ID: txID, Status: entities.TransactionStatusPending}, nil).Once()

	w, env := doJSON(t, r, http.MethodGet, "/transfer/booking-holds/"+bookingID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, string(env.Data), txID.String())

	missing := uuid.New()
	escrow.On("FindHold", mock.Anything, missing).Return(nil, domainerrors.ErrNotFound).Once()
	w, env = doJSON(t, r, http.MethodGet, "/transfer/booking-holds/"+missing.String(), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, domainerrors.CodeNotFound, env.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/transfer/booking-holds/not-a-uuid", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	escrow.AssertExpectations(t)
}
