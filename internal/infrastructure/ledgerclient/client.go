package ledgerclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ledger-chain.backend/internal/domain/entities"
	domainerrors "ledger-chain.backend/internal/domain/errors"
	"ledger-chain.backend/pkg/logger"
)

// ServiceKeyHeader carries the shared secret checked by the ledger service
const ServiceKeyHeader = "X-Service-Key"

const maxErrorBody = 4096

// Client is the booking service's typed view of the ledger HTTP API.
// Calls are never retried; a timed-out caller re-queries with GetTransaction.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

// New creates a client with a bounded per-request timeout
func New(baseURL, serviceKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewWithHTTPClient lets tests point the client at an httptest server
func NewWithHTTPClient(baseURL, serviceKey string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		httpClient: httpClient,
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
}

// AppendPending opens an escrow hold for a booking
func (c *Client) AppendPending(ctx context.Context, input *entities.PendingHoldInput) (*entities.HoldResponse, error) {
	var out entities.HoldResponse
	if err := c.do(ctx, http.MethodPost, "/transfer/booking-pending", nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Confirm settles an escrow hold
func (c *Client) Confirm(ctx context.Context, input *entities.ConfirmHoldInput) (*entities.TransferResponse, error) {
	var out entities.TransferResponse
	if err := c.do(ctx, http.MethodPost, "/transfer/booking-confirm", nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Cancel closes an escrow hold without moving funds
func (c *Client) Cancel(ctx context.Context, input *entities.CancelHoldInput) (*entities.HoldResponse, error) {
	var out entities.HoldResponse
	if err := c.do(ctx, http.MethodPost, "/transfer/booking-cancel", nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Transfer performs a direct transfer on behalf of fromUserID
func (c *Client) Transfer(ctx context.Context, fromUserID uuid.UUID, input *entities.TransferInput) (*entities.TransferResponse, error) {
	var out entities.TransferResponse
	query := url.Values{"fromUserId": []string{fromUserID.String()}}
	if err := c.do(ctx, http.MethodPost, "/transfer", query, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTransaction re-reads a transaction after an ambiguous failure
func (c *Client) GetTransaction(ctx context.Context, id uuid.UUID) (*entities.Transaction, error) {
	var out entities.Transaction
	if err := c.do(ctx, http.MethodGet, "/transactions/"+id.String(), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindHold returns the newest escrow transaction the ledger recorded for
// bookingID. It is how a booking whose hold request timed out finds out
// whether the hold was written anyway.
func (c *Client) FindHold(ctx context.Context, bookingID uuid.UUID) (*entities.Transaction, error) {
	var out entities.Transaction
	if err := c.do(ctx, http.MethodGet, "/transfer/booking-holds/"+bookingID.String(), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.serviceKey != "" {
		req.Header.Set(ServiceKeyHeader, c.serviceKey)
	}
	if reqID, ok := ctx.Value(logger.RequestIDKey).(string); ok && reqID != "" {
		req.Header.Set("X-Request-ID", reqID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn(ctx, "Ledger service unreachable", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: %v", domainerrors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", domainerrors.ErrUpstream, err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode >= http.StatusBadRequest || (decodeErr == nil && !env.Success) {
		return statusError(resp.StatusCode, env, raw)
	}
	if decodeErr != nil {
		return fmt.Errorf("%w: invalid response body: %v", domainerrors.ErrUpstream, decodeErr)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%w: invalid response data: %v", domainerrors.ErrUpstream, err)
		}
	}
	return nil
}

// statusError maps a ledger failure onto the domain error taxonomy
func statusError(status int, env envelope, raw []byte) error {
	msg := env.Message
	if msg == "" {
		msg = strings.TrimSpace(string(raw))
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
	}

	var sentinel error
	switch {
	case status == http.StatusPaymentRequired:
		sentinel = domainerrors.ErrInsufficientFunds
	case status == http.StatusNotFound:
		sentinel = domainerrors.ErrNotFound
	case status == http.StatusUnauthorized:
		sentinel = domainerrors.ErrUnauthorized
	case status == http.StatusConflict:
		sentinel = domainerrors.ErrAlreadyExists
	case status == http.StatusBadRequest && env.Code == domainerrors.CodeInvalidState:
		sentinel = domainerrors.ErrInvalidState
	case status == http.StatusBadRequest && env.Code == domainerrors.CodeSelfTransfer:
		sentinel = domainerrors.ErrSelfTransfer
	case status >= http.StatusBadRequest && status < http.StatusInternalServerError:
		sentinel = domainerrors.ErrBadRequest
	default:
		return domainerrors.NewAppError(http.StatusBadGateway, domainerrors.CodeUpstream, "upstream service unavailable",
			fmt.Errorf("%w: ledger returned %d: %s", domainerrors.ErrUpstream, status, msg))
	}

	appErr := domainerrors.FromDomain(sentinel)
	return domainerrors.NewAppError(appErr.Status, appErr.Code, msg, sentinel)
}

// IsUpstream reports whether err means the ledger could not be reached or failed internally
func IsUpstream(err error) bool {
	return errors.Is(err, domainerrors.ErrUpstream)
}
