package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound          = errors.New("resource not found")
	ErrAlreadyExists     = errors.New("resource already exists")
	ErrBadRequest        = errors.New("bad request")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSelfTransfer      = errors.New("cannot transfer to own wallet")
	ErrInvalidState      = errors.New("invalid state transition")
	ErrIntegrity         = errors.New("ledger integrity violation")
	ErrSigning           = errors.New("block signing failed")
	ErrUpstream          = errors.New("upstream service unavailable")
)

// Error codes carried in the response envelope
const (
	CodeNotFound          = "NOT_FOUND"
	CodeBadRequest        = "BAD_REQUEST"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeInsufficientFunds = "INSUFFICIENT_FUNDS"
	CodeSelfTransfer      = "SELF_TRANSFER"
	CodeInvalidState      = "INVALID_STATE"
	CodeConflict          = "CONFLICT"
	CodeIntegrity         = "INTEGRITY_ERROR"
	CodeUpstream          = "UPSTREAM_ERROR"
	CodeInternalError     = "INTERNAL_ERROR"
)

// AppError is an error with an HTTP status and a stable code
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeBadRequest, message, ErrBadRequest)
}

func PaymentRequired(message string) *AppError {
	return NewAppError(http.StatusPaymentRequired, CodeInsufficientFunds, message, ErrInsufficientFunds)
}

func InvalidState(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeInvalidState, message, ErrInvalidState)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeConflict, message, ErrAlreadyExists)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "internal server error", err)
}

// FromDomain maps a (possibly wrapped) domain error to an AppError.
// The message is the full wrapped error text so callers see which
// entity was missing or which state rejected the call.
func FromDomain(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	msg := err.Error()
	switch {
	case errors.Is(err, ErrNotFound):
		return NewAppError(http.StatusNotFound, CodeNotFound, msg, err)
	case errors.Is(err, ErrInsufficientFunds):
		return NewAppError(http.StatusPaymentRequired, CodeInsufficientFunds, msg, err)
	case errors.Is(err, ErrSelfTransfer):
		return NewAppError(http.StatusBadRequest, CodeSelfTransfer, msg, err)
	case errors.Is(err, ErrInvalidState):
		return NewAppError(http.StatusBadRequest, CodeInvalidState, msg, err)
	case errors.Is(err, ErrBadRequest):
		return NewAppError(http.StatusBadRequest, CodeBadRequest, msg, err)
	case errors.Is(err, ErrUnauthorized):
		return NewAppError(http.StatusUnauthorized, CodeUnauthorized, msg, err)
	case errors.Is(err, ErrAlreadyExists):
		return NewAppError(http.StatusConflict, CodeConflict, msg, err)
	case errors.Is(err, ErrIntegrity):
		return NewAppError(http.StatusConflict, CodeIntegrity, msg, err)
	case errors.Is(err, ErrUpstream):
		return NewAppError(http.StatusBadGateway, CodeUpstream, "upstream service unavailable", err)
	default:
		return InternalError(err)
	}
}
