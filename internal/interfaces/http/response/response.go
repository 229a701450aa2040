package response

import (
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"

	domainerrors "ledger-chain.backend/internal/domain/errors"
	"ledger-chain.backend/pkg/utils"
)

var exposeDetails atomic.Bool

// ExposeErrorDetails controls whether 5xx bodies carry the underlying error.
// It is switched on outside production.
func ExposeErrorDetails(on bool) {
	exposeDetails.Store(on)
}

// Envelope is the body of every JSON response
type Envelope struct {
	Success    bool                  `json:"success"`
	Data       interface{}           `json:"data,omitempty"`
	Pagination *utils.PaginationMeta `json:"pagination,omitempty"`
	Code       string                `json:"code,omitempty"`
	Message    string                `json:"message,omitempty"`
	Details    string                `json:"details,omitempty"`
}

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

// Paginated sends a list with its pagination metadata
func Paginated(c *gin.Context, data interface{}, meta utils.PaginationMeta) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data, Pagination: &meta})
}

// Error maps err through the domain taxonomy and sends it
func Error(c *gin.Context, err error) {
	appErr := domainerrors.FromDomain(err)
	if appErr == nil {
		appErr = domainerrors.InternalError(err)
	}

	body := Envelope{Code: appErr.Code, Message: appErr.Message}
	if appErr.Status >= http.StatusInternalServerError && exposeDetails.Load() && appErr.Err != nil {
		body.Details = appErr.Err.Error()
	}
	_ = c.Error(err)
	c.JSON(appErr.Status, body)
}

// ErrorWithError sends an error response with an explicit status and code
func ErrorWithError(c *gin.Context, status int, code string, message string) {
	c.JSON(status, Envelope{Code: code, Message: message})
}

// Abort is ErrorWithError for middleware that must stop the chain
func Abort(c *gin.Context, status int, code string, message string) {
	c.AbortWithStatusJSON(status, Envelope{Code: code, Message: message})
}
