package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"ledger-chain.backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Pagination json.RawMessage `json:"pagination"`
	Code       string          `json:"code"`
	Message    string          `json:"message"`
}

// newRouter returns an engine that authenticates every request as userID
// unless it is uuid.Nil.
func newRouter(userID uuid.UUID) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != uuid.Nil {
			c.Set(middleware.UserIDKey, userID)
		}
		c.Next()
	})
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, target string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func TestPaginationFromQuery(t *testing.T) {
	r := gin.New()
	r.GET("/p", func(c *gin.Context) {
		c.JSON(http.StatusOK, paginationFromQuery(c))
	})

	cases := map[string]string{
		"/p":                   `{"Page":1,"Limit":20}`,
		"/p?page=3&limit=5":    `{"Page":3,"Limit":5}`,
		"/p?page=-1&limit=500": `{"Page":1,"Limit":100}`,
		"/p?page=x&limit=y":    `{"Page":1,"Limit":20}`,
	}
	for target, want := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		require.JSONEq(t, want, w.Body.String(), target)
	}
}

func TestParseTimeQuery(t *testing.T) {
	r := gin.New()
	r.GET("/t", func(c *gin.Context) {
		from, err := parseTimeQuery(c, "from", false)
		if err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		to, _ := parseTimeQuery(c, "to", true)
		out := gin.H{}
		if from != nil {
			out["from"] = from.UTC().Format("2006-01-02T15:04:05")
		}
		if to != nil {
			out["to"] = to.UTC().Format("2006-01-02T15:04:05")
		}
		c.JSON(http.StatusOK, out)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/t?from=2024-03-01&to=2024-03-02", nil))
	require.JSONEq(t, `{"from":"2024-03-01T00:00:00","to":"2024-03-02T23:59:59"}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/t?from=2024-03-01T10:00:00Z", nil))
	require.JSONEq(t, `{"from":"2024-03-01T10:00:00"}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/t?from=yesterday", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/t", nil))
	require.JSONEq(t, `{}`, w.Body.String())
}
