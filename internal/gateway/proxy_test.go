package gateway

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func proxyRequest(t *testing.T, p *Proxy, method, target string, body io.Reader, authz string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, body)
	if authz != "" {
		req.Header.Set(echo.HeaderAuthorization, authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	wildcard := strings.TrimPrefix(target, "/api/")
	if i := strings.Index(wildcard, "?"); i >= 0 {
		wildcard = wildcard[:i]
	}
	c.SetParamNames("*")
	c.SetParamValues(wildcard)

	require.NoError(t, p.Handle(c))
	return rec
}

func TestProxy_ForwardsVerbatim(t *testing.T) {
	var got struct {
		method string
		path   string
		query  string
		body   string
		authz  string
	}
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		got.method = r.Method
		got.path = r.URL.Path
		got.query = r.URL.RawQuery
		got.body = string(body)
		got.authz = r.Header.Get("Authorization")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"content":{"id":"t1"}}`))
	}))
	t.Cleanup(backend.Close)

	p := NewProxy(backend.URL, nil)
	rec := proxyRequest(t, p, http.MethodPost, "/api/todos?page=2&limit=5",
		strings.NewReader(`{"item":"Buy milk"}`), "Bearer tok-1")

	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/todos", got.path)
	assert.Equal(t, "page=2&limit=5", got.query)
	assert.Equal(t, `{"item":"Buy milk"}`, got.body)
	assert.Equal(t, "Bearer tok-1", got.authz)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, `{"content":{"id":"t1"}}`, rec.Body.String())
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "application/json")
}

// Backend errors pass through untouched so the client sees the real
// envelope, not a gateway translation.
func TestProxy_PassesErrorStatusThrough(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"todo not found","errors":["todo not found"]}`))
	}))
	t.Cleanup(backend.Close)

	p := NewProxy(backend.URL, nil)
	rec := proxyRequest(t, p, http.MethodDelete, "/api/todos/missing", nil, "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "todo not found")
}

func TestProxy_NoContentPassthrough(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(backend.Close)

	p := NewProxy(backend.URL, nil)
	rec := proxyRequest(t, p, http.MethodDelete, "/api/todos/t1", nil, "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestProxy_UnreachableBackend(t *testing.T) {
	p := NewProxy("http://127.0.0.1:1", nil)
	rec := proxyRequest(t, p, http.MethodGet, "/api/todos", nil, "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch from API"}`, rec.Body.String())
}
