// Package gateway is the same-origin front for the taskboard API: it
// forwards /api/* verbatim to the backend and guards the page routes with
// the auth cookie.
package gateway

import (
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
)

// Proxy forwards arbitrary path segments plus method, body, and the
// Authorization header to the backend, returning the backend's status and
// body verbatim.
type Proxy struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

// NewProxy builds a proxy for the given backend base URL.
func NewProxy(baseURL string, logger *log.Logger) *Proxy {
	if logger == nil {
		logger = log.Default()
	}
	return &Proxy{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

// Handle is the catch-all echo handler for /api/*.
func (p *Proxy) Handle(c echo.Context) error {
	upstream := p.baseURL + "/" + c.Param("*")
	if q := c.Request().URL.RawQuery; q != "" {
		upstream += "?" + q
	}

	req, err := http.NewRequestWithContext(
		c.Request().Context(),
		c.Request().Method,
		upstream,
		c.Request().Body,
	)
	if err != nil {
		return p.unreachable(c, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if authz := c.Request().Header.Get(echo.HeaderAuthorization); authz != "" {
		req.Header.Set(echo.HeaderAuthorization, authz)
	}

	resp, err := p.http.Do(req)
	if err != nil {
		return p.unreachable(c, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return p.unreachable(c, err)
	}

	if resp.StatusCode == http.StatusNoContent {
		return c.NoContent(http.StatusNoContent)
	}

	contentType := resp.Header.Get(echo.HeaderContentType)
	if contentType == "" {
		contentType = echo.MIMEApplicationJSON
	}
	return c.Blob(resp.StatusCode, contentType, body)
}

func (p *Proxy) unreachable(c echo.Context, err error) error {
	p.logger.Error("proxy request failed", "err", err)
	return c.JSON(http.StatusInternalServerError, map[string]string{
		"error": "Failed to fetch from API",
	})
}
