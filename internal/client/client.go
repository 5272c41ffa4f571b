// Package client is the SDK the front ends use to talk to the taskboard
// API: a shared HTTP wrapper that attaches the bearer token and handles
// authentication failures globally, plus the task and admin operations
// built on it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"

	"taskboard/internal/session"
	"taskboard/internal/task"
)

const defaultTimeout = 10 * time.Second

// ErrorKind classifies API failures for the UI layer.
type ErrorKind int

const (
	// KindValidation is malformed input caught before any network call.
	KindValidation ErrorKind = iota
	// KindAuth is an authentication failure, handled globally.
	KindAuth
	// KindNotFound is a 404, e.g. deleting an already-deleted task.
	KindNotFound
	// KindTransport means no response was received at all.
	KindTransport
	// KindUnknown is everything else.
	KindUnknown
)

// APIError is the single error type surfaced by client operations.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client is the shared request client. All outgoing requests go through it
// so the bearer token and the 401 interceptor apply uniformly.
type Client struct {
	baseURL      string
	http         *http.Client
	session      *session.Store
	norm         *task.Normalizer
	cache        *task.Cache
	logger       *log.Logger
	validate     *validator.Validate
	deletePolicy task.DeletePolicy

	// onUnauthorized runs after a forced logout; the CLI uses it to tell
	// the user to log in again, the web gateway to redirect to /login.
	onUnauthorized func()
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithDeletePolicy selects how failed deletes reconcile with the
// optimistic removal. Default is DeletePolicyOptimisticNoRollback.
func WithDeletePolicy(p task.DeletePolicy) Option {
	return func(c *Client) { c.deletePolicy = p }
}

// WithOnUnauthorized registers the forced-logout callback.
func WithOnUnauthorized(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// New builds a client bound to the given API base URL and session store.
func New(baseURL string, sess *session.Store, opts ...Option) *Client {
	c := &Client{
		baseURL:      baseURL,
		http:         &http.Client{Timeout: defaultTimeout},
		session:      sess,
		logger:       log.Default(),
		validate:     validator.New(),
		deletePolicy: task.DeletePolicyOptimisticNoRollback,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.norm = task.NewNormalizer(c.logger)
	c.cache = task.NewCache()
	return c
}

// Cache exposes the shared in-memory task cache.
func (c *Client) Cache() *task.Cache {
	return c.cache
}

// do issues one API request and returns the response body. Authentication
// failures never reach the caller as raw errors: a 401 clears the session
// and fires the onUnauthorized hook before returning a KindAuth error.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, &APIError{Kind: KindUnknown, Message: fmt.Sprintf("encode request: %v", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &APIError{Kind: KindUnknown, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &APIError{Kind: KindTransport, Message: "cannot reach server, check your connection"}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Kind: KindTransport, Message: "cannot reach server, check your connection"}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.forceLogout()
		return nil, &APIError{Kind: KindAuth, Status: resp.StatusCode, Message: "session expired, please log in again"}
	}
	if resp.StatusCode >= 400 {
		return nil, c.statusError(resp.StatusCode, data)
	}
	return data, nil
}

// forceLogout destroys the session on an authentication failure. This is
// interceptor behavior, not a per-call concern.
func (c *Client) forceLogout() {
	if err := c.session.Clear(); err != nil {
		c.logger.Warn("clearing session after auth failure", "err", err)
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

func (c *Client) statusError(status int, body []byte) *APIError {
	msg := extractMessage(body)
	kind := KindUnknown
	switch status {
	case http.StatusNotFound:
		kind = KindNotFound
		if msg == "" {
			msg = "not found"
		}
	default:
		if msg == "" {
			msg = "something went wrong, please try again"
		}
	}
	return &APIError{Kind: kind, Status: status, Message: msg}
}

// extractMessage pulls a human-readable message out of an error body,
// preferring a structured errors[0] field, then message.
func extractMessage(body []byte) string {
	var envelope struct {
		Errors  []string `json:"errors"`
		Message string   `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	if len(envelope.Errors) > 0 && envelope.Errors[0] != "" {
		return envelope.Errors[0]
	}
	return envelope.Message
}

// Kind returns the classification of an error produced by this package,
// KindUnknown for anything else.
func Kind(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// Message returns the user-facing message for an error, falling back to a
// generic string for errors from outside this package.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if err != nil {
		return "something went wrong, please try again"
	}
	return ""
}
