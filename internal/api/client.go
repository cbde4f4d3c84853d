// Package api wraps outbound calls to the remote book-review service.
// The client attaches credentials, normalizes errors, and nothing else:
// it never retries, never redirects, and never touches the session store.
package api

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	apperrors "github.com/logiksutra/bookshelf-cli/internal/errors"
)

const (
	defaultTimeout = 30 * time.Second

	// Politeness limit on outbound calls. This spaces requests; it
	// never re-issues one.
	defaultRPS   = 5.0
	defaultBurst = 10
)

// TokenSource supplies the current bearer credential. The gateway reads
// it at attach time for every request rather than caching it, so a
// logout between two calls is always observed.
type TokenSource interface {
	Token() string
}

// Config holds gateway client construction parameters.
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	Tokens   TokenSource
	ClientID string
	Logger   *slog.Logger
}

// Client is the HTTP gateway to the book-review service.
type Client struct {
	http     *http.Client
	baseURL  string
	tokens   TokenSource
	clientID string
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// New creates a gateway client.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Client{
		http:     &http.Client{Timeout: timeout},
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		tokens:   cfg.Tokens,
		clientID: cfg.ClientID,
		limiter:  rate.NewLimiter(rate.Limit(defaultRPS), defaultBurst),
		logger:   logger,
	}
}

// requestOptions controls one gateway call.
type requestOptions struct {
	// auth attaches the bearer credential. Callers are expected to
	// short-circuit to a login hint before dispatching when logged
	// out; this check is the last line of defense, not a redirect.
	auth bool
	// op names the operation for error context.
	op string
	// fallback is the user-facing message when the server supplies none.
	fallback string
}

// do executes a single HTTP request. One attempt per user action;
// callers own any retry decision (none exists in this client).
func (c *Client) do(ctx context.Context, method, path string, body, out any, opts requestOptions) error {
	var token string
	if opts.auth {
		token = c.tokens.Token()
		if token == "" {
			return apperrors.AuthRequired("not logged in")
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return networkError(opts.op, opts.fallback, err)
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return apperrors.Wrap(err, apperrors.CodeInternal, "encode request body")
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "create request")
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Bookshelf/1.0")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.clientID != "" {
		req.Header.Set("X-Client-Id", c.clientID)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("api request", "method", method, "path", path, "auth", opts.auth)

	resp, err := c.http.Do(req)
	if err != nil {
		return networkError(opts.op, opts.fallback, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return networkError(opts.op, opts.fallback, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(opts.op, opts.fallback, resp.StatusCode, extractMessage(respBody))
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return statusError(opts.op, opts.fallback, resp.StatusCode, "unexpected response from server")
		}
	}

	return nil
}

// extractMessage pulls the message field out of an error response body.
// Returns "" when the body is not JSON or carries no message.
func extractMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Message
}
