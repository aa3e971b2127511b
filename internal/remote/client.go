package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/toyswap/toyswap/internal/domain/exchange"
	"github.com/toyswap/toyswap/internal/domain/item"
	"github.com/toyswap/toyswap/internal/domain/session"
	"github.com/toyswap/toyswap/internal/domain/user"
)

// Header names understood by the exchange service.
const (
	HeaderUserID           = "x_user_id"
	HeaderIdempotencyToken = "x_idempotency_token"
	HeaderItemID           = "toy_id"
)

// Client talks to the remote exchange service over HTTP. It implements
// exchange.Remote, item.Remote and user.Remote.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request transport timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// New creates a client for the service at baseURL.
func New(baseURL string, logger zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  logger.With().Str("component", "remote").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the service root used for calls made without a session.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// host returns the service root for sess. Calls made before login carry an
// empty session and go to the base URL.
func (c *Client) host(sess session.Session) string {
	if sess.APIHost != "" {
		return sess.APIHost
	}
	return c.baseURL
}

var (
	_ exchange.Remote = (*Client)(nil)
	_ item.Remote     = (*Client)(nil)
	_ user.Remote     = (*Client)(nil)
)

// request targets path under the session's host, or url when the service
// handed out an absolute location.
type request struct {
	op          string
	method      string
	path        string
	url         string
	headers     map[string]string
	body        io.Reader
	contentType string
}

func (c *Client) jsonRequest(op, method, path string, payload any) (request, error) {
	req := request{op: op, method: method, path: path}
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return req, fmt.Errorf("%s: encode request: %w", op, err)
		}
		req.body = bytes.NewReader(b)
		req.contentType = "application/json"
	}
	return req, nil
}

// send performs the request and returns the raw 2xx body. Non-2xx responses
// become *ApplicationError; everything before a response is a *TransportError.
func (c *Client) send(ctx context.Context, sess session.Session, r request) ([]byte, error) {
	target := r.url
	if target == "" {
		target = c.host(sess) + r.path
	}
	httpReq, err := http.NewRequestWithContext(ctx, r.method, target, r.body)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", r.op, err)
	}
	if r.contentType != "" {
		httpReq.Header.Set("Content-Type", r.contentType)
	}
	if sess.UserID != "" {
		httpReq.Header.Set(HeaderUserID, sess.UserID)
	}
	for k, v := range r.headers {
		httpReq.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Debug().Err(err).Str("op", r.op).Str("method", r.method).Str("url", target).Msg("request failed")
		return nil, &TransportError{Op: r.op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: r.op, Err: fmt.Errorf("read body: %w", err)}
	}

	c.logger.Debug().
		Str("op", r.op).
		Str("method", r.method).
		Str("url", target).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeError(r.op, resp.StatusCode, body)
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, sess session.Session, r request, out any) error {
	body, err := c.send(ctx, sess, r)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return decodeFailure(r.op, err)
	}
	return nil
}

// decodeError builds the application error for a non-2xx body, synthesizing
// {code: <status>, message: <raw body>} when the body is not {code, message}.
func decodeError(op string, status int, body []byte) *ApplicationError {
	var wire struct {
		Code    *string `json:"code"`
		Message *string `json:"message"`
	}
	if err := json.Unmarshal(body, &wire); err == nil && wire.Code != nil && wire.Message != nil {
		return &ApplicationError{Op: op, Status: status, Code: *wire.Code, Message: *wire.Message}
	}
	return &ApplicationError{Op: op, Status: status, Code: strconv.Itoa(status), Message: string(body)}
}

// decodeFailure keeps validation failures of closed status types distinct
// from malformed payloads.
func decodeFailure(op string, err error) error {
	var sce *exchange.StateConsistencyError
	if errors.As(err, &sce) {
		return fmt.Errorf("%s: %w", op, err)
	}
	if errors.Is(err, item.ErrInvalidStatus) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
}
