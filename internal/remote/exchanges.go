package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/toyswap/toyswap/internal/domain/exchange"
	"github.com/toyswap/toyswap/internal/domain/session"
)

type exchangeEnvelope struct {
	Exchange *exchange.Exchange `json:"exchange"`
}

type summaryEnvelope struct {
	Exchange *exchange.Summary `json:"exchange"`
}

type patchExchangeBody struct {
	Status exchange.Transition `json:"status"`
}

type listExchangesBody struct {
	Query  exchange.Query `json:"query"`
	Limit  *int           `json:"limit,omitempty"`
	Cursor *string        `json:"cursor,omitempty"`
}

type listExchangesResponse struct {
	Exchanges []*exchange.Exchange `json:"exchanges"`
	Cursor    *string              `json:"cursor,omitempty"`
}

// CreateExchange POSTs a proposal under the caller's idempotency token.
func (c *Client) CreateExchange(ctx context.Context, sess session.Session, token string, p exchange.Proposal) (*exchange.Summary, error) {
	req, err := c.jsonRequest("create exchange", http.MethodPost, "/v1/exchange/", p)
	if err != nil {
		return nil, err
	}
	req.headers = map[string]string{HeaderIdempotencyToken: token}

	var out summaryEnvelope
	if err := c.do(ctx, sess, req, &out); err != nil {
		return nil, err
	}
	if out.Exchange == nil {
		return nil, &TransportError{Op: req.op, Err: fmt.Errorf("response has no exchange")}
	}
	return out.Exchange, nil
}

// GetExchange fetches the current snapshot of an exchange.
func (c *Client) GetExchange(ctx context.Context, sess session.Session, exchangeID string) (*exchange.Exchange, error) {
	req, err := c.jsonRequest("get exchange", http.MethodGet, "/v1/exchange/"+url.PathEscape(exchangeID), nil)
	if err != nil {
		return nil, err
	}
	return c.exchange(ctx, sess, req)
}

// PatchExchange requests a participant status transition.
func (c *Client) PatchExchange(ctx context.Context, sess session.Session, exchangeID string, t exchange.Transition) (*exchange.Exchange, error) {
	req, err := c.jsonRequest("patch exchange", http.MethodPatch, "/v1/exchange/"+url.PathEscape(exchangeID), patchExchangeBody{Status: t})
	if err != nil {
		return nil, err
	}
	return c.exchange(ctx, sess, req)
}

// ListExchanges fetches one page. The cursor is opaque and passed through.
func (c *Client) ListExchanges(ctx context.Context, sess session.Session, q exchange.Query, limit int, cursor string) (*exchange.Page, error) {
	body := listExchangesBody{Query: q}
	if limit > 0 {
		body.Limit = &limit
	}
	if cursor != "" {
		body.Cursor = &cursor
	}
	req, err := c.jsonRequest("list exchanges", http.MethodPost, "/v1/exchange/list", body)
	if err != nil {
		return nil, err
	}

	var out listExchangesResponse
	if err := c.do(ctx, sess, req, &out); err != nil {
		return nil, err
	}
	page := &exchange.Page{Exchanges: out.Exchanges}
	if out.Cursor != nil {
		page.Cursor = *out.Cursor
	}
	return page, nil
}

func (c *Client) exchange(ctx context.Context, sess session.Session, req request) (*exchange.Exchange, error) {
	var out exchangeEnvelope
	if err := c.do(ctx, sess, req, &out); err != nil {
		return nil, err
	}
	if out.Exchange == nil {
		return nil, &TransportError{Op: req.op, Err: fmt.Errorf("response has no exchange")}
	}
	return out.Exchange, nil
}
