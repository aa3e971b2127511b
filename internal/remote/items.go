package remote

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/toyswap/toyswap/internal/domain/item"
	"github.com/toyswap/toyswap/internal/domain/session"
)

type itemEnvelope struct {
	Item *item.Item `json:"toy"`
}

type patchItemBody struct {
	Status item.Status `json:"status"`
}

type listItemsBody struct {
	Query  item.Query `json:"query"`
	Limit  *int       `json:"limit,omitempty"`
	Cursor *string    `json:"cursor,omitempty"`
}

type listItemsResponse struct {
	Items  []*item.Item `json:"toys"`
	Cursor *string      `json:"cursor,omitempty"`
}

// CreateItem uploads a new item as multipart form data under the caller's
// idempotency token.
func (c *Client) CreateItem(ctx context.Context, sess session.Session, token string, draft item.Draft) (*item.Item, error) {
	req, err := c.formRequest("create item", "/v1/toys/", draft)
	if err != nil {
		return nil, err
	}
	req.headers = map[string]string{HeaderIdempotencyToken: token}
	return c.item(ctx, sess, req)
}

// UpdateItem replaces name, description and optionally the photo.
func (c *Client) UpdateItem(ctx context.Context, sess session.Session, itemID string, draft item.Draft) (*item.Item, error) {
	req, err := c.formRequest("update item", "/v1/toys/change", draft)
	if err != nil {
		return nil, err
	}
	req.headers = map[string]string{HeaderItemID: itemID}
	return c.item(ctx, sess, req)
}

// GetItem fetches one item.
func (c *Client) GetItem(ctx context.Context, sess session.Session, itemID string) (*item.Item, error) {
	req, err := c.jsonRequest("get item", http.MethodGet, "/v1/toys/"+url.PathEscape(itemID), nil)
	if err != nil {
		return nil, err
	}
	return c.item(ctx, sess, req)
}

// DeleteItem removes an item.
func (c *Client) DeleteItem(ctx context.Context, sess session.Session, itemID string) error {
	req, err := c.jsonRequest("delete item", http.MethodDelete, "/v1/toys/"+url.PathEscape(itemID), nil)
	if err != nil {
		return err
	}
	return c.do(ctx, sess, req, nil)
}

// PatchItemStatus lists or unlists an item for exchange.
func (c *Client) PatchItemStatus(ctx context.Context, sess session.Session, itemID string, status item.Status) (*item.Item, error) {
	req, err := c.jsonRequest("patch item", http.MethodPatch, "/v1/toys/"+url.PathEscape(itemID), patchItemBody{Status: status})
	if err != nil {
		return nil, err
	}
	return c.item(ctx, sess, req)
}

// ListItems fetches one page of items.
func (c *Client) ListItems(ctx context.Context, sess session.Session, q item.Query, limit int, cursor string) (*item.Page, error) {
	body := listItemsBody{Query: q}
	if limit > 0 {
		body.Limit = &limit
	}
	if cursor != "" {
		body.Cursor = &cursor
	}
	req, err := c.jsonRequest("list items", http.MethodPost, "/v1/toys/list", body)
	if err != nil {
		return nil, err
	}

	var out listItemsResponse
	if err := c.do(ctx, sess, req, &out); err != nil {
		return nil, err
	}
	page := &item.Page{Items: out.Items}
	if out.Cursor != nil {
		page.Cursor = *out.Cursor
	}
	return page, nil
}

// FetchPhoto downloads an item photo. Photo URLs issued by the service may
// name an internal host, so everything from /upload on is re-rooted onto the
// session's host.
func (c *Client) FetchPhoto(ctx context.Context, sess session.Session, photoURL string) ([]byte, error) {
	req := request{op: "fetch photo", method: http.MethodGet, url: c.PhotoURL(sess, photoURL)}
	return c.send(ctx, sess, req)
}

// PhotoURL rewrites a service photo URL onto the host serving sess.
func (c *Client) PhotoURL(sess session.Session, photoURL string) string {
	if i := strings.Index(photoURL, "/upload"); i >= 0 {
		return c.host(sess) + photoURL[i:]
	}
	return photoURL
}

func (c *Client) formRequest(op, path string, draft item.Draft) (request, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("name", draft.Name); err != nil {
		return request{}, fmt.Errorf("%s: encode form: %w", op, err)
	}
	if draft.Description != nil {
		if err := w.WriteField("description", *draft.Description); err != nil {
			return request{}, fmt.Errorf("%s: encode form: %w", op, err)
		}
	}
	if draft.Photo != nil {
		part, err := w.CreateFormFile("file", draft.Photo.FileName)
		if err != nil {
			return request{}, fmt.Errorf("%s: encode form: %w", op, err)
		}
		if _, err := part.Write(draft.Photo.Data); err != nil {
			return request{}, fmt.Errorf("%s: encode form: %w", op, err)
		}
	}
	if err := w.Close(); err != nil {
		return request{}, fmt.Errorf("%s: encode form: %w", op, err)
	}
	return request{
		op:          op,
		method:      http.MethodPost,
		path:        path,
		body:        bytes.NewReader(buf.Bytes()),
		contentType: w.FormDataContentType(),
	}, nil
}

func (c *Client) item(ctx context.Context, sess session.Session, req request) (*item.Item, error) {
	var out itemEnvelope
	if err := c.do(ctx, sess, req, &out); err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, &TransportError{Op: req.op, Err: fmt.Errorf("response has no toy")}
	}
	return out.Item, nil
}
