package remote

import (
	"context"
	"fmt"
	"net/http"

	"github.com/toyswap/toyswap/internal/domain/session"
	"github.com/toyswap/toyswap/internal/domain/user"
)

type userIDResponse struct {
	UserID string `json:"user_id"`
}

// Register creates an account and returns its user id.
func (c *Client) Register(ctx context.Context, reg user.Registration) (string, error) {
	return c.userID(ctx, "register", "/v1/register", reg)
}

// Login exchanges credentials for the account's user id.
func (c *Client) Login(ctx context.Context, creds user.Credentials) (string, error) {
	return c.userID(ctx, "login", "/v1/login", creds)
}

func (c *Client) userID(ctx context.Context, op, path string, payload any) (string, error) {
	req, err := c.jsonRequest(op, http.MethodPost, path, payload)
	if err != nil {
		return "", err
	}
	var out userIDResponse
	if err := c.do(ctx, session.Session{}, req, &out); err != nil {
		return "", err
	}
	if out.UserID == "" {
		return "", &TransportError{Op: op, Err: fmt.Errorf("response has no user_id")}
	}
	return out.UserID, nil
}
