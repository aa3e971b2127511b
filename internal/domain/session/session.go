package session

import (
	"errors"
	"net/url"
	"strings"
)

var ErrNoSession = errors.New("no active session: log in first")

// Session identifies the acting user and the service they talk to. It is
// passed explicitly to every call instead of being looked up globally.
type Session struct {
	UserID  string `json:"user_id" yaml:"user_id"`
	APIHost string `json:"api_host" yaml:"api_host"`
}

// New builds a session for userID against host.
func New(userID, host string) Session {
	return Session{
		UserID:  strings.TrimSpace(userID),
		APIHost: strings.TrimRight(strings.TrimSpace(host), "/"),
	}
}

// Validate reports whether the session can authorize calls.
func (s Session) Validate() error {
	if s.UserID == "" {
		return ErrNoSession
	}
	if s.APIHost == "" {
		return errors.New("api host is required")
	}
	u, err := url.Parse(s.APIHost)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("api host must be an absolute URL")
	}
	return nil
}

// LoggedIn reports whether a user id is present.
func (s Session) LoggedIn() bool {
	return s.UserID != ""
}
