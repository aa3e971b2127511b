package item

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Status represents the lifecycle status of an item.
type Status string

const (
	StatusCreated    Status = "created"
	StatusExchanging Status = "exchanging"
	StatusExchanged  Status = "exchanged"
	StatusRemoved    Status = "removed"
)

var (
	ErrNotFound          = errors.New("item not found")
	ErrInvalidTransition = errors.New("invalid item status transition")
	ErrInvalidStatus     = errors.New("invalid item status")
)

// ParseStatus validates a wire status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusCreated, StatusExchanging, StatusExchanged, StatusRemoved:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// UnmarshalText rejects unknown statuses at decode time.
func (s *Status) UnmarshalText(b []byte) error {
	v, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// IsTerminal reports whether the item can no longer change.
func (s Status) IsTerminal() bool {
	return s == StatusExchanged || s == StatusRemoved
}

// Item is an owned toy that can be offered for exchange.
type Item struct {
	ItemID           string    `json:"toy_id"`
	OwnerID          string    `json:"user_id"`
	Name             string    `json:"name"`
	IdempotencyToken string    `json:"idempotency_token"`
	Description      *string   `json:"description,omitempty"`
	PhotoURL         *string   `json:"photo_url,omitempty"`
	Status           Status    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Info is the item reference embedded in an exchange.
type Info struct {
	ItemID      string  `json:"toy_id"`
	OwnerID     string  `json:"user_id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	PhotoURL    *string `json:"photo_url,omitempty"`
}

// Info returns the short reference for the item.
func (i *Item) Info() Info {
	return Info{
		ItemID:      i.ItemID,
		OwnerID:     i.OwnerID,
		Name:        i.Name,
		Description: i.Description,
		PhotoURL:    i.PhotoURL,
	}
}

// CanTransitionTo validates item status transition.
func (i *Item) CanTransitionTo(target Status) bool {
	transitions := map[Status][]Status{
		StatusCreated:    {StatusExchanging, StatusRemoved, StatusExchanged},
		StatusExchanging: {StatusCreated, StatusRemoved, StatusExchanged},
		StatusExchanged:  {},
		StatusRemoved:    {},
	}
	for _, s := range transitions[i.Status] {
		if s == target {
			return true
		}
	}
	return false
}

// Offerable reports whether the owner may put the item into a proposal.
func (i *Item) Offerable() bool {
	return i.Status == StatusCreated || i.Status == StatusExchanging
}

// Draft carries the fields of an item being created or edited.
type Draft struct {
	Name        string
	Description *string
	Photo       *Photo
}

// Photo is an image attached to a draft.
type Photo struct {
	FileName string
	Data     []byte
}

// Validate checks the draft before it is sent.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return errors.New("name is required")
	}
	if len(d.Name) > 200 {
		return errors.New("name must be at most 200 characters")
	}
	if d.Photo != nil && len(d.Photo.Data) == 0 {
		return errors.New("photo is empty")
	}
	return nil
}

// Query filters item lists.
type Query struct {
	Statuses       []Status `json:"statuses,omitempty"`
	UserIDs        []string `json:"user_ids,omitempty"`
	ExcludeUserIDs []string `json:"exclude_user_ids,omitempty"`
}

// Page is one page of items; an empty cursor marks the last page.
type Page struct {
	Items  []*Item
	Cursor string
}
