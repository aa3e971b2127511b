package exchange

import (
	"errors"
	"fmt"
	"time"

	"github.com/toyswap/toyswap/internal/domain/item"
	"github.com/toyswap/toyswap/internal/domain/user"
)

// Status represents the overall exchange status.
type Status string

const (
	StatusCreated Status = "created"
	StatusConfirm Status = "confirm"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// ParticipantStatus represents one side's progress within an exchange.
type ParticipantStatus string

const (
	ParticipantCreated  ParticipantStatus = "created"
	ParticipantConfirm1 ParticipantStatus = "confirm_1"
	ParticipantConfirm2 ParticipantStatus = "confirm_2"
	ParticipantSuccess  ParticipantStatus = "success"
	ParticipantFailed   ParticipantStatus = "failed"
)

// Transition is a status change a participant may request through PATCH.
type Transition string

const (
	TransitionConfirm1 Transition = "confirm_1"
	TransitionConfirm2 Transition = "confirm_2"
	TransitionFail     Transition = "failed"
)

var (
	ErrNotFound          = errors.New("exchange not found")
	ErrInvalidTransition = errors.New("invalid exchange status transition")
)

// ParseStatus validates a wire status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusCreated, StatusConfirm, StatusSuccess, StatusFailed:
		return Status(s), nil
	}
	return "", inconsistent("unknown exchange status %q", s)
}

// ParseParticipantStatus validates a wire participant status string.
func ParseParticipantStatus(s string) (ParticipantStatus, error) {
	switch ParticipantStatus(s) {
	case ParticipantCreated, ParticipantConfirm1, ParticipantConfirm2, ParticipantSuccess, ParticipantFailed:
		return ParticipantStatus(s), nil
	}
	return "", inconsistent("unknown participant status %q", s)
}

// ParseTransition validates a requested transition.
func ParseTransition(s string) (Transition, error) {
	switch Transition(s) {
	case TransitionConfirm1, TransitionConfirm2, TransitionFail:
		return Transition(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTransition, s)
}

// IsTerminal reports whether no further transitions are permitted.
func (s Status) IsTerminal() bool {
	return s == StatusSuccess || s == StatusFailed
}

// IsTerminal reports whether the participant reached success or failed.
func (s ParticipantStatus) IsTerminal() bool {
	return s == ParticipantSuccess || s == ParticipantFailed
}

// rank orders the forward path; failed is off the path.
func (s ParticipantStatus) rank() int {
	switch s {
	case ParticipantCreated:
		return 0
	case ParticipantConfirm1:
		return 1
	case ParticipantConfirm2:
		return 2
	case ParticipantSuccess:
		return 3
	}
	return -1
}

// CanAdvanceTo reports whether a participant may move from s to next.
func (s ParticipantStatus) CanAdvanceTo(next ParticipantStatus) bool {
	if s == next {
		return true
	}
	if s.IsTerminal() {
		return false
	}
	if next == ParticipantFailed {
		return true
	}
	return next.rank() > s.rank()
}

// Reached reports whether s is target or a later status on the forward path.
func (s ParticipantStatus) Reached(target ParticipantStatus) bool {
	if s == target {
		return true
	}
	if s == ParticipantFailed || target == ParticipantFailed {
		return false
	}
	return s.rank() >= target.rank()
}

// Target returns the participant status a transition moves to.
func (t Transition) Target() ParticipantStatus {
	switch t {
	case TransitionConfirm1:
		return ParticipantConfirm1
	case TransitionConfirm2:
		return ParticipantConfirm2
	default:
		return ParticipantFailed
	}
}

// ParticipantDetail is one side of an exchange.
type ParticipantDetail struct {
	Item   item.Info         `json:"toy"`
	User   user.Name         `json:"user"`
	Status ParticipantStatus `json:"status"`
}

// OwnerID returns the id of the user offering the item.
func (p ParticipantDetail) OwnerID() string {
	return p.Item.OwnerID
}

// Exchange is a swap of one item per participant between two users.
type Exchange struct {
	ExchangeID       string              `json:"exchange_id"`
	IdempotencyToken string              `json:"idempotency_token"`
	Status           Status              `json:"status"`
	Details          []ParticipantDetail `json:"exchange_details"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// Summary is the short form returned when an exchange is created.
type Summary struct {
	ExchangeID       string    `json:"exchange_id"`
	SrcItemID        string    `json:"src_toy_id"`
	DstItemID        string    `json:"dst_toy_id"`
	IdempotencyToken string    `json:"idempotency_token"`
	Status           Status    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Side identifies one participant by owner and offered item.
type Side struct {
	UserID string `json:"user_id"`
	ItemID string `json:"toy_id"`
}

// Proposal asks the service to create an exchange between two sides.
type Proposal struct {
	Proposer Side `json:"user_toy_1"`
	Target   Side `json:"user_toy_2"`
}

// Validate checks the proposal before it is sent.
func (p Proposal) Validate() error {
	if p.Proposer.UserID == "" || p.Proposer.ItemID == "" {
		return errors.New("proposer user and item are required")
	}
	if p.Target.UserID == "" || p.Target.ItemID == "" {
		return errors.New("target user and item are required")
	}
	if p.Proposer.UserID == p.Target.UserID {
		return errors.New("cannot propose an exchange with yourself")
	}
	return nil
}

// Query filters exchange lists.
type Query struct {
	Statuses []Status `json:"statuses,omitempty"`
}

// Page is one page of exchanges; an empty cursor marks the last page.
type Page struct {
	Exchanges []*Exchange
	Cursor    string
}

// HasMore reports whether another page can be requested.
func (p *Page) HasMore() bool {
	return p != nil && p.Cursor != ""
}

// Participant returns the detail owned by userID.
func (e *Exchange) Participant(userID string) (*ParticipantDetail, bool) {
	for i := range e.Details {
		if e.Details[i].OwnerID() == userID {
			return &e.Details[i], true
		}
	}
	return nil, false
}

// Validate checks the structural and status invariants of a snapshot.
func (e *Exchange) Validate() error {
	if e == nil {
		return inconsistent("exchange is nil")
	}
	if len(e.Details) != 2 {
		return inconsistent("exchange %s has %d participants, want 2", e.ExchangeID, len(e.Details))
	}
	a, b := e.Details[0], e.Details[1]
	if a.OwnerID() == "" || b.OwnerID() == "" {
		return inconsistent("exchange %s has a participant without owner", e.ExchangeID)
	}
	if a.OwnerID() == b.OwnerID() {
		return inconsistent("exchange %s participants share user %s", e.ExchangeID, a.OwnerID())
	}

	switch e.Status {
	case StatusSuccess:
		if a.Status != ParticipantSuccess || b.Status != ParticipantSuccess {
			return inconsistent("exchange %s is success but participants are %s/%s", e.ExchangeID, a.Status, b.Status)
		}
	case StatusFailed:
		if a.Status != ParticipantFailed && b.Status != ParticipantFailed {
			return inconsistent("exchange %s is failed but no participant failed", e.ExchangeID)
		}
	case StatusConfirm:
		for _, p := range e.Details {
			if p.Status == ParticipantCreated || p.Status.IsTerminal() {
				return inconsistent("exchange %s is confirm but participant %s is %s", e.ExchangeID, p.OwnerID(), p.Status)
			}
		}
	case StatusCreated:
	default:
		return inconsistent("exchange %s has unknown status %q", e.ExchangeID, e.Status)
	}
	return nil
}

// CheckProgress verifies that next is a legal successor snapshot of prev.
func CheckProgress(prev, next *Exchange) error {
	if prev == nil || next == nil {
		return nil
	}
	if prev.ExchangeID != next.ExchangeID {
		return inconsistent("snapshots belong to different exchanges %s and %s", prev.ExchangeID, next.ExchangeID)
	}
	if prev.IdempotencyToken != "" && prev.IdempotencyToken != next.IdempotencyToken {
		return inconsistent("exchange %s idempotency token changed", prev.ExchangeID)
	}
	if prev.Status.IsTerminal() && prev.Status != next.Status {
		return inconsistent("exchange %s left terminal status %s", prev.ExchangeID, prev.Status)
	}
	for _, p := range prev.Details {
		n, ok := next.Participant(p.OwnerID())
		if !ok {
			return inconsistent("exchange %s lost participant %s", prev.ExchangeID, p.OwnerID())
		}
		if !p.Status.CanAdvanceTo(n.Status) {
			return inconsistent("participant %s regressed from %s to %s", p.OwnerID(), p.Status, n.Status)
		}
	}
	return nil
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

// UnmarshalText rejects unknown participant statuses at decode time.
func (s *ParticipantStatus) UnmarshalText(b []byte) error {
	v, err := ParseParticipantStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
