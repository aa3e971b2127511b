package exchange

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_remote.go -package=mocks . Remote

import (
	"context"

	"github.com/toyswap/toyswap/internal/domain/session"
)

// Remote is the exchange side of the remote exchange service.
type Remote interface {
	CreateExchange(ctx context.Context, sess session.Session, token string, p Proposal) (*Summary, error)
	GetExchange(ctx context.Context, sess session.Session, exchangeID string) (*Exchange, error)
	PatchExchange(ctx context.Context, sess session.Session, exchangeID string, t Transition) (*Exchange, error)
	ListExchanges(ctx context.Context, sess session.Session, q Query, limit int, cursor string) (*Page, error)
}
