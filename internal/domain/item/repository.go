package item

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_remote.go -package=mocks . Remote

import (
	"context"

	"github.com/toyswap/toyswap/internal/domain/session"
)

// Remote is the item side of the remote exchange service.
type Remote interface {
	CreateItem(ctx context.Context, sess session.Session, token string, draft Draft) (*Item, error)
	UpdateItem(ctx context.Context, sess session.Session, itemID string, draft Draft) (*Item, error)
	GetItem(ctx context.Context, sess session.Session, itemID string) (*Item, error)
	DeleteItem(ctx context.Context, sess session.Session, itemID string) error
	PatchItemStatus(ctx context.Context, sess session.Session, itemID string, status Status) (*Item, error)
	ListItems(ctx context.Context, sess session.Session, q Query, limit int, cursor string) (*Page, error)
	FetchPhoto(ctx context.Context, sess session.Session, photoURL string) ([]byte, error)
}
