package item

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/toyswap/toyswap/internal/application/mutation"
	domainItem "github.com/toyswap/toyswap/internal/domain/item"
	"github.com/toyswap/toyswap/internal/domain/session"
)

var ErrNotOwner = errors.New("item belongs to another user")

// Service manages the session user's items and browses others'.
type Service struct {
	remote   domainItem.Remote
	executor *mutation.Executor
	logger   zerolog.Logger
}

// NewService creates an item service.
func NewService(remote domainItem.Remote, executor *mutation.Executor, logger zerolog.Logger) *Service {
	return &Service{
		remote:   remote,
		executor: executor,
		logger:   logger.With().Str("service", "item").Logger(),
	}
}

// Create uploads a new item. Retries reuse the same idempotency token.
func (s *Service) Create(ctx context.Context, sess session.Session, draft domainItem.Draft) (*domainItem.Item, error) {
	if err := sess.Validate(); err != nil {
		return nil, err
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	it, report, err := mutation.Run(ctx, s.executor, "create item", func(ctx context.Context, token string) (*domainItem.Item, error) {
		return s.remote.CreateItem(ctx, sess, token, draft)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("item_id", it.ItemID).Str("token", report.Token).Msg("item created")
	return it, nil
}

// Update replaces an owned item's fields.
func (s *Service) Update(ctx context.Context, sess session.Session, itemID string, draft domainItem.Draft) (*domainItem.Item, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.owned(ctx, sess, itemID); err != nil {
		return nil, err
	}
	it, _, err := mutation.Run(ctx, s.executor, "update item", func(ctx context.Context, _ string) (*domainItem.Item, error) {
		return s.remote.UpdateItem(ctx, sess, itemID, draft)
	})
	return it, err
}

// Get fetches any item.
func (s *Service) Get(ctx context.Context, sess session.Session, itemID string) (*domainItem.Item, error) {
	if err := sess.Validate(); err != nil {
		return nil, err
	}
	return s.remote.GetItem(ctx, sess, itemID)
}

// Delete removes an owned item.
func (s *Service) Delete(ctx context.Context, sess session.Session, itemID string) error {
	if _, err := s.owned(ctx, sess, itemID); err != nil {
		return err
	}
	_, err := s.executor.Do(ctx, "delete item", func(ctx context.Context, _ string) error {
		return s.remote.DeleteItem(ctx, sess, itemID)
	})
	if err == nil {
		s.logger.Info().Str("item_id", itemID).Msg("item deleted")
	}
	return err
}

// SetListed offers an owned item for exchange or takes it back.
func (s *Service) SetListed(ctx context.Context, sess session.Session, itemID string, listed bool) (*domainItem.Item, error) {
	it, err := s.owned(ctx, sess, itemID)
	if err != nil {
		return nil, err
	}
	target := domainItem.StatusCreated
	if listed {
		target = domainItem.StatusExchanging
	}
	if it.Status == target {
		return it, nil
	}
	if !it.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: %s -> %s", domainItem.ErrInvalidTransition, it.Status, target)
	}
	updated, _, err := mutation.Run(ctx, s.executor, "patch item", func(ctx context.Context, _ string) (*domainItem.Item, error) {
		return s.remote.PatchItemStatus(ctx, sess, itemID, target)
	})
	return updated, err
}

// Mine lists the session user's active items.
func (s *Service) Mine(ctx context.Context, sess session.Session, limit int, cursor string) (*domainItem.Page, error) {
	if err := sess.Validate(); err != nil {
		return nil, err
	}
	return s.remote.ListItems(ctx, sess, domainItem.Query{
		Statuses: []domainItem.Status{domainItem.StatusCreated, domainItem.StatusExchanging},
		UserIDs:  []string{sess.UserID},
	}, limit, cursor)
}

// Shop lists other users' items offered for exchange.
func (s *Service) Shop(ctx context.Context, sess session.Session, limit int, cursor string) (*domainItem.Page, error) {
	if err := sess.Validate(); err != nil {
		return nil, err
	}
	return s.remote.ListItems(ctx, sess, domainItem.Query{
		Statuses:       []domainItem.Status{domainItem.StatusExchanging},
		ExcludeUserIDs: []string{sess.UserID},
	}, limit, cursor)
}

// Photo downloads the photo of an item, if it has one.
func (s *Service) Photo(ctx context.Context, sess session.Session, itemID string) ([]byte, error) {
	it, err := s.Get(ctx, sess, itemID)
	if err != nil {
		return nil, err
	}
	if it.PhotoURL == nil || *it.PhotoURL == "" {
		return nil, fmt.Errorf("%w: %s has no photo", domainItem.ErrNotFound, itemID)
	}
	return s.remote.FetchPhoto(ctx, sess, *it.PhotoURL)
}

func (s *Service) owned(ctx context.Context, sess session.Session, itemID string) (*domainItem.Item, error) {
	it, err := s.Get(ctx, sess, itemID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID != sess.UserID {
		return nil, fmt.Errorf("%w: %s", ErrNotOwner, itemID)
	}
	return it, nil
}
