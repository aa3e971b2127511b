package exchange

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/toyswap/toyswap/internal/application/mutation"
	domainExchange "github.com/toyswap/toyswap/internal/domain/exchange"
	"github.com/toyswap/toyswap/internal/domain/session"
)

var (
	ErrMutationInFlight  = errors.New("another change to this exchange is in progress")
	ErrActionUnavailable = errors.New("no action is available for this exchange")
	ErrCannotCancel      = errors.New("exchange can no longer be cancelled")
)

// ListInput filters and pages an exchange list.
type ListInput struct {
	Statuses []domainExchange.Status
	Limit    int
	Cursor   string
}

// Service drives exchanges for the session's user.
type Service struct {
	remote   domainExchange.Remote
	executor *mutation.Executor
	logger   zerolog.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewService creates an exchange service.
func NewService(remote domainExchange.Remote, executor *mutation.Executor, logger zerolog.Logger) *Service {
	return &Service{
		remote:   remote,
		executor: executor,
		logger:   logger.With().Str("service", "exchange").Logger(),
		inflight: make(map[string]struct{}),
	}
}

// Propose offers myItemID for targetItemID owned by targetOwnerID.
func (s *Service) Propose(ctx context.Context, sess session.Session, myItemID, targetOwnerID, targetItemID string) (*domainExchange.View, error) {
	if err := sess.Validate(); err != nil {
		return nil, err
	}
	p := domainExchange.Proposal{
		Proposer: domainExchange.Side{UserID: sess.UserID, ItemID: myItemID},
		Target:   domainExchange.Side{UserID: targetOwnerID, ItemID: targetItemID},
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	sum, report, err := mutation.Run(ctx, s.executor, "create exchange", func(ctx context.Context, token string) (*domainExchange.Summary, error) {
		return s.remote.CreateExchange(ctx, sess, token, p)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("exchange_id", sum.ExchangeID).
		Str("token", report.Token).
		Int("attempts", report.Attempts).
		Msg("exchange proposed")

	return s.Get(ctx, sess, sum.ExchangeID)
}

// Get fetches an exchange and projects it onto the session's user.
func (s *Service) Get(ctx context.Context, sess session.Session, exchangeID string) (*domainExchange.View, error) {
	ex, err := s.fetch(ctx, sess, exchangeID)
	if err != nil {
		return nil, err
	}
	return domainExchange.Project(ex, sess.UserID)
}

// List returns one page of the user's exchanges.
func (s *Service) List(ctx context.Context, sess session.Session, in ListInput) (*domainExchange.Page, error) {
	if err := sess.Validate(); err != nil {
		return nil, err
	}
	page, err := s.remote.ListExchanges(ctx, sess, domainExchange.Query{Statuses: in.Statuses}, in.Limit, in.Cursor)
	if err != nil {
		return nil, err
	}
	for _, ex := range page.Exchanges {
		if err := ex.Validate(); err != nil {
			return nil, err
		}
	}
	return page, nil
}

// ListAll walks every page of the user's exchanges.
func (s *Service) ListAll(ctx context.Context, sess session.Session, statuses []domainExchange.Status) ([]*domainExchange.Exchange, error) {
	var all []*domainExchange.Exchange
	seen := make(map[string]struct{})
	cursor := ""
	for {
		page, err := s.List(ctx, sess, ListInput{Statuses: statuses, Cursor: cursor})
		if err != nil {
			return nil, err
		}
		all = append(all, page.Exchanges...)
		if !page.HasMore() {
			return all, nil
		}
		if _, dup := seen[page.Cursor]; dup {
			return nil, &domainExchange.StateConsistencyError{Reason: fmt.Sprintf("cursor %q repeated", page.Cursor)}
		}
		seen[page.Cursor] = struct{}{}
		cursor = page.Cursor
	}
}

// Confirm submits the viewer's next lifecycle action.
func (s *Service) Confirm(ctx context.Context, sess session.Session, exchangeID string) (*domainExchange.View, error) {
	release, err := s.acquire(exchangeID)
	if err != nil {
		return nil, err
	}
	defer release()

	view, err := s.Get(ctx, sess, exchangeID)
	if err != nil {
		return nil, err
	}
	if !view.Decision.Available() {
		return nil, fmt.Errorf("%w: %s", ErrActionUnavailable, exchangeID)
	}
	t, _ := view.Decision.Action.Transition()
	return s.transition(ctx, sess, view.Exchange, t)
}

// Cancel fails the exchange on the viewer's side.
func (s *Service) Cancel(ctx context.Context, sess session.Session, exchangeID string) (*domainExchange.View, error) {
	release, err := s.acquire(exchangeID)
	if err != nil {
		return nil, err
	}
	defer release()

	view, err := s.Get(ctx, sess, exchangeID)
	if err != nil {
		return nil, err
	}
	if !view.Decision.CanCancel {
		return nil, fmt.Errorf("%w: %s", ErrCannotCancel, exchangeID)
	}
	return s.transition(ctx, sess, view.Exchange, domainExchange.CancelTransition())
}

func (s *Service) transition(ctx context.Context, sess session.Session, prev *domainExchange.Exchange, t domainExchange.Transition) (*domainExchange.View, error) {
	log := s.logger.With().Str("exchange_id", prev.ExchangeID).Str("transition", string(t)).Logger()

	report, err := s.executor.Do(ctx, "patch exchange", func(ctx context.Context, _ string) error {
		_, err := s.remote.PatchExchange(ctx, sess, prev.ExchangeID, t)
		return err
	})

	var next *domainExchange.Exchange
	if err != nil {
		// A rejection after a lost response may mean the first attempt landed.
		if !report.Retried() || mutation.KindOf(err) != mutation.KindApplication {
			return nil, err
		}
		fresh, ferr := s.fetch(ctx, sess, prev.ExchangeID)
		if ferr != nil || !applied(fresh, sess.UserID, t) {
			return nil, err
		}
		log.Info().Str("token", report.Token).Msg("retried transition already applied")
		next = fresh
	} else {
		next, err = s.fetch(ctx, sess, prev.ExchangeID)
		if err != nil {
			return nil, err
		}
	}

	if err := domainExchange.CheckProgress(prev, next); err != nil {
		return nil, err
	}
	log.Info().Str("status", string(next.Status)).Int("attempts", report.Attempts).Msg("exchange transitioned")
	return domainExchange.Project(next, sess.UserID)
}

func (s *Service) fetch(ctx context.Context, sess session.Session, exchangeID string) (*domainExchange.Exchange, error) {
	if err := sess.Validate(); err != nil {
		return nil, err
	}
	ex, err := s.remote.GetExchange(ctx, sess, exchangeID)
	if err != nil {
		return nil, err
	}
	if err := ex.Validate(); err != nil {
		return nil, err
	}
	return ex, nil
}

func (s *Service) acquire(exchangeID string) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[exchangeID]; busy {
		return nil, fmt.Errorf("%w: %s", ErrMutationInFlight, exchangeID)
	}
	s.inflight[exchangeID] = struct{}{}
	return func() {
		s.mu.Lock()
		delete(s.inflight, exchangeID)
		s.mu.Unlock()
	}, nil
}

func applied(ex *domainExchange.Exchange, userID string, t domainExchange.Transition) bool {
	mine, ok := ex.Participant(userID)
	if !ok {
		return false
	}
	return mine.Status.Reached(t.Target())
}
