package sandbox

import (
	"encoding/base64"
	"errors"
	"fmt"
	"path"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/toyswap/toyswap/internal/domain/exchange"
	"github.com/toyswap/toyswap/internal/domain/item"
	"github.com/toyswap/toyswap/internal/domain/user"
)

var (
	ErrForbidden     = errors.New("forbidden")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidCursor = errors.New("invalid cursor")
	ErrPhotoNotFound = errors.New("photo not found")
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Store is the in-memory state of the sandbox exchange service.
type Store struct {
	mu        sync.RWMutex
	now       func() time.Time
	photoHost string

	users      map[string]*user.User
	emails     map[string]string
	items      map[string]*item.Item
	itemTokens map[string]string
	exchanges  map[string]*exchange.Exchange
	exTokens   map[string]string
	photos     map[string][]byte
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock replaces the time source.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithPhotoHost sets the host written into photo URLs.
func WithPhotoHost(host string) StoreOption {
	return func(s *Store) {
		s.photoHost = host
	}
}

// NewStore creates an empty store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		now:        func() time.Time { return time.Now().UTC() },
		photoHost:  "http://storage.internal",
		users:      make(map[string]*user.User),
		emails:     make(map[string]string),
		items:      make(map[string]*item.Item),
		itemTokens: make(map[string]string),
		exchanges:  make(map[string]*exchange.Exchange),
		exTokens:   make(map[string]string),
		photos:     make(map[string][]byte),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func tokenKey(userID, token string) string {
	return userID + "\x00" + token
}

func invalid(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}

// Register creates a user with a bcrypt password hash.
func (s *Store) Register(reg user.Registration) (*user.User, error) {
	reg.Email = user.NormalizeEmail(reg.Email)
	if err := reg.Validate(); err != nil {
		return nil, invalid(err)
	}
	hash, err := user.HashPassword(reg.Password)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.emails[reg.Email]; taken {
		return nil, user.ErrEmailTaken
	}
	u := &user.User{
		UserID:       uuid.NewString(),
		Name:         reg.Name,
		Email:        reg.Email,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	s.users[u.UserID] = u
	s.emails[u.Email] = u.UserID
	return u, nil
}

// Login checks credentials and returns the user.
func (s *Store) Login(creds user.Credentials) (*user.User, error) {
	email := user.NormalizeEmail(creds.Email)
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emails[email]
	if !ok {
		return nil, user.ErrInvalidCredentials
	}
	u := s.users[id]
	if !user.VerifyPassword(u.PasswordHash, creds.Password) {
		return nil, user.ErrInvalidCredentials
	}
	return u, nil
}

// UserExists reports whether id names a registered user.
func (s *Store) UserExists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.users[id]
	return ok
}

// CreateItem stores a new item. A repeated token from the same user returns
// the item created first.
func (s *Store) CreateItem(ownerID, token string, draft item.Draft) (*item.Item, error) {
	if err := draft.Validate(); err != nil {
		return nil, invalid(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if token != "" {
		if id, ok := s.itemTokens[tokenKey(ownerID, token)]; ok {
			return copyItem(s.items[id]), nil
		}
	}
	now := s.now()
	it := &item.Item{
		ItemID:           uuid.NewString(),
		OwnerID:          ownerID,
		Name:             draft.Name,
		IdempotencyToken: token,
		Description:      draft.Description,
		Status:           item.StatusCreated,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if draft.Photo != nil {
		it.PhotoURL = s.storePhoto(it.ItemID, draft.Photo)
	}
	s.items[it.ItemID] = it
	if token != "" {
		s.itemTokens[tokenKey(ownerID, token)] = it.ItemID
	}
	return copyItem(it), nil
}

// UpdateItem replaces an owned item's fields. A nil photo keeps the old one.
func (s *Store) UpdateItem(ownerID, itemID string, draft item.Draft) (*item.Item, error) {
	if err := draft.Validate(); err != nil {
		return nil, invalid(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	it, err := s.ownedItem(ownerID, itemID)
	if err != nil {
		return nil, err
	}
	if it.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: item is %s", item.ErrInvalidTransition, it.Status)
	}
	it.Name = draft.Name
	it.Description = draft.Description
	if draft.Photo != nil {
		it.PhotoURL = s.storePhoto(it.ItemID, draft.Photo)
	}
	it.UpdatedAt = s.now()
	return copyItem(it), nil
}

// GetItem returns any item.
func (s *Store) GetItem(itemID string) (*item.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.items[itemID]
	if !ok {
		return nil, item.ErrNotFound
	}
	return copyItem(it), nil
}

// DeleteItem marks an owned item removed.
func (s *Store) DeleteItem(ownerID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, err := s.ownedItem(ownerID, itemID)
	if err != nil {
		return err
	}
	if it.Status == item.StatusRemoved {
		return nil
	}
	if !it.CanTransitionTo(item.StatusRemoved) {
		return fmt.Errorf("%w: item is %s", item.ErrInvalidTransition, it.Status)
	}
	it.Status = item.StatusRemoved
	it.UpdatedAt = s.now()
	return nil
}

// PatchItemStatus lists or unlists an owned item.
func (s *Store) PatchItemStatus(ownerID, itemID string, status item.Status) (*item.Item, error) {
	if status != item.StatusCreated && status != item.StatusExchanging {
		return nil, invalid(fmt.Errorf("status %s cannot be requested", status))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	it, err := s.ownedItem(ownerID, itemID)
	if err != nil {
		return nil, err
	}
	if it.Status != status {
		if !it.CanTransitionTo(status) {
			return nil, fmt.Errorf("%w: %s -> %s", item.ErrInvalidTransition, it.Status, status)
		}
		it.Status = status
		it.UpdatedAt = s.now()
	}
	return copyItem(it), nil
}

// ListItems pages through items matching q, oldest first.
func (s *Store) ListItems(q item.Query, limit int, cursor string) ([]*item.Item, string, error) {
	s.mu.RLock()
	var matched []*item.Item
	for _, it := range s.items {
		if matchItem(it, q) {
			matched = append(matched, copyItem(it))
		}
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ItemID < matched[j].ItemID
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})
	return paginate(matched, limit, cursor)
}

// Photo returns an uploaded photo by its /upload path.
func (s *Store) Photo(p string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.photos[p]
	if !ok {
		return nil, ErrPhotoNotFound
	}
	return data, nil
}

// CreateExchange opens an exchange between the proposer's item and the
// target's item. A repeated token from the same user returns the exchange
// created first.
func (s *Store) CreateExchange(userID, token string, p exchange.Proposal) (*exchange.Exchange, error) {
	if err := p.Validate(); err != nil {
		return nil, invalid(err)
	}
	if p.Proposer.UserID != userID {
		return nil, fmt.Errorf("%w: proposer must be the caller", ErrForbidden)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if token != "" {
		if id, ok := s.exTokens[tokenKey(userID, token)]; ok {
			return copyExchange(s.exchanges[id]), nil
		}
	}

	mine, err := s.ownedItem(p.Proposer.UserID, p.Proposer.ItemID)
	if err != nil {
		return nil, err
	}
	theirs, ok := s.items[p.Target.ItemID]
	if !ok {
		return nil, item.ErrNotFound
	}
	if theirs.OwnerID != p.Target.UserID {
		return nil, invalid(fmt.Errorf("item %s is not owned by %s", theirs.ItemID, p.Target.UserID))
	}
	if !mine.Offerable() {
		return nil, invalid(fmt.Errorf("item %s is %s", mine.ItemID, mine.Status))
	}
	if theirs.Status != item.StatusExchanging {
		return nil, invalid(fmt.Errorf("item %s is not offered for exchange", theirs.ItemID))
	}

	now := s.now()
	ex := &exchange.Exchange{
		ExchangeID:       uuid.NewString(),
		IdempotencyToken: token,
		Status:           exchange.StatusCreated,
		Details: []exchange.ParticipantDetail{
			s.detail(mine),
			s.detail(theirs),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.exchanges[ex.ExchangeID] = ex
	if token != "" {
		s.exTokens[tokenKey(userID, token)] = ex.ExchangeID
	}
	return copyExchange(ex), nil
}

// GetExchange returns an exchange the caller participates in.
func (s *Store) GetExchange(userID, exchangeID string) (*exchange.Exchange, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ex, err := s.participating(userID, exchangeID)
	if err != nil {
		return nil, err
	}
	return copyExchange(ex), nil
}

// PatchExchange applies the caller's transition.
func (s *Store) PatchExchange(userID, exchangeID string, t exchange.Transition) (*exchange.Exchange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ex, err := s.participating(userID, exchangeID)
	if err != nil {
		return nil, err
	}
	if ex.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: exchange is %s", exchange.ErrInvalidTransition, ex.Status)
	}

	var me, other *exchange.ParticipantDetail
	for i := range ex.Details {
		if ex.Details[i].OwnerID() == userID {
			me = &ex.Details[i]
		} else {
			other = &ex.Details[i]
		}
	}

	switch t {
	case exchange.TransitionConfirm1:
		if me.Status != exchange.ParticipantCreated {
			return nil, fmt.Errorf("%w: confirm_1 from %s", exchange.ErrInvalidTransition, me.Status)
		}
		me.Status = exchange.ParticipantConfirm1
	case exchange.TransitionConfirm2:
		if me.Status != exchange.ParticipantConfirm1 || !other.Status.Reached(exchange.ParticipantConfirm1) {
			return nil, fmt.Errorf("%w: confirm_2 from %s/%s", exchange.ErrInvalidTransition, me.Status, other.Status)
		}
		if err := s.checkOfferable(ex); err != nil {
			return nil, err
		}
		me.Status = exchange.ParticipantConfirm2
	case exchange.TransitionFail:
		if me.Status != exchange.ParticipantCreated && me.Status != exchange.ParticipantConfirm1 {
			return nil, fmt.Errorf("%w: failed from %s", exchange.ErrInvalidTransition, me.Status)
		}
		me.Status = exchange.ParticipantFailed
	default:
		return nil, invalid(fmt.Errorf("unknown transition %q", t))
	}

	switch {
	case me.Status == exchange.ParticipantFailed:
		ex.Status = exchange.StatusFailed
	case me.Status == exchange.ParticipantConfirm2 && other.Status == exchange.ParticipantConfirm2:
		me.Status = exchange.ParticipantSuccess
		other.Status = exchange.ParticipantSuccess
		ex.Status = exchange.StatusSuccess
		s.markExchanged(ex)
	case me.Status != exchange.ParticipantCreated && other.Status != exchange.ParticipantCreated:
		ex.Status = exchange.StatusConfirm
	}
	ex.UpdatedAt = s.now()
	return copyExchange(ex), nil
}

// ListExchanges pages through the caller's exchanges, newest first.
func (s *Store) ListExchanges(userID string, q exchange.Query, limit int, cursor string) ([]*exchange.Exchange, string, error) {
	statuses := make(map[exchange.Status]bool, len(q.Statuses))
	for _, st := range q.Statuses {
		statuses[st] = true
	}

	s.mu.RLock()
	var matched []*exchange.Exchange
	for _, ex := range s.exchanges {
		if _, ok := ex.Participant(userID); !ok {
			continue
		}
		if len(statuses) > 0 && !statuses[ex.Status] {
			continue
		}
		matched = append(matched, copyExchange(ex))
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ExchangeID < matched[j].ExchangeID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return paginate(matched, limit, cursor)
}

func (s *Store) ownedItem(ownerID, itemID string) (*item.Item, error) {
	it, ok := s.items[itemID]
	if !ok {
		return nil, item.ErrNotFound
	}
	if it.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: item %s belongs to another user", ErrForbidden, itemID)
	}
	return it, nil
}

func (s *Store) participating(userID, exchangeID string) (*exchange.Exchange, error) {
	ex, ok := s.exchanges[exchangeID]
	if !ok {
		return nil, exchange.ErrNotFound
	}
	if _, ok := ex.Participant(userID); !ok {
		return nil, fmt.Errorf("%w: not a participant of %s", ErrForbidden, exchangeID)
	}
	return ex, nil
}

func (s *Store) detail(it *item.Item) exchange.ParticipantDetail {
	var name user.Name
	if u, ok := s.users[it.OwnerID]; ok {
		name = u.Name
	}
	return exchange.ParticipantDetail{Item: it.Info(), User: name, Status: exchange.ParticipantCreated}
}

// checkOfferable rejects committing to an exchange whose items were
// exchanged or removed since it was proposed.
func (s *Store) checkOfferable(ex *exchange.Exchange) error {
	for _, d := range ex.Details {
		it, ok := s.items[d.Item.ItemID]
		if !ok || !it.Offerable() {
			return fmt.Errorf("%w: item %s is no longer available", exchange.ErrInvalidTransition, d.Item.ItemID)
		}
	}
	return nil
}

func (s *Store) markExchanged(ex *exchange.Exchange) {
	now := s.now()
	for _, d := range ex.Details {
		if it, ok := s.items[d.Item.ItemID]; ok {
			it.Status = item.StatusExchanged
			it.UpdatedAt = now
		}
	}
}

func (s *Store) storePhoto(itemID string, photo *item.Photo) *string {
	p := path.Join("/upload", itemID, uuid.NewString()+path.Ext(photo.FileName))
	s.photos[p] = append([]byte(nil), photo.Data...)
	u := s.photoHost + p
	return &u
}

func matchItem(it *item.Item, q item.Query) bool {
	if len(q.Statuses) > 0 && !contains(q.Statuses, it.Status) {
		return false
	}
	if len(q.UserIDs) > 0 && !contains(q.UserIDs, it.OwnerID) {
		return false
	}
	if contains(q.ExcludeUserIDs, it.OwnerID) {
		return false
	}
	return true
}

func contains[T comparable](list []T, v T) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func copyItem(it *item.Item) *item.Item {
	c := *it
	return &c
}

func copyExchange(ex *exchange.Exchange) *exchange.Exchange {
	c := *ex
	c.Details = append([]exchange.ParticipantDetail(nil), ex.Details...)
	return &c
}

func encodeCursor(offset int) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.Itoa(offset)))
}

func decodeCursor(cursor string) (int, error) {
	if cursor == "" {
		return 0, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return 0, ErrInvalidCursor
	}
	n, err := strconv.Atoi(string(raw))
	if err != nil || n < 0 {
		return 0, ErrInvalidCursor
	}
	return n, nil
}

func paginate[T any](all []T, limit int, cursor string) ([]T, string, error) {
	offset, err := decodeCursor(cursor)
	if err != nil {
		return nil, "", err
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset >= len(all) {
		return []T{}, "", nil
	}
	end := offset + limit
	if end >= len(all) {
		return all[offset:], "", nil
	}
	return all[offset:end], encodeCursor(end), nil
}
