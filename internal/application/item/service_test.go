package item

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/toyswap/toyswap/internal/application/mutation"
	domainItem "github.com/toyswap/toyswap/internal/domain/item"
	"github.com/toyswap/toyswap/internal/domain/item/mocks"
	"github.com/toyswap/toyswap/internal/domain/session"
	"github.com/toyswap/toyswap/internal/remote"
)

var alice = session.New("alice", "http://localhost:5001")

func newTestService(t *testing.T) (*Service, *mocks.MockRemote) {
	ctrl := gomock.NewController(t)
	rem := mocks.NewMockRemote(ctrl)
	return NewService(rem, mutation.NewExecutor(zerolog.Nop()), zerolog.Nop()), rem
}

func owned(status domainItem.Status) *domainItem.Item {
	return &domainItem.Item{ItemID: "toy-a", OwnerID: "alice", Name: "Robot", Status: status}
}

func TestCreate_RetriesWithSameToken(t *testing.T) {
	svc, rem := newTestService(t)
	ctx := context.Background()
	draft := domainItem.Draft{Name: "Robot"}

	var tokens []string
	rem.EXPECT().CreateItem(ctx, alice, gomock.Any(), draft).
		DoAndReturn(func(_ context.Context, _ session.Session, token string, _ domainItem.Draft) (*domainItem.Item, error) {
			tokens = append(tokens, token)
			if len(tokens) == 1 {
				return nil, &remote.TransportError{Op: "create item", Err: errors.New("timeout")}
			}
			return owned(domainItem.StatusCreated), nil
		}).Times(2)

	it, err := svc.Create(ctx, alice, draft)
	require.NoError(t, err)
	assert.Equal(t, "toy-a", it.ItemID)
	assert.Equal(t, tokens[0], tokens[1])
}

func TestCreate_InvalidDraft(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Create(context.Background(), alice, domainItem.Draft{Name: "  "})
	assert.Error(t, err)
}

func TestMine(t *testing.T) {
	svc, rem := newTestService(t)
	ctx := context.Background()
	rem.EXPECT().ListItems(ctx, alice, domainItem.Query{
		Statuses: []domainItem.Status{domainItem.StatusCreated, domainItem.StatusExchanging},
		UserIDs:  []string{"alice"},
	}, 20, "").Return(&domainItem.Page{}, nil)

	_, err := svc.Mine(ctx, alice, 20, "")
	require.NoError(t, err)
}

func TestShop(t *testing.T) {
	svc, rem := newTestService(t)
	ctx := context.Background()
	rem.EXPECT().ListItems(ctx, alice, domainItem.Query{
		Statuses:       []domainItem.Status{domainItem.StatusExchanging},
		ExcludeUserIDs: []string{"alice"},
	}, 0, "c1").Return(&domainItem.Page{}, nil)

	_, err := svc.Shop(ctx, alice, 0, "c1")
	require.NoError(t, err)
}

func TestSetListed(t *testing.T) {
	tests := []struct {
		name   string
		from   domainItem.Status
		listed bool
		patch  domainItem.Status
		err    error
	}{
		{name: "list", from: domainItem.StatusCreated, listed: true, patch: domainItem.StatusExchanging},
		{name: "unlist", from: domainItem.StatusExchanging, listed: false, patch: domainItem.StatusCreated},
		{name: "already listed", from: domainItem.StatusExchanging, listed: true},
		{name: "exchanged", from: domainItem.StatusExchanged, listed: true, err: domainItem.ErrInvalidTransition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, rem := newTestService(t)
			ctx := context.Background()
			rem.EXPECT().GetItem(ctx, alice, "toy-a").Return(owned(tt.from), nil)
			if tt.patch != "" {
				rem.EXPECT().PatchItemStatus(ctx, alice, "toy-a", tt.patch).Return(owned(tt.patch), nil)
			}

			it, err := svc.SetListed(ctx, alice, "toy-a", tt.listed)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			if tt.patch != "" {
				assert.Equal(t, tt.patch, it.Status)
			}
		})
	}
}

func TestDelete_NotOwner(t *testing.T) {
	svc, rem := newTestService(t)
	ctx := context.Background()
	rem.EXPECT().GetItem(ctx, alice, "toy-b").
		Return(&domainItem.Item{ItemID: "toy-b", OwnerID: "bob", Status: domainItem.StatusExchanging}, nil)

	err := svc.Delete(ctx, alice, "toy-b")
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestDelete(t *testing.T) {
	svc, rem := newTestService(t)
	ctx := context.Background()
	gomock.InOrder(
		rem.EXPECT().GetItem(ctx, alice, "toy-a").Return(owned(domainItem.StatusCreated), nil),
		rem.EXPECT().DeleteItem(ctx, alice, "toy-a").Return(nil),
	)
	require.NoError(t, svc.Delete(ctx, alice, "toy-a"))
}

func TestUpdate(t *testing.T) {
	svc, rem := newTestService(t)
	ctx := context.Background()
	draft := domainItem.Draft{Name: "Robot 2"}
	gomock.InOrder(
		rem.EXPECT().GetItem(ctx, alice, "toy-a").Return(owned(domainItem.StatusCreated), nil),
		rem.EXPECT().UpdateItem(ctx, alice, "toy-a", draft).Return(&domainItem.Item{ItemID: "toy-a", OwnerID: "alice", Name: "Robot 2"}, nil),
	)

	it, err := svc.Update(ctx, alice, "toy-a", draft)
	require.NoError(t, err)
	assert.Equal(t, "Robot 2", it.Name)
}

func TestPhoto(t *testing.T) {
	svc, rem := newTestService(t)
	ctx := context.Background()
	url := "http://storage/upload/a.jpg"
	withPhoto := owned(domainItem.StatusCreated)
	withPhoto.PhotoURL = &url

	gomock.InOrder(
		rem.EXPECT().GetItem(ctx, alice, "toy-a").Return(withPhoto, nil),
		rem.EXPECT().FetchPhoto(ctx, alice, url).Return([]byte("img"), nil),
	)
	data, err := svc.Photo(ctx, alice, "toy-a")
	require.NoError(t, err)
	assert.Equal(t, []byte("img"), data)
}

func TestPhoto_Missing(t *testing.T) {
	svc, rem := newTestService(t)
	ctx := context.Background()
	rem.EXPECT().GetItem(ctx, alice, "toy-a").Return(owned(domainItem.StatusCreated), nil)

	_, err := svc.Photo(ctx, alice, "toy-a")
	assert.ErrorIs(t, err, domainItem.ErrNotFound)
}
