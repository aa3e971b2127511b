package exchange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject(t *testing.T) {
	t.Run("splits sides by owner", func(t *testing.T) {
		ex := newTestExchange(StatusCreated, ParticipantConfirm1, ParticipantCreated)

		alice, err := Project(ex, "alice")
		require.NoError(t, err)
		assert.Equal(t, "toy-a", alice.Mine.Item.ItemID)
		assert.Equal(t, "toy-b", alice.Counterpart.Item.ItemID)
		assert.Equal(t, "Bob Jones", alice.Counterpart.UserName)
		assert.Equal(t, "You are ready to get in touch", alice.Mine.StatusLabel)
		assert.Equal(t, "Awaiting action", alice.Counterpart.StatusLabel)
		assert.Equal(t, "Awaiting action", alice.StatusLabel)
		assert.False(t, alice.Decision.Available())
		assert.True(t, alice.Decision.CanCancel)
		assert.Equal(t, "Waiting for the other user", alice.ActionLabel)

		bob, err := Project(ex, "bob")
		require.NoError(t, err)
		assert.Equal(t, "toy-b", bob.Mine.Item.ItemID)
		assert.Equal(t, ActionConfirm1, bob.Decision.Action)
		assert.True(t, bob.Decision.Available())
		assert.Equal(t, "Get in touch", bob.ActionLabel)
	})

	t.Run("confirm_2 viewer waits", func(t *testing.T) {
		ex := newTestExchange(StatusConfirm, ParticipantConfirm2, ParticipantConfirm1)
		v, err := Project(ex, "alice")
		require.NoError(t, err)
		assert.False(t, v.Decision.CanCancel)
		assert.Empty(t, v.ActionLabel)
		assert.Equal(t, "Waiting for the other user to confirm the exchange", v.Message)

		other, err := Project(ex, "bob")
		require.NoError(t, err)
		assert.Equal(t, "Confirm exchange", other.ActionLabel)
		assert.Equal(t, "Confirmed the exchange", other.Counterpart.StatusLabel)
	})

	t.Run("terminal messages", func(t *testing.T) {
		v, err := Project(newTestExchange(StatusSuccess, ParticipantSuccess, ParticipantSuccess), "bob")
		require.NoError(t, err)
		assert.True(t, v.Decision.Terminal)
		assert.Equal(t, "Exchange completed successfully", v.Message)

		v, err = Project(newTestExchange(StatusFailed, ParticipantFailed, ParticipantCreated), "bob")
		require.NoError(t, err)
		assert.Equal(t, "Exchange cancelled", v.Message)
		assert.Equal(t, "Cancelled", v.StatusLabel)
	})

	t.Run("viewer not a participant", func(t *testing.T) {
		_, err := Project(newTestExchange(StatusCreated, ParticipantCreated, ParticipantCreated), "carol")
		assert.ErrorIs(t, err, ErrInconsistentState)
	})

	t.Run("empty viewer", func(t *testing.T) {
		_, err := Project(newTestExchange(StatusCreated, ParticipantCreated, ParticipantCreated), "")
		assert.ErrorIs(t, err, ErrInconsistentState)
	})

	t.Run("viewer owns both sides", func(t *testing.T) {
		ex := newTestExchange(StatusCreated, ParticipantCreated, ParticipantCreated)
		ex.Details[1].Item.OwnerID = "alice"
		_, err := Project(ex, "alice")
		assert.ErrorIs(t, err, ErrInconsistentState)
	})

	t.Run("inconsistent table row", func(t *testing.T) {
		ex := newTestExchange(StatusCreated, ParticipantConfirm1, ParticipantFailed)
		_, err := Project(ex, "alice")
		assert.ErrorIs(t, err, ErrInconsistentState)
	})
}
