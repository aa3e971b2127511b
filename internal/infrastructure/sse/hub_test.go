package sse

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_BroadcastToUser(t *testing.T) {
	hub := NewHub()
	alice := NewClient("alice")
	aliceTab := NewClient("alice")
	bob := NewClient("bob")
	for _, c := range []*Client{alice, aliceTab, bob} {
		hub.Register(c)
	}
	assert.Equal(t, 3, hub.ClientCount())

	msg, err := NewMessage("exchange", map[string]string{"exchange_id": "ex-1"})
	require.NoError(t, err)
	hub.BroadcastToUser("alice", msg)

	assert.Same(t, msg, <-alice.MessageChan)
	assert.Same(t, msg, <-aliceTab.MessageChan)
	assert.Empty(t, bob.MessageChan)
}

func TestHub_SendToClient(t *testing.T) {
	hub := NewHub()
	c := &Client{ClientID: "c1", UserID: "alice", MessageChan: make(chan *Message, 1)}
	hub.Register(c)

	msg, err := NewMessage("ping", nil)
	require.NoError(t, err)
	require.NoError(t, hub.SendToClient("c1", msg))
	assert.ErrorIs(t, hub.SendToClient("c1", msg), ErrChannelFull)
	assert.ErrorIs(t, hub.SendToClient("missing", msg), ErrClientNotFound)
}

func TestHub_UnregisterAndStop(t *testing.T) {
	hub := NewHub()
	a := NewClient("alice")
	b := NewClient("bob")
	hub.Register(a)
	hub.Register(b)

	hub.Unregister(a.ClientID)
	_, open := <-a.MessageChan
	assert.False(t, open)
	assert.Equal(t, 1, hub.ClientCount())

	hub.Unregister(a.ClientID)

	hub.Stop()
	_, open = <-b.MessageChan
	assert.False(t, open)
	assert.Zero(t, hub.ClientCount())
}

func TestMessage_WriteTo(t *testing.T) {
	msg := &Message{ID: "m1", Event: "exchange", Data: []byte(`{"status":"created"}`)}
	var buf bytes.Buffer
	n, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, "id: m1\nevent: exchange\ndata: {\"status\":\"created\"}\n\n", buf.String())
	assert.Equal(t, int64(buf.Len()), n)
}
