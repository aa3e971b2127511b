package httpapi

import (
	"net/http"

	"github.com/toyswap/toyswap/internal/domain/exchange"
	"github.com/toyswap/toyswap/internal/infrastructure/sse"
)

const (
	eventConnected = "connected"
	eventExchange  = "exchange"
)

type connectedEvent struct {
	ClientID string `json:"client_id"`
	UserID   string `json:"user_id"`
}

// streamEvents sends a snapshot of every exchange the user takes part in
// each time it is created or changes status.
func (s *Server) streamEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, "internal", "streaming not supported")
		return
	}
	client := sse.NewClient(userIDFromContext(r.Context()))
	s.events.Register(client)
	defer s.events.Unregister(client.ClientID)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	hello, err := sse.NewMessage(eventConnected, connectedEvent{ClientID: client.ClientID, UserID: client.UserID})
	if err == nil {
		err = s.events.SendToClient(client.ClientID, hello)
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("client_id", client.ClientID).Msg("greet event stream")
	}

	ctx := r.Context()
	for {
		select {
		case msg := <-client.MessageChan:
			if msg == nil {
				return
			}
			if _, err := msg.WriteTo(w); err != nil {
				return
			}
			flusher.Flush()
		case <-ctx.Done():
			return
		}
	}
}

func (s *Server) publish(ex *exchange.Exchange) {
	msg, err := sse.NewMessage(eventExchange, exchangeResponse{Exchange: ex})
	if err != nil {
		s.logger.Error().Err(err).Str("exchange_id", ex.ExchangeID).Msg("encode exchange event")
		return
	}
	for _, d := range ex.Details {
		s.events.BroadcastToUser(d.OwnerID(), msg)
	}
}
