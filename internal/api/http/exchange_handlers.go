package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/toyswap/toyswap/internal/domain/exchange"
)

type exchangeResponse struct {
	Exchange *exchange.Exchange `json:"exchange"`
}

type summaryResponse struct {
	Exchange exchange.Summary `json:"exchange"`
}

type patchExchangeRequest struct {
	Status string `json:"status"`
}

type listExchangesRequest struct {
	Query exchange.Query `json:"query"`
	page
}

type listExchangesResponse struct {
	Exchanges []*exchange.Exchange `json:"exchanges"`
	Cursor    *string              `json:"cursor,omitempty"`
}

func (s *Server) createExchange(w http.ResponseWriter, r *http.Request) {
	var req exchange.Proposal
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	userID := userIDFromContext(r.Context())
	ex, err := s.store.CreateExchange(userID, r.Header.Get(headerIdempotencyToken), req)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	s.logger.Info().Str("exchange_id", ex.ExchangeID).Str("user_id", userID).Msg("exchange created")
	s.publish(ex)
	respondJSON(w, http.StatusCreated, summaryResponse{Exchange: summarize(ex)})
}

func (s *Server) getExchange(w http.ResponseWriter, r *http.Request) {
	ex, err := s.store.GetExchange(userIDFromContext(r.Context()), chi.URLParam(r, "exchangeId"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, exchangeResponse{Exchange: ex})
}

func (s *Server) patchExchange(w http.ResponseWriter, r *http.Request) {
	var req patchExchangeRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	t, err := exchange.ParseTransition(req.Status)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	userID := userIDFromContext(r.Context())
	ex, err := s.store.PatchExchange(userID, chi.URLParam(r, "exchangeId"), t)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	s.logger.Info().
		Str("exchange_id", ex.ExchangeID).
		Str("user_id", userID).
		Str("transition", string(t)).
		Str("status", string(ex.Status)).
		Msg("exchange patched")
	s.publish(ex)
	respondJSON(w, http.StatusOK, exchangeResponse{Exchange: ex})
}

func (s *Server) listExchanges(w http.ResponseWriter, r *http.Request) {
	var req listExchangesRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	limit, cursor := req.values()
	exs, next, err := s.store.ListExchanges(userIDFromContext(r.Context()), req.Query, limit, cursor)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listExchangesResponse{Exchanges: exs, Cursor: cursorPtr(next)})
}

func summarize(ex *exchange.Exchange) exchange.Summary {
	return exchange.Summary{
		ExchangeID:       ex.ExchangeID,
		SrcItemID:        ex.Details[0].Item.ItemID,
		DstItemID:        ex.Details[1].Item.ItemID,
		IdempotencyToken: ex.IdempotencyToken,
		Status:           ex.Status,
		CreatedAt:        ex.CreatedAt,
		UpdatedAt:        ex.UpdatedAt,
	}
}
