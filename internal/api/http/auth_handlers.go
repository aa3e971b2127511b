package httpapi

import (
	"net/http"

	"github.com/toyswap/toyswap/internal/domain/user"
)

type userIDResponse struct {
	UserID string `json:"user_id"`
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req user.Registration
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	u, err := s.store.Register(req)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	s.logger.Info().Str("user_id", u.UserID).Msg("user registered")
	respondJSON(w, http.StatusCreated, userIDResponse{UserID: u.UserID})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req user.Credentials
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	u, err := s.store.Login(req)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, userIDResponse{UserID: u.UserID})
}
