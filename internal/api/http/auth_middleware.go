package httpapi

import (
	"net/http"
	"strings"
)

// requireUser accepts requests whose x_user_id names a registered user.
func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(headerUserID))
		if userID == "" {
			respondError(w, http.StatusUnauthorized, "unauthorized", "missing "+headerUserID+" header")
			return
		}
		if !s.store.UserExists(userID) {
			respondError(w, http.StatusUnauthorized, "unauthorized", "unknown user")
			return
		}
		next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), userID)))
	})
}
