package server

import (
	"net/http"

	"github.com/homeboard/homeboard-backend/internal/auth"
	"github.com/homeboard/homeboard-backend/internal/service"
)

// loginHandler checks the credentials and returns the user. The token pair
// travels in the response headers, the same channel the auth middleware uses
// when it rotates an expired pair.
func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := s.auth.Login(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	w.Header().Set("Authorization", "Bearer "+result.AccessToken)
	w.Header().Set(auth.HeaderRefreshToken, "Bearer "+result.RefreshToken)
	respondWithJSON(w, http.StatusOK, result.User)
}

func (s *Server) changePasswordHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := connectedUser(w, r)
	if !ok {
		return
	}
	var req service.ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.auth.ChangePassword(r.Context(), user, req); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
