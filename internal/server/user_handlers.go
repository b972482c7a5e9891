package server

import (
	"errors"
	"net/http"

	"github.com/homeboard/homeboard-backend/internal/domain"
	"github.com/homeboard/homeboard-backend/internal/service"
)

func (s *Server) registerHandler(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := s.users.Register(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, resp)
}

type resetPasswordRequest struct {
	Email string `json:"email"`
}

func (s *Server) resetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" {
		respondWithError(w, http.StatusBadRequest, "Malformed request.")
		return
	}

	if err := s.users.ResetPassword(r.Context(), req.Email); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondWithError(w, http.StatusBadRequest, "This email doesn't exist.")
			return
		}
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) searchUsersHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := connectedUser(w, r); !ok {
		return
	}

	resp, err := s.users.Search(r.Context(), r.URL.Query().Get("username"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

func (s *Server) listUsersHandler(w http.ResponseWriter, r *http.Request) {
	resp, err := s.users.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

func (s *Server) getUserHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	resp, err := s.users.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

func (s *Server) editUserHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	var req service.EditUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := s.users.Edit(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

func (s *Server) deleteUserHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	if err := s.users.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
