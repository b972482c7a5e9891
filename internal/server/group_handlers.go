package server

import (
	"net/http"

	"github.com/homeboard/homeboard-backend/internal/service"
)

func (s *Server) upsertGroupHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := connectedUser(w, r)
	if !ok {
		return
	}
	var req service.GroupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, created, err := s.groups.Upsert(r.Context(), user, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if created {
		respondWithJSON(w, http.StatusCreated, resp)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

func (s *Server) editGroupHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := connectedUser(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	var req service.GroupEditRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if _, err := s.groups.Edit(r.Context(), user, id, req); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getGroupHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := connectedUser(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	resp, err := s.groups.GetByID(r.Context(), user, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

func (s *Server) listGroupsHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := connectedUser(w, r)
	if !ok {
		return
	}

	resp, err := s.groups.List(r.Context(), user)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

func (s *Server) deleteGroupHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := connectedUser(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	if err := s.groups.Delete(r.Context(), user, id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) multiDeleteGroupsHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := connectedUser(w, r)
	if !ok {
		return
	}
	var items []service.MultiDeleteItem
	if !decodeJSON(w, r, &items) {
		return
	}

	if err := s.groups.MultiDelete(r.Context(), user, items); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
