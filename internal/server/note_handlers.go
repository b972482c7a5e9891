package server

import (
	"net/http"

	"github.com/homeboard/homeboard-backend/internal/service"
)

func (s *Server) upsertNoteHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := connectedUser(w, r)
	if !ok {
		return
	}
	var req service.NoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, created, err := s.notes.Upsert(r.Context(), user, req)
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

func (s *Server) editNoteHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := connectedUser(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	var req service.NoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if _, err := s.notes.Edit(r.Context(), user, id, req); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getNoteHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := connectedUser(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	resp, err := s.notes.GetByID(r.Context(), user, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

func (s *Server) listNotesHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := connectedUser(w, r)
	if !ok {
		return
	}

	resp, err := s.notes.List(r.Context(), user)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

func (s *Server) deleteNoteHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := connectedUser(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	if err := s.notes.Delete(r.Context(), user, id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) multiDeleteNotesHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := connectedUser(w, r)
	if !ok {
		return
	}
	var items []service.MultiDeleteItem
	if !decodeJSON(w, r, &items) {
		return
	}

	if err := s.notes.MultiDelete(r.Context(), user, items); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
