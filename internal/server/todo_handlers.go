package server

import (
	"net/http"

	"github.com/homeboard/homeboard-backend/internal/service"
)

func (s *Server) upsertTodoHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := connectedUser(w, r)
	if !ok {
		return
	}
	var req service.TodoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, created, err := s.todos.Upsert(r.Context(), user, req)
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

func (s *Server) editTodoHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := connectedUser(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	var req service.TodoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if _, err := s.todos.Edit(r.Context(), user, id, req); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getTodoHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := connectedUser(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	resp, err := s.todos.GetByID(r.Context(), user, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

func (s *Server) listTodosHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := connectedUser(w, r)
	if !ok {
		return
	}

	resp, err := s.todos.List(r.Context(), user)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

func (s *Server) deleteTodoHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := connectedUser(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	if err := s.todos.Delete(r.Context(), user, id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) multiDeleteTodosHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := connectedUser(w, r)
	if !ok {
		return
	}
	var items []service.MultiDeleteItem
	if !decodeJSON(w, r, &items) {
		return
	}

	if err := s.todos.MultiDelete(r.Context(), user, items); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
