package server

import (
	"net/http"

	"github.com/homeboard/homeboard-backend/internal/service"
)

func (s *Server) upsertRecipeHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := connectedUser(w, r)
	if !ok {
		return
	}
	var req service.RecipeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, created, err := s.recipes.Upsert(r.Context(), user, req)
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

func (s *Server) editRecipeHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := connectedUser(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	var req service.RecipeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if _, err := s.recipes.Edit(r.Context(), user, id, req); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getRecipeHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := connectedUser(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	resp, err := s.recipes.GetByID(r.Context(), user, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

func (s *Server) listRecipesHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := connectedUser(w, r)
	if !ok {
		return
	}

	resp, err := s.recipes.List(r.Context(), user)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

func (s *Server) deleteRecipeHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := connectedUser(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	if err := s.recipes.Delete(r.Context(), user, id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) multiDeleteRecipesHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := connectedUser(w, r)
	if !ok {
		return
	}
	var items []service.MultiDeleteItem
	if !decodeJSON(w, r, &items) {
		return
	}

	if err := s.recipes.MultiDelete(r.Context(), user, items); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
