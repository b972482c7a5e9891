package server

import (
	"net/http"

	"github.com/homeboard/homeboard-backend/internal/service"
)

func (s *Server) upsertVehicleHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := connectedUser(w, r)
	if !ok {
		return
	}
	var req service.VehicleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, created, err := s.vehicles.Upsert(r.Context(), user, req)
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

func (s *Server) editVehicleHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := connectedUser(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	var req service.VehicleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if _, err := s.vehicles.Edit(r.Context(), user, id, req); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getVehicleHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := connectedUser(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	resp, err := s.vehicles.GetByID(r.Context(), user, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

func (s *Server) listVehiclesHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := connectedUser(w, r)
	if !ok {
		return
	}

	resp, err := s.vehicles.List(r.Context(), user)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

func (s *Server) deleteVehicleHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := connectedUser(w, r)
	if !ok {
		return
	}
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	if err := s.vehicles.Delete(r.Context(), user, id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) multiDeleteVehiclesHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := connectedUser(w, r)
	if !ok {
		return
	}
	var items []service.MultiDeleteItem
	if !decodeJSON(w, r, &items) {
		return
	}

	if err := s.vehicles.MultiDelete(r.Context(), user, items); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
