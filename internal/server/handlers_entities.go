package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/simonvc/fecledger/internal/ledger"
)

type createEntityRequest struct {
	Name  string `json:"name"`
	SIRET string `json:"siret"`
}

func (s *Server) createEntity(w http.ResponseWriter, r *http.Request) {
	var req createEntityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	e := &ledger.Entity{Name: req.Name, SIRET: req.SIRET}
	if err := s.store.CreateEntity(r.Context(), e); err != nil {
		s.fail(w, r, err)
		return
	}

	created, err := s.store.GetEntity(r.Context(), e.ID)
	if err != nil {
		writeJSON(w, http.StatusCreated, e)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) listEntities(w http.ResponseWriter, r *http.Request) {
	entities, err := s.store.ListEntities(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if entities == nil {
		entities = []ledger.Entity{}
	}
	writeJSON(w, http.StatusOK, entities)
}

func (s *Server) getEntity(w http.ResponseWriter, r *http.Request) {
	e, err := s.store.GetEntity(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

type createClientRequest struct {
	EntityID string `json:"entity_id"`
	Nom      string `json:"nom"`
}

func (s *Server) createClient(w http.ResponseWriter, r *http.Request) {
	var req createClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	c := &ledger.Client{EntityID: req.EntityID, Nom: req.Nom}
	if err := s.store.CreateClient(r.Context(), c); err != nil {
		s.fail(w, r, err)
		return
	}

	created, err := s.store.GetClient(r.Context(), c.ID)
	if err != nil {
		writeJSON(w, http.StatusCreated, c)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) listClients(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.store.GetEntity(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	clients, err := s.store.ListClients(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if clients == nil {
		clients = []ledger.Client{}
	}
	writeJSON(w, http.StatusOK, clients)
}
