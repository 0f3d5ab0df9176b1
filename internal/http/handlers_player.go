package http

import (
	"net/http"

	"caulong/internal/core"
)

func (s *Server) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := s.service.ListPlayers(r.Context())
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	if players == nil {
		players = []core.Player{}
	}
	respondJSON(w, http.StatusOK, players)
}

func (s *Server) handleAddPlayer(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	player, err := s.service.AddPlayer(r.Context(), body.Name)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	playersCreatedTotal.Inc()
	respondJSON(w, http.StatusCreated, player)
}

// handleDeletePlayer removes a roster player. Past sessions keep their own
// player snapshots, so history and splits are untouched.
func (s *Server) handleDeletePlayer(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeletePlayer(r.Context(), r.PathValue("id")); err != nil {
		respondStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
