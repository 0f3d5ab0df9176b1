package http

import (
	"log/slog"
	"net/http"

	"caulong/internal/stats"
)

func (s *Server) handleMonthStats(w http.ResponseWriter, r *http.Request) {
	if cached, ok := s.monthStatsCache.Get(statsCacheKey); ok {
		slog.DebugContext(r.Context(), "Month stats cache hit")
		respondJSON(w, http.StatusOK, cached)
		return
	}

	sessions, err := s.service.ListSessions(r.Context())
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	result := stats.ByMonth(sessions)
	if result == nil {
		result = []stats.MonthStat{}
	}
	s.monthStatsCache.Set(statsCacheKey, result)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleTypeStats(w http.ResponseWriter, r *http.Request) {
	if cached, ok := s.typeStatsCache.Get(statsCacheKey); ok {
		slog.DebugContext(r.Context(), "Type stats cache hit")
		respondJSON(w, http.StatusOK, cached)
		return
	}

	sessions, err := s.service.ListSessions(r.Context())
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	result := stats.ByType(sessions)
	if result == nil {
		result = []stats.TypeStat{}
	}
	s.typeStatsCache.Set(statsCacheKey, result)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handlePlayerStats(w http.ResponseWriter, r *http.Request) {
	if cached, ok := s.playerStatsCache.Get(statsCacheKey); ok {
		slog.DebugContext(r.Context(), "Player stats cache hit")
		respondJSON(w, http.StatusOK, cached)
		return
	}

	sessions, err := s.service.ListSessions(r.Context())
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	result := stats.ByPlayer(sessions)
	if result == nil {
		result = []stats.PlayerStat{}
	}
	s.playerStatsCache.Set(statsCacheKey, result)
	respondJSON(w, http.StatusOK, result)
}
