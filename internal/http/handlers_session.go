package http

import (
	"net/http"

	"caulong/internal/core"
	"caulong/internal/split"
)

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.service.ListSessions(r.Context())
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	if sessions == nil {
		sessions = []core.Session{}
	}
	respondJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.service.GetSession(r.Context(), r.PathValue("id"))
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var session core.Session
	if !decodeJSON(w, r, &session) {
		return
	}

	if err := s.service.CreateSession(r.Context(), &session); err != nil {
		respondStoreError(w, r, err)
		return
	}

	s.invalidateStats()
	sessionsCreatedTotal.Inc()
	respondJSON(w, http.StatusCreated, session)
}

func (s *Server) handleUpdateSession(w http.ResponseWriter, r *http.Request) {
	var session core.Session
	if !decodeJSON(w, r, &session) {
		return
	}
	session.ID = r.PathValue("id")

	if err := s.service.UpdateSession(r.Context(), session); err != nil {
		respondStoreError(w, r, err)
		return
	}

	s.invalidateStats()
	respondJSON(w, http.StatusOK, session)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteSession(r.Context(), r.PathValue("id")); err != nil {
		respondStoreError(w, r, err)
		return
	}

	s.invalidateStats()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSplit(w http.ResponseWriter, r *http.Request) {
	session, err := s.service.GetSession(r.Context(), r.PathValue("id"))
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, split.Calculate(*session))
}

func (s *Server) handleShareReport(w http.ResponseWriter, r *http.Request) {
	session, err := s.service.GetSession(r.Context(), r.PathValue("id"))
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	calc := split.Calculate(*session)
	respondJSON(w, http.StatusOK, struct {
		Title  string `json:"title"`
		Report string `json:"report"`
	}{
		Title:  split.ReportTitle(*session),
		Report: split.BuildShareReport(*session, calc),
	})
}

func (s *Server) handleReplacePayments(w http.ResponseWriter, r *http.Request) {
	var status map[string]bool
	if !decodeJSON(w, r, &status) {
		return
	}

	session, err := s.service.ReplacePaymentStatus(r.Context(), r.PathValue("id"), status)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

func (s *Server) handleSetPayment(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Paid bool `json:"paid"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	session, err := s.service.SetPaymentStatus(r.Context(),
		r.PathValue("id"), r.PathValue("playerID"), body.Paid)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

// handleSuggestCourtFee returns the court-fee expense implied by the
// session's times and rate without persisting it.
func (s *Server) handleSuggestCourtFee(w http.ResponseWriter, r *http.Request) {
	suggestion, minutes, err := s.service.SuggestCourtFee(r.Context(), r.PathValue("id"))
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, struct {
		Duration int           `json:"duration"`
		Expense  *core.Expense `json:"expense"`
	}{Duration: minutes, Expense: suggestion})
}

func (s *Server) handleRecalculateCourtFee(w http.ResponseWriter, r *http.Request) {
	session, err := s.service.RecalculateCourtFee(r.Context(), r.PathValue("id"))
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	s.invalidateStats()
	respondJSON(w, http.StatusOK, session)
}
