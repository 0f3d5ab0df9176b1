// Package http exposes the JSON API for sessions, players and statistics.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"caulong/internal/cache"
	"caulong/internal/services"
	"caulong/internal/stats"
)

type Server struct {
	http.Server
	service     *services.SessionService
	rateLimiter *rateLimiter

	// Statistics are recomputed from the full session list, so cache the
	// results and invalidate on every session mutation.
	monthStatsCache  *cache.LRUCache[[]stats.MonthStat]
	typeStatsCache   *cache.LRUCache[[]stats.TypeStat]
	playerStatsCache *cache.LRUCache[[]stats.PlayerStat]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once

	ready func(ctx context.Context) error
}

// NewServer configures routes and returns a ready-to-run server
func NewServer(addr string, service *services.SessionService) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		service:          service,
		rateLimiter:      newRateLimiter(),
		monthStatsCache:  cache.NewLRUCache[[]stats.MonthStat](10, 5*time.Minute),
		typeStatsCache:   cache.NewLRUCache[[]stats.TypeStat](10, 5*time.Minute),
		playerStatsCache: cache.NewLRUCache[[]stats.PlayerStat](10, 5*time.Minute),
		stopCacheCleanup: make(chan struct{}),
	}

	go s.startCacheCleanup()

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/sessions", s.withMiddleware(s.handleListSessions))
	mux.HandleFunc("POST /api/sessions", s.withMiddleware(s.handleCreateSession))
	mux.HandleFunc("GET /api/sessions/{id}", s.withMiddleware(s.handleGetSession))
	mux.HandleFunc("PUT /api/sessions/{id}", s.withMiddleware(s.handleUpdateSession))
	mux.HandleFunc("DELETE /api/sessions/{id}", s.withMiddleware(s.handleDeleteSession))
	mux.HandleFunc("GET /api/sessions/{id}/split", s.withMiddleware(s.handleSplit))
	mux.HandleFunc("GET /api/sessions/{id}/report", s.withMiddleware(s.handleShareReport))
	mux.HandleFunc("PUT /api/sessions/{id}/payments", s.withMiddleware(s.handleReplacePayments))
	mux.HandleFunc("PUT /api/sessions/{id}/payments/{playerID}", s.withMiddleware(s.handleSetPayment))
	mux.HandleFunc("GET /api/sessions/{id}/court-fee", s.withMiddleware(s.handleSuggestCourtFee))
	mux.HandleFunc("POST /api/sessions/{id}/court-fee", s.withMiddleware(s.handleRecalculateCourtFee))

	mux.HandleFunc("GET /api/players", s.withMiddleware(s.handleListPlayers))
	mux.HandleFunc("POST /api/players", s.withMiddleware(s.handleAddPlayer))
	mux.HandleFunc("DELETE /api/players/{id}", s.withMiddleware(s.handleDeletePlayer))

	mux.HandleFunc("GET /api/stats/monthly", s.withMiddleware(s.handleMonthStats))
	mux.HandleFunc("GET /api/stats/types", s.withMiddleware(s.handleTypeStats))
	mux.HandleFunc("GET /api/stats/players", s.withMiddleware(s.handlePlayerStats))

	return s
}

// SetReadyCheck installs the probe behind /readyz
func (s *Server) SetReadyCheck(check func(ctx context.Context) error) {
	s.ready = check
}

func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.monthStatsCache.CleanExpired()
			s.typeStatsCache.CleanExpired()
			s.playerStatsCache.CleanExpired()
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// invalidateStats drops all cached statistics after a session mutation
func (s *Server) invalidateStats() {
	s.monthStatsCache.Delete(statsCacheKey)
	s.typeStatsCache.Delete(statsCacheKey)
	s.playerStatsCache.Delete(statsCacheKey)
}

const statsCacheKey = "all"

// Shutdown gracefully shuts down the server and cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.stopCacheCleanup != nil {
			close(s.stopCacheCleanup)
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.ready != nil {
		if err := s.ready(r.Context()); err != nil {
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
